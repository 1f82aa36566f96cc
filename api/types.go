package api

import (
	"encoding/json"

	"golang.org/x/xerrors"
)

// StorageChange is one (key, value) pair as reported by state_queryStorageAt.
// On the wire it is a two-element array [key, value]; Value is nil when the
// node reported no value for the key.
type StorageChange struct {
	Key   string
	Value *string
}

func (c StorageChange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*string{&c.Key, c.Value})
}

func (c *StorageChange) UnmarshalJSON(b []byte) error {
	var pair []*string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 || pair[0] == nil {
		return xerrors.Errorf("malformed storage change pair: %s", string(b))
	}
	c.Key = *pair[0]
	c.Value = pair[1]
	return nil
}

// StorageChangeSet is the per-block result entry of state_queryStorageAt.
type StorageChangeSet struct {
	Block   string          `json:"block"`
	Changes []StorageChange `json:"changes"`
}

// RuntimeVersion is the subset of state_getRuntimeVersion we care about.
type RuntimeVersion struct {
	SpecName           string `json:"specName"`
	ImplName           string `json:"implName"`
	AuthoringVersion   uint32 `json:"authoringVersion"`
	SpecVersion        uint32 `json:"specVersion"`
	ImplVersion        uint32 `json:"implVersion"`
	TransactionVersion uint32 `json:"transactionVersion"`
}

// ModuleMetadata is one record of the node's module (pallet) list. Only Name
// is required; the rest of the record is preserved for the metadata artifact.
type ModuleMetadata struct {
	Name  string `json:"name"`
	Index *int   `json:"index,omitempty"`
}
