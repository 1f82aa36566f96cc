// Package spec models a chain specification document and the selective state
// migration into it. Only name and genesis.raw.top are interpreted; every
// other field of the document round-trips untouched.
package spec

import (
	"encoding/json"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"
)

var log = logging.Logger("spec")

// Spec is a parsed chain specification. The raw document is retained so
// fields we don't model (id, chainType, bootNodes, properties, ...) survive a
// load/mutate/write cycle byte-for-byte.
type Spec struct {
	doc     map[string]json.RawMessage
	genesis map[string]json.RawMessage
	raw     map[string]json.RawMessage
	top     map[string]string
	name    string
}

// Parse decodes a chain specification document. A document without a
// genesis.raw.top mapping is malformed: there is nothing to migrate into.
func Parse(b []byte) (*Spec, error) {
	s := &Spec{}
	if err := json.Unmarshal(b, &s.doc); err != nil {
		return nil, xerrors.Errorf("parsing chain spec: %w", err)
	}

	if nameRaw, ok := s.doc["name"]; ok {
		if err := json.Unmarshal(nameRaw, &s.name); err != nil {
			return nil, xerrors.Errorf("parsing chain spec name: %w", err)
		}
	}

	genesisRaw, ok := s.doc["genesis"]
	if !ok {
		return nil, xerrors.New("chain spec has no genesis section")
	}
	if err := json.Unmarshal(genesisRaw, &s.genesis); err != nil {
		return nil, xerrors.Errorf("parsing chain spec genesis: %w", err)
	}

	rawRaw, ok := s.genesis["raw"]
	if !ok {
		return nil, xerrors.New("chain spec genesis has no raw section")
	}
	if err := json.Unmarshal(rawRaw, &s.raw); err != nil {
		return nil, xerrors.Errorf("parsing chain spec genesis.raw: %w", err)
	}

	topRaw, ok := s.raw["top"]
	if !ok {
		return nil, xerrors.New("chain spec genesis.raw has no top mapping")
	}
	if err := json.Unmarshal(topRaw, &s.top); err != nil {
		return nil, xerrors.Errorf("parsing chain spec genesis.raw.top: %w", err)
	}

	return s, nil
}

// Load reads and parses the chain specification at path.
func Load(path string) (*Spec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading chain spec: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, xerrors.Errorf("chain spec %s: %w", path, err)
	}
	return s, nil
}

// Name returns the spec's chain name, or "" if the document has none.
func (s *Spec) Name() string {
	return s.name
}

// SetForkName names the spec after the source chain, marking it as a fork.
func (s *Spec) SetForkName(chain string) {
	s.name = chain + " Fork"
	b, _ := json.Marshal(s.name)
	s.doc["name"] = b
}

// Top exposes the genesis.raw.top mapping, the migration target.
func (s *Spec) Top() map[string]string {
	return s.top
}

// Encode serializes the document, folding the mutated top mapping back in.
func (s *Spec) Encode() ([]byte, error) {
	topRaw, err := json.Marshal(s.top)
	if err != nil {
		return nil, xerrors.Errorf("encoding genesis.raw.top: %w", err)
	}
	s.raw["top"] = topRaw

	rawRaw, err := json.Marshal(s.raw)
	if err != nil {
		return nil, xerrors.Errorf("encoding genesis.raw: %w", err)
	}
	s.genesis["raw"] = rawRaw

	genesisRaw, err := json.Marshal(s.genesis)
	if err != nil {
		return nil, xerrors.Errorf("encoding genesis: %w", err)
	}
	s.doc["genesis"] = genesisRaw

	return json.MarshalIndent(s.doc, "", "  ")
}

// Write serializes the spec to path.
func (s *Spec) Write(path string) error {
	b, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return xerrors.Errorf("writing chain spec: %w", err)
	}
	return nil
}
