// Package allowlist derives the set of storage prefixes eligible for
// migration from a node's module list.
package allowlist

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api"
	"github.com/rootnet-dev/forkoff/chain/keys"
	"github.com/rootnet-dev/forkoff/chain/twox"
)

// SkipModules is the foundational machinery whose storage must never be
// overwritten on the fork: importing it breaks the dev chain's identity,
// session and finality handling.
var SkipModules = map[string]struct{}{
	"System":          {},
	"Session":         {},
	"Babe":            {},
	"Grandpa":         {},
	"GrandpaFinality": {},
	"FinalityTracker": {},
	"Authorship":      {},
}

// fixedPrefixes are always migrated regardless of the module list: the
// account-data map and the runtime code.
var fixedPrefixes = []string{
	keys.SystemAccountPrefixHex,
	keys.CodeKeyHex,
}

// AllowList is a set of hex storage-key prefixes eligible for migration.
type AllowList struct {
	prefixes []string
}

// Build derives the allow-list from the module list: the fixed prefixes plus
// the twox-128 prefix of every module not in SkipModules. A record without a
// name is malformed metadata; all malformed records are reported together and
// the build fails.
func Build(modules []api.ModuleMetadata) (*AllowList, error) {
	l := &AllowList{prefixes: append([]string{}, fixedPrefixes...)}

	var merr *multierror.Error
	for i, m := range modules {
		if m.Name == "" {
			merr = multierror.Append(merr, xerrors.Errorf("module record %d has no name", i))
			continue
		}
		if _, skip := SkipModules[m.Name]; skip {
			continue
		}
		l.prefixes = append(l.prefixes, twox.ModulePrefix(m.Name))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, xerrors.Errorf("malformed module metadata: %w", err)
	}

	return l, nil
}

// Allows reports whether the key falls under any allow-listed prefix. The
// comparison is over the hex-string form; both sides are 0x-prefixed and
// hex-digit aligned.
func (l *AllowList) Allows(key string) bool {
	for _, prefix := range l.prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Prefixes returns a copy of the derived prefix set.
func (l *AllowList) Prefixes() []string {
	return append([]string{}, l.prefixes...)
}

// LoadModules reads a pre-fetched module metadata file (a JSON array of
// records, as written by the metadata command).
func LoadModules(path string) ([]api.ModuleMetadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading module metadata: %w", err)
	}

	var modules []api.ModuleMetadata
	if err := json.Unmarshal(b, &modules); err != nil {
		return nil, xerrors.Errorf("parsing module metadata %s: %w", path, err)
	}
	return modules, nil
}
