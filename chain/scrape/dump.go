package scrape

import (
	"encoding/json"
	"os"

	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api"
)

// WriteDump persists the scraped pairs as a JSON array of [key, value]
// entries, the intermediate artifact kept for inspection and offline
// re-merging.
func WriteDump(path string, pairs []api.StorageChange) error {
	b, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return xerrors.Errorf("encoding raw storage dump: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return xerrors.Errorf("writing raw storage dump: %w", err)
	}
	return nil
}

// ReadDump loads a dump previously written by WriteDump.
func ReadDump(path string) ([]api.StorageChange, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading raw storage dump: %w", err)
	}
	var pairs []api.StorageChange
	if err := json.Unmarshal(b, &pairs); err != nil {
		return nil, xerrors.Errorf("parsing raw storage dump %s: %w", path, err)
	}
	return pairs, nil
}
