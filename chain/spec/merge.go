package spec

import (
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api"
	"github.com/rootnet-dev/forkoff/chain/allowlist"
	"github.com/rootnet-dev/forkoff/chain/keys"
)

// Merge migrates the allow-listed subset of pairs into genesis.raw.top and
// applies the fixed dev-chain overrides:
//
//   - the base spec's sudo key survives, whatever the source chain held;
//   - System.LastRuntimeUpgrade is deleted so on_runtime_upgrade fires on the
//     fork's first start (a from-scratch base spec may not carry the key at
//     all, which is fine);
//   - Staking.ForceEra is pinned to ForceNone so the validator set stays put.
//
// The overrides are idempotent: merging the same inputs twice yields the same
// document. A base spec without a sudo key cannot be made safe and is
// rejected.
func (s *Spec) Merge(pairs []api.StorageChange, allow *allowlist.AllowList) error {
	sudo, ok := s.top[keys.SudoKeyHex]
	if !ok {
		return xerrors.New("base spec has no sudo key to preserve")
	}

	var migrated, skipped int
	for _, p := range pairs {
		if !allow.Allows(p.Key) {
			continue
		}
		if p.Value == nil {
			// Deleted on the source chain between scan and fetch; a JSON
			// null under top would make the spec unloadable.
			log.Warnw("skipping absent value", "key", p.Key)
			skipped++
			continue
		}
		s.top[p.Key] = *p.Value
		migrated++
	}

	s.top[keys.SudoKeyHex] = sudo
	delete(s.top, keys.SystemLastRuntimeUpgradeHex)
	s.top[keys.StakingForceEraHex] = keys.ForceNoneHex

	log.Infow("storage migrated", "migrated", migrated, "skipped", skipped, "total", len(pairs))
	return nil
}
