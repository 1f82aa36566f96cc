package scrape

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api/client"
)

// FetchKeys enumerates every storage key at the given block. The key space is
// partitioned by first byte into 256 prefixes forming a shared work stack;
// workers pull partitions as they finish, which balances load despite wildly
// uneven per-prefix key counts. Partitions are disjoint, so the union carries
// no duplicates.
func (s *Scraper) FetchKeys(ctx context.Context, at string) ([]string, error) {
	prefixes := make([]string, 0, 256)
	for i := 0; i < 256; i++ {
		prefixes = append(prefixes, fmt.Sprintf("0x%02x", i))
	}

	var lk sync.Mutex
	keys := make([]string, 0, 1<<16)

	grp, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.KeyWorkers; i++ {
		grp.Go(func() error {
			state, closer, err := client.NewStateRPC(gctx, s.Addr, nil)
			if err != nil {
				return xerrors.Errorf("dialing scan worker connection: %w", err)
			}
			defer closer()

			// Holds the previous partition's scan; flushed on the next
			// lock acquisition so the RPC call itself runs unlocked.
			var scanned []string
			for {
				lk.Lock()
				keys = append(keys, scanned...)
				if len(prefixes) == 0 {
					lk.Unlock()
					return nil
				}
				prefix := prefixes[len(prefixes)-1]
				prefixes = prefixes[:len(prefixes)-1]
				lk.Unlock()

				scanned, err = withRetry(gctx, "state_getKeys", func() ([]string, error) {
					return state.GetKeys(gctx, prefix, at)
				})
				if err != nil {
					return err
				}
				log.Debugw("scanned partition", "prefix", prefix, "keys", len(scanned))
			}
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	log.Infow("key enumeration complete", "keys", len(keys))
	return keys, nil
}
