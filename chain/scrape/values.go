package scrape

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api"
	"github.com/rootnet-dev/forkoff/api/client"
)

// FetchValues resolves the value of every key at the given block. Every input
// key appears exactly once in the output.
//
// The batched state_queryStorageAt endpoint reports null for some value
// encodings even when the key holds data, so every null in a batch response
// is repaired with an individual state_getStorage before the chunk is
// committed. A null that survives the point repair means the key was deleted
// between enumeration and fetch; it is kept as an explicit absence for the
// caller to decide on.
func (s *Scraper) FetchValues(ctx context.Context, at string, keys []string) ([]api.StorageChange, error) {
	queue := append([]string{}, keys...)

	var lk sync.Mutex
	out := make([]api.StorageChange, 0, len(keys))

	grp, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.ValueWorkers; i++ {
		grp.Go(func() error {
			state, closer, err := client.NewStateRPC(gctx, s.Addr, nil)
			if err != nil {
				return xerrors.Errorf("dialing fetch worker connection: %w", err)
			}
			defer closer()

			for {
				lk.Lock()
				n := min(s.BatchSize, len(queue))
				batch := queue[len(queue)-n:]
				queue = queue[:len(queue)-n]
				lk.Unlock()

				if len(batch) == 0 {
					return nil
				}

				sets, err := withRetry(gctx, "state_queryStorageAt", func() ([]api.StorageChangeSet, error) {
					return state.QueryStorageAt(gctx, batch, at)
				})
				if err != nil {
					return err
				}
				if len(sets) == 0 {
					return xerrors.Errorf("state_queryStorageAt returned no change set for %d keys", len(batch))
				}

				changes := sets[0].Changes
				if len(changes) != len(batch) {
					return xerrors.Errorf("state_queryStorageAt returned %d changes for %d keys", len(changes), len(batch))
				}

				for j := range changes {
					if changes[j].Value != nil {
						continue
					}
					key := changes[j].Key
					v, err := withRetry(gctx, "state_getStorage", func() (*string, error) {
						return state.GetStorage(gctx, key, at)
					})
					if err != nil {
						return err
					}
					if v == nil {
						log.Warnw("no value after point repair, key deleted since enumeration", "key", key)
					}
					changes[j].Value = v
				}

				lk.Lock()
				out = append(out, changes...)
				lk.Unlock()
			}
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	log.Infow("value fetch complete", "pairs", len(out))
	return out, nil
}
