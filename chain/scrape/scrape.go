// Package scrape pulls the full key/value state of a remote node at a fixed
// block, over parallel RPC workers.
//
// Both phases share the same shape: a work queue and a result accumulator
// behind one mutex, with every RPC call made outside the lock so network
// latency never serializes the pool. Critical sections are O(1) slice ops.
package scrape

import (
	"context"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/jpillora/backoff"
	"golang.org/x/xerrors"
)

var log = logging.Logger("scrape")

const (
	// DefaultKeyWorkers scans the 256 key-space partitions.
	DefaultKeyWorkers = 20
	// DefaultValueWorkers resolves values in batches.
	DefaultValueWorkers = 10
	// DefaultBatchSize is the per-call key count for state_queryStorageAt.
	DefaultBatchSize = 2000

	rpcAttempts = 3
)

// Scraper extracts storage state from the node at addr. Each worker dials its
// own connection and keeps it for its lifetime.
type Scraper struct {
	Addr string

	KeyWorkers   int
	ValueWorkers int
	BatchSize    int
}

func NewScraper(addr string) *Scraper {
	return &Scraper{
		Addr:         addr,
		KeyWorkers:   DefaultKeyWorkers,
		ValueWorkers: DefaultValueWorkers,
		BatchSize:    DefaultBatchSize,
	}
}

// withRetry wraps one RPC call with a bounded jittered retry. The remote side
// offers no timeout of its own, so a failed call is retried a fixed number of
// times and then surfaced.
func withRetry[T any](ctx context.Context, what string, f func() (T, error)) (T, error) {
	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var res T
	var err error
	for i := 0; i < rpcAttempts; i++ {
		res, err = f()
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		wait := b.Duration()
		log.Warnw("rpc call failed, retrying", "call", what, "attempt", i+1, "backoff", wait, "error", err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return res, ctx.Err()
		}
	}

	return res, xerrors.Errorf("%s failed after %d attempts: %w", what, rpcAttempts, err)
}
