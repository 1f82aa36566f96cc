package scrape

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/stretchr/testify/require"

	"github.com/rootnet-dev/forkoff/api"
)

const testBlock = "0xdeadbeef"

// fakeNode serves the state_* methods the scraper uses. Storage is a plain
// map; batchNull marks keys whose batched value comes back null (repairable
// with a point query), vanished marks keys deleted since enumeration (null
// everywhere).
type fakeNode struct {
	lk        sync.Mutex
	storage   map[string]string
	batchNull map[string]bool
	vanished  map[string]bool

	scanCalls  int
	batchCalls int
	pointCalls int
}

func (f *fakeNode) GetKeys(ctx context.Context, prefix, at string) ([]string, error) {
	f.lk.Lock()
	defer f.lk.Unlock()
	f.scanCalls++

	if at != testBlock {
		return nil, fmt.Errorf("unexpected block %s", at)
	}

	var out []string
	for k := range f.storage {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k)
		}
	}
	return out, nil
}

func (f *fakeNode) QueryStorageAt(ctx context.Context, keys []string, at string) ([]api.StorageChangeSet, error) {
	f.lk.Lock()
	defer f.lk.Unlock()
	f.batchCalls++

	set := api.StorageChangeSet{Block: at}
	for _, k := range keys {
		change := api.StorageChange{Key: k}
		if v, ok := f.storage[k]; ok && !f.batchNull[k] && !f.vanished[k] {
			vv := v
			change.Value = &vv
		}
		set.Changes = append(set.Changes, change)
	}
	return []api.StorageChangeSet{set}, nil
}

func (f *fakeNode) GetStorage(ctx context.Context, key, at string) (*string, error) {
	f.lk.Lock()
	defer f.lk.Unlock()
	f.pointCalls++

	if f.vanished[key] {
		return nil, nil
	}
	if v, ok := f.storage[key]; ok {
		vv := v
		return &vv, nil
	}
	return nil, nil
}

func serveFakeNode(t *testing.T, node *fakeNode) string {
	t.Helper()

	rpcServer := jsonrpc.NewServer()
	rpcServer.Register("Substrate", node)
	rpcServer.AliasMethod("state_getKeys", "Substrate.GetKeys")
	rpcServer.AliasMethod("state_queryStorageAt", "Substrate.QueryStorageAt")
	rpcServer.AliasMethod("state_getStorage", "Substrate.GetStorage")

	srv := httptest.NewServer(rpcServer)
	t.Cleanup(srv.Close)
	return srv.URL
}

func testStorage(n int) map[string]string {
	storage := make(map[string]string, n)
	for i := 0; i < n; i++ {
		// Spread keys over many first-byte partitions.
		storage[fmt.Sprintf("0x%02x%06x", i%256, i)] = fmt.Sprintf("0x%04x", i)
	}
	return storage
}

func TestFetchKeys(t *testing.T) {
	node := &fakeNode{storage: testStorage(1000)}
	addr := serveFakeNode(t, node)

	s := NewScraper(addr)
	keys, err := s.FetchKeys(context.Background(), testBlock)
	require.NoError(t, err)
	require.Len(t, keys, len(node.storage))

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		require.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
		_, ok := node.storage[k]
		require.True(t, ok, "unknown key %s", k)
	}

	// One scan per partition regardless of worker count.
	require.Equal(t, 256, node.scanCalls)
}

func TestFetchKeysWorkerCountIrrelevant(t *testing.T) {
	node := &fakeNode{storage: testStorage(500)}
	addr := serveFakeNode(t, node)

	single := NewScraper(addr)
	single.KeyWorkers = 1
	got1, err := single.FetchKeys(context.Background(), testBlock)
	require.NoError(t, err)

	pooled := NewScraper(addr)
	got20, err := pooled.FetchKeys(context.Background(), testBlock)
	require.NoError(t, err)

	require.ElementsMatch(t, got1, got20)
}

func TestFetchValues(t *testing.T) {
	node := &fakeNode{
		storage:   testStorage(300),
		batchNull: map[string]bool{"0x01000001": true, "0x2a00002a": true},
		vanished:  map[string]bool{"0x03000003": true},
	}
	addr := serveFakeNode(t, node)

	keys := make([]string, 0, len(node.storage))
	for k := range node.storage {
		keys = append(keys, k)
	}

	s := NewScraper(addr)
	s.BatchSize = 64 // force several batches
	pairs, err := s.FetchValues(context.Background(), testBlock, keys)
	require.NoError(t, err)
	require.Len(t, pairs, len(keys))

	byKey := make(map[string]*string, len(pairs))
	for _, p := range pairs {
		_, dup := byKey[p.Key]
		require.False(t, dup, "key %s appears twice", p.Key)
		byKey[p.Key] = p.Value
	}

	for k, want := range node.storage {
		v, ok := byKey[k]
		require.True(t, ok, "missing key %s", k)
		if node.vanished[k] {
			require.Nil(t, v)
			continue
		}
		require.NotNil(t, v, "absent value for %s", k)
		require.Equal(t, want, *v)
	}

	// Every batch-null and vanished key costs exactly one point repair.
	require.Equal(t, len(node.batchNull)+len(node.vanished), node.pointCalls)
	require.Greater(t, node.batchCalls, 1)
}

func TestDumpRoundTrip(t *testing.T) {
	v := "0x01"
	pairs := []api.StorageChange{
		{Key: "0xaa", Value: &v},
		{Key: "0xbb", Value: nil},
	}

	path := filepath.Join(t.TempDir(), "raw_storage.json")
	require.NoError(t, WriteDump(path, pairs))

	got, err := ReadDump(path)
	require.NoError(t, err)
	require.Equal(t, pairs, got)
}
