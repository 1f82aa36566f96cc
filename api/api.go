// Package api defines the typed JSON-RPC surface of a Substrate node, in the
// func-field struct form the rpc client fills in via reflection. Field names
// map to wire method names through the client's name formatter, e.g.
// StateStruct.Internal.GetKeys <-> "state_getKeys".
package api

import "context"

// StateStruct covers the "state" RPC namespace.
type StateStruct struct {
	Internal struct {
		GetKeys            func(ctx context.Context, prefix string, at string) ([]string, error)
		QueryStorageAt     func(ctx context.Context, keys []string, at string) ([]StorageChangeSet, error)
		GetStorage         func(ctx context.Context, key string, at string) (*string, error)
		GetRuntimeVersion  func(ctx context.Context, at string) (RuntimeVersion, error)
		GetMetadataModules func(ctx context.Context) ([]ModuleMetadata, error)
	}
}

// GetKeys returns every storage key starting with prefix at the given block.
func (s *StateStruct) GetKeys(ctx context.Context, prefix, at string) ([]string, error) {
	return s.Internal.GetKeys(ctx, prefix, at)
}

// QueryStorageAt resolves the values of keys at the given block. The batched
// endpoint may report null values for keys that do exist; callers repair those
// with GetStorage.
func (s *StateStruct) QueryStorageAt(ctx context.Context, keys []string, at string) ([]StorageChangeSet, error) {
	return s.Internal.QueryStorageAt(ctx, keys, at)
}

// GetStorage point-queries a single key, returning nil if it has no value.
func (s *StateStruct) GetStorage(ctx context.Context, key, at string) (*string, error) {
	return s.Internal.GetStorage(ctx, key, at)
}

func (s *StateStruct) GetRuntimeVersion(ctx context.Context, at string) (RuntimeVersion, error) {
	return s.Internal.GetRuntimeVersion(ctx, at)
}

func (s *StateStruct) GetMetadataModules(ctx context.Context) ([]ModuleMetadata, error) {
	return s.Internal.GetMetadataModules(ctx)
}

// SystemStruct covers the "system" RPC namespace.
type SystemStruct struct {
	Internal struct {
		Chain   func(ctx context.Context) (string, error)
		Version func(ctx context.Context) (string, error)
	}
}

// Chain returns the human-readable chain name, e.g. "Root Network".
func (s *SystemStruct) Chain(ctx context.Context) (string, error) {
	return s.Internal.Chain(ctx)
}

// Version returns the node client version string, e.g. "3.0.0-abcdef0".
func (s *SystemStruct) Version(ctx context.Context) (string, error) {
	return s.Internal.Version(ctx)
}

// ChainStruct covers the "chain" RPC namespace.
type ChainStruct struct {
	Internal struct {
		GetBlockHash func(ctx context.Context) (string, error)
	}
}

// GetBlockHash returns the current head block hash.
func (s *ChainStruct) GetBlockHash(ctx context.Context) (string, error) {
	return s.Internal.GetBlockHash(ctx)
}

// NodeAPI bundles the namespaces a fork run needs.
type NodeAPI struct {
	StateStruct
	SystemStruct
	ChainStruct
}
