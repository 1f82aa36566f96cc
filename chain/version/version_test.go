package version

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rootnet-dev/forkoff/api"
)

func fakeNode(clientVersion string, specVersion uint32) *api.NodeAPI {
	node := &api.NodeAPI{}
	node.SystemStruct.Internal.Version = func(context.Context) (string, error) {
		return clientVersion, nil
	}
	node.StateStruct.Internal.GetRuntimeVersion = func(_ context.Context, at string) (api.RuntimeVersion, error) {
		return api.RuntimeVersion{SpecVersion: specVersion}, nil
	}
	return node
}

func TestResolveExact(t *testing.T) {
	tag, err := Resolve(context.Background(), fakeNode("3.0.0", 108), "0x00",
		StaticTagSource{"v2.90.0", "v3.108.0", "v3.109.0"})
	require.NoError(t, err)
	require.Equal(t, "v3.108.0", tag)
}

func TestResolveExactWithCommitSuffix(t *testing.T) {
	tag, err := Resolve(context.Background(), fakeNode("3.0.0-1234abcd", 108), "0x00",
		StaticTagSource{"v3.108.0"})
	require.NoError(t, err)
	require.Equal(t, "v3.108.0", tag)
}

func TestResolveFallbackByRuntimeVersion(t *testing.T) {
	// No v3.* tag: client version drifted, match on the runtime segment.
	tag, err := Resolve(context.Background(), fakeNode("3.0.0", 108), "0x00",
		StaticTagSource{"v4.108.0"})
	require.NoError(t, err)
	require.Equal(t, "v4.108.0", tag)
}

func TestResolveFallbackTieBreak(t *testing.T) {
	tag, err := Resolve(context.Background(), fakeNode("3.0.0", 108), "0x00",
		StaticTagSource{"v4.108.0", "v5.108.0", "v4.108.3"})
	require.NoError(t, err)
	require.Equal(t, "v5.108.0", tag)
}

func TestResolveFallbackPrefersSemverTags(t *testing.T) {
	tag, err := Resolve(context.Background(), fakeNode("3.0.0", 108), "0x00",
		StaticTagSource{"release.108.x", "v4.108.1"})
	require.NoError(t, err)
	require.Equal(t, "v4.108.1", tag)
}

func TestResolveNoMatch(t *testing.T) {
	_, err := Resolve(context.Background(), fakeNode("3.0.0", 108), "0x00",
		StaticTagSource{"v3.107.0", "v3.109.0"})
	require.ErrorIs(t, err, ErrNoMatchingTag)
}

func TestResolveEmptyTagSet(t *testing.T) {
	_, err := Resolve(context.Background(), fakeNode("3.0.0", 108), "0x00", StaticTagSource{})
	require.ErrorIs(t, err, ErrNoMatchingTag)
}
