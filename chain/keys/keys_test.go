package keys

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rootnet-dev/forkoff/chain/twox"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err)
	return b
}

func TestDerivations(t *testing.T) {
	require.Equal(t, twox.StorageKey("System", "Account"), SystemAccountPrefixHex)
	require.Equal(t, twox.StorageKey("Sudo", "Key"), SudoKeyHex)
	require.Equal(t, twox.StorageKey("System", "LastRuntimeUpgrade"), SystemLastRuntimeUpgradeHex)
	require.Equal(t, twox.StorageKey("Staking", "ForceEra"), StakingForceEraHex)
}

func TestCodeKey(t *testing.T) {
	require.Equal(t, "0x3a636f6465", CodeKeyHex)
	require.Equal(t, []byte(":code"), mustHex(t, CodeKeyHex))
}
