package twox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModulePrefix(t *testing.T) {
	// Known prefixes published for these modules.
	for name, want := range map[string]string{
		"System":  "0x26aa394eea5630e07c48ae0c9558cef7",
		"Babe":    "0x1cb6f36e027abb2091cfb5110ab5087f",
		"Sudo":    "0x5c0d1176a568c1f92944340dbfed9e9c",
		"Staking": "0x5f3e4907f716ac89b6347d15ececedca",
	} {
		require.Equal(t, want, ModulePrefix(name), "prefix for %s", name)
	}
}

func TestModulePrefixLength(t *testing.T) {
	for _, name := range []string{"", "A", "Balances", "SomeVeryLongModuleNameIndeed"} {
		got := ModulePrefix(name)
		require.Len(t, got, 34, "prefix for %q", name)
		require.Equal(t, "0x", got[:2])
	}
}

func TestModulePrefixDeterministic(t *testing.T) {
	require.Equal(t, ModulePrefix("Assets"), ModulePrefix("Assets"))
}

func TestStorageKey(t *testing.T) {
	// System.Account is the account-data map, Sudo.Key the sudo authority,
	// Staking.ForceEra the era-forcing flag.
	require.Equal(t,
		"0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9",
		StorageKey("System", "Account"))
	require.Equal(t,
		"0x5c0d1176a568c1f92944340dbfed9e9c530ebca703c85910e7164cb7d1c9e47b",
		StorageKey("Sudo", "Key"))
	require.Equal(t,
		"0x5f3e4907f716ac89b6347d15ececedcaf7dad0317324aecae8744b87fc95f2f3",
		StorageKey("Staking", "ForceEra"))
}
