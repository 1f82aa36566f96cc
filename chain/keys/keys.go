// Package keys holds the well-known raw storage keys the fork pipeline reads,
// rewrites or deletes. Keeping them as named constants keeps the merge logic
// free of magic hex literals and lets the derivations be checked in isolation.
package keys

const (
	// SystemAccountPrefixHex is the hex encoding of:
	// Twox128("System") ++ Twox128("Account") — the account-data map.
	SystemAccountPrefixHex = "0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9"

	// CodeKeyHex is the hex encoding of ":code", the well-known key the
	// runtime wasm blob lives under.
	CodeKeyHex = "0x3a636f6465"

	// SudoKeyHex is the hex encoding of:
	// Twox128("Sudo") ++ Twox128("Key") — the sudo authority account.
	SudoKeyHex = "0x5c0d1176a568c1f92944340dbfed9e9c530ebca703c85910e7164cb7d1c9e47b"

	// SystemLastRuntimeUpgradeHex is the hex encoding of:
	// Twox128("System") ++ Twox128("LastRuntimeUpgrade"). Deleting it makes
	// the forked node run its on_runtime_upgrade hooks on first start.
	SystemLastRuntimeUpgradeHex = "0x26aa394eea5630e07c48ae0c9558cef7f9cce9c888469bb1a0dceaa129672ef8"

	// StakingForceEraHex is the hex encoding of:
	// Twox128("Staking") ++ Twox128("ForceEra").
	StakingForceEraHex = "0x5f3e4907f716ac89b6347d15ececedcaf7dad0317324aecae8744b87fc95f2f3"

	// ForceNoneHex is the SCALE encoding of Forcing::ForceNone, pinning the
	// validator set by never forcing an era transition.
	ForceNoneHex = "0x02"
)
