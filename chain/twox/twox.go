package twox

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/OneOfOne/xxhash"
)

// Twox128 computes the 128-bit twox hash used to derive module storage
// prefixes: two seeded 64-bit xxHash digests of the input (seeds 0 and 1),
// each encoded little-endian, concatenated. The little-endian encoding is
// what the storage layer expects on the wire; getting it wrong produces
// well-formed but non-matching prefixes.
func Twox128(data []byte) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint64(out[:8], xxhash.Checksum64S(data, 0))
	binary.LittleEndian.PutUint64(out[8:], xxhash.Checksum64S(data, 1))
	return out
}

// ModulePrefix returns the 0x-prefixed hex storage prefix owned by the named
// module, e.g. ModulePrefix("System") == "0x26aa394eea5630e07c48ae0c9558cef7".
func ModulePrefix(module string) string {
	return "0x" + hex.EncodeToString(Twox128([]byte(module)))
}

// StorageKey returns the 0x-prefixed hex storage key for a plain storage item:
// Twox128(module) ++ Twox128(item).
func StorageKey(module, item string) string {
	k := append(Twox128([]byte(module)), Twox128([]byte(item))...)
	return "0x" + hex.EncodeToString(k)
}
