package champ

import "github.com/cespare/xxhash/v2"

// DefaultStringHash is the default HashFn[string], backed by
// xxhash.Sum64 truncated to the trie's 32-bit partitioning width. Used
// by NewSet[string]/NewMap[string, V]-style convenience constructors
// when a caller doesn't supply their own HashFn.
func DefaultStringHash(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// DefaultBytesHash is the []byte counterpart of DefaultStringHash.
func DefaultBytesHash(b []byte) uint32 {
	return uint32(xxhash.Sum64(b))
}

// DefaultStringEquals and DefaultBytesEquals are the EqualsFn
// counterparts for the two default-hashed key shapes above.
func DefaultStringEquals(a, b string) bool { return a == b }

func DefaultBytesEquals(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
