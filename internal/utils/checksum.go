package utils

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 digest of a serialized snapshot, used to
// detect corruption when loading persisted snapshots.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
