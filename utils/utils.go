package utils

import (
	"github.com/twmb/murmur3"
)

// HashBytes hashes the concatenation of its arguments; the boundaries
// between arguments do not affect the result.
func HashBytes(bytes ...[]byte) uint64 {
	hash := murmur3.New64()
	for _, b := range bytes {
		_, err := hash.Write(b)
		if err != nil {
			panic(err)
		}
	}
	return hash.Sum64()
}
