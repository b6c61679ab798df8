package hashkey

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// ErrUnknownAlgorithm is returned by Lookup for unsupported names.
var ErrUnknownAlgorithm = errors.New("hashkey: unknown hash algorithm")

// Func maps (seed, id, salt) to an ordering key.
type Func func(seed int64, id, salt string) uint64

const (
	AlgorithmSHA256  = "sha256"
	AlgorithmBLAKE2b = "blake2b"
)

// Key is the default key function (SHA256).
func Key(seed int64, id, salt string) uint64 { return SHA256(seed, id, salt) }

// SHA256 keys on the SHA-256 digest of the message.
func SHA256(seed int64, id, salt string) uint64 {
	sum := sha256.Sum256(message(seed, id, salt))
	return binary.BigEndian.Uint64(sum[:8])
}

// BLAKE2b keys on the BLAKE2b-256 digest of the message.
func BLAKE2b(seed int64, id, salt string) uint64 {
	sum := blake2b.Sum256(message(seed, id, salt))
	return binary.BigEndian.Uint64(sum[:8])
}

// Lookup resolves an algorithm name; the empty name selects SHA256.
func Lookup(name string) (Func, error) {
	switch name {
	case "", AlgorithmSHA256:
		return SHA256, nil
	case AlgorithmBLAKE2b:
		return BLAKE2b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

func message(seed int64, id, salt string) []byte {
	b := make([]byte, 0, 24+len(salt)+len(id))
	b = strconv.AppendInt(b, seed, 10)
	b = append(b, ':')
	b = append(b, salt...)
	b = append(b, ':')
	b = append(b, id...)
	return b
}

// SortIDs sorts ids in place ascending by key, breaking ties by id.
func SortIDs(ids []string, key Func, seed int64, salt string) {
	keys := make(map[string]uint64, len(ids))
	for _, id := range ids {
		keys[id] = key(seed, id, salt)
	}
	sort.Slice(ids, func(i, j int) bool {
		ki, kj := keys[ids[i]], keys[ids[j]]
		if ki != kj {
			return ki < kj
		}
		return ids[i] < ids[j]
	})
}
