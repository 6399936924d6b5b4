package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hasher computes SHA-256 digests for payload hashes
type Hasher struct{}

// DefaultHasher returns the default hasher
func DefaultHasher() *Hasher {
	return &Hasher{}
}

// Hash computes a hex digest of data
func (h *Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString computes a hash of a string
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

// HashFields computes an order-independent hash from multiple fields
func (h *Hasher) HashFields(fields ...string) string {
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)

	return h.HashString(strings.Join(sorted, "|"))
}
