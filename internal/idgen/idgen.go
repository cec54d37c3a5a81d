// Package idgen generates prefixed record identifiers.
//
// Production identifiers are a fixed prefix followed by a random UUIDv4, for
// example "BIB-3f1c0a4e-...". Tests inject a Sequence to get predictable ids.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Identifier prefixes for catalog records
const (
	LibraryPrefix = "BIB-"
	BookPrefix    = "LIB-"
)

// Generator produces unique identifiers
type Generator interface {
	NewID() string
}

// UUIDGenerator returns Prefix + a random UUIDv4
type UUIDGenerator struct {
	Prefix string
}

// NewUUID creates a UUIDGenerator for the given prefix
func NewUUID(prefix string) UUIDGenerator {
	return UUIDGenerator{Prefix: prefix}
}

// NewID implements Generator
func (g UUIDGenerator) NewID() string {
	return g.Prefix + uuid.NewString()
}

// Sequence returns Prefix + 1, 2, 3, ... and is safe for concurrent use.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

// NewSequence creates a Sequence starting at 1
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// NewID implements Generator
func (s *Sequence) NewID() string {
	return s.Prefix + strconv.FormatUint(s.n.Add(1), 10)
}
