package domain

import (
	"crypto/md5"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// ChainSeparator joins stop names before hashing. Stop names are not escaped,
// so a name containing the separator can collide with a different sequence.
const ChainSeparator = "|"

// ChainHash returns the identity of an ordered stop-name sequence:
// base64(md5(join(names, "|"))). The value is opaque to callers.
func ChainHash(names []string) string {
	sum := md5.Sum([]byte(strings.Join(names, ChainSeparator)))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Chain is one distinct journey pattern reduced to its stop names.
type Chain struct {
	Hash  string   `json:"chain_hash"`
	Stops []string `json:"stops"`
}

// Chains maps chain identity to the ordered stop names.
type Chains map[string][]string

// Merge adds every chain of other that is not yet present. It returns the
// identities that were already present with a different name sequence.
func (c Chains) Merge(other Chains) []string {
	var collisions []string
	for hash, names := range other {
		existing, ok := c[hash]
		if !ok {
			c[hash] = names
			continue
		}
		if !sameNames(existing, names) {
			collisions = append(collisions, hash)
		}
	}
	return collisions
}

// StopCount returns the total number of chain positions.
func (c Chains) StopCount() int {
	n := 0
	for _, names := range c {
		n += len(names)
	}
	return n
}

func sameNames(a, b []string) bool {
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

// ChainStation is one position of a stored chain, optionally linked to a
// located station.
type ChainStation struct {
	ChainHash string     `json:"chain_hash" db:"chain_hash"`
	Name      string     `json:"name" db:"station_name"`
	Pos       int        `json:"pos" db:"pos"`
	StopID    *uuid.UUID `json:"stop_id,omitempty" db:"stop_id"`
}

// CitySuggestion is one city-level reconstruction of a chain.
type CitySuggestion struct {
	Length    float64 `json:"len"`
	ChainHash string  `json:"chain_hash"`
	Path      []Point `json:"path"`
}

// StationSlot is a resolved position of a stop-level reconstruction.
type StationSlot struct {
	Point
	StopID uuid.UUID `json:"stop_id"`
}

// StationSuggestion is one stop-level reconstruction. A nil slot marks a
// position without a matching station.
type StationSuggestion struct {
	Length    float64        `json:"len"`
	ChainHash string         `json:"chain_hash"`
	Path      []*StationSlot `json:"path"`
}

// Unresolved returns the number of unresolved slots.
func (s *StationSuggestion) Unresolved() int {
	n := 0
	for _, slot := range s.Path {
		if slot == nil {
			n++
		}
	}
	return n
}

// LinkedChain is a stored chain with the link state of every position.
type LinkedChain struct {
	Hash  string         `json:"chain_hash"`
	Stops []ChainStation `json:"stops"`
}

// GroupChains folds rows ordered by (chain_hash, pos) into chains.
func GroupChains(rows []ChainStation) []LinkedChain {
	var out []LinkedChain
	for _, r := range rows {
		if n := len(out); n == 0 || out[n-1].Hash != r.ChainHash {
			out = append(out, LinkedChain{Hash: r.ChainHash})
		}
		last := &out[len(out)-1]
		last.Stops = append(last.Stops, r)
	}
	return out
}
