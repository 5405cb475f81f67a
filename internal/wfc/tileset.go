package wfc

import (
	"slices"
	"strconv"
	"strings"
)

// TileSet is a sorted, duplicate-free set of tile codes.
// Sorted order keeps random choices reproducible for a given seed.
// The zero value is the empty set.
type TileSet []TileCode

// NewTileSet builds a set from codes in any order, dropping duplicates.
func NewTileSet(codes ...TileCode) TileSet {
	s := make(TileSet, len(codes))
	copy(s, codes)
	slices.Sort(s)
	return slices.Compact(s)
}

// Len returns the number of codes in the set.
func (s TileSet) Len() int {
	return len(s)
}

// Contains reports whether code is in the set.
func (s TileSet) Contains(code TileCode) bool {
	_, ok := slices.BinarySearch(s, code)
	return ok
}

// Clone returns an independent copy of the set.
func (s TileSet) Clone() TileSet {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// Equal reports whether both sets hold the same codes.
func (s TileSet) Equal(other TileSet) bool {
	return slices.Equal(s, other)
}

// Without returns the codes of s that are not in other.
func (s TileSet) Without(other TileSet) TileSet {
	out := make(TileSet, 0, len(s))
	i, j := 0, 0
	for i < len(s) {
		switch {
		case j >= len(other) || s[i] < other[j]:
			out = append(out, s[i])
			i++
		case s[i] > other[j]:
			j++
		default:
			i++
			j++
		}
	}
	return out
}

// Intersect returns the codes present in both sets.
func (s TileSet) Intersect(other TileSet) TileSet {
	out := make(TileSet, 0, min(len(s), len(other)))
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] < other[j]:
			i++
		case s[i] > other[j]:
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	return out
}

// String renders the set as {a,b,c}.
func (s TileSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}
