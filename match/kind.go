package match

import (
	"sort"
	"strings"
)

// Kind identifies one category of match data the service can return.
type Kind string

const (
	KindEvents      Kind = "events"
	KindLineups     Kind = "lineups"
	KindStats       Kind = "stats"
	KindStandings   Kind = "standings"
	KindPower       Kind = "power"
	KindPlayerStats Kind = "playerStats"
)

// kindOrder is the canonical ordering used by KindSet.Slice and String.
var kindOrder = []Kind{KindEvents, KindLineups, KindStats, KindStandings, KindPower, KindPlayerStats}

// Kinds returns every known kind in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range kindOrder {
		if k == known {
			return true
		}
	}
	return false
}

// KindSet is an immutable-by-convention set of kinds. The zero value is empty.
type KindSet struct {
	m map[Kind]struct{}
}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	s := KindSet{m: make(map[Kind]struct{}, len(kinds))}
	for _, k := range kinds {
		s.m[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	_, ok := s.m[k]
	return ok
}

// Len returns the number of kinds in the set.
func (s KindSet) Len() int {
	return len(s.m)
}

// Empty reports whether the set has no kinds.
func (s KindSet) Empty() bool {
	return len(s.m) == 0
}

// Add returns a new set containing s plus the given kinds.
func (s KindSet) Add(kinds ...Kind) KindSet {
	out := NewKindSet(s.Slice()...)
	for _, k := range kinds {
		out.m[k] = struct{}{}
	}
	return out
}

// Union returns the kinds present in either set.
func (s KindSet) Union(o KindSet) KindSet {
	return s.Add(o.Slice()...)
}

// Minus returns the kinds of s that are not in o.
func (s KindSet) Minus(o KindSet) KindSet {
	out := NewKindSet()
	for k := range s.m {
		if !o.Has(k) {
			out.m[k] = struct{}{}
		}
	}
	return out
}

// Intersect returns the kinds present in both sets.
func (s KindSet) Intersect(o KindSet) KindSet {
	out := NewKindSet()
	for k := range s.m {
		if o.Has(k) {
			out.m[k] = struct{}{}
		}
	}
	return out
}

// SubsetOf reports whether every kind of s is also in o.
func (s KindSet) SubsetOf(o KindSet) bool {
	for k := range s.m {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same kinds.
func (s KindSet) Equal(o KindSet) bool {
	return s.Len() == o.Len() && s.SubsetOf(o)
}

// Slice returns the kinds in canonical order. Unknown kinds sort last by name.
func (s KindSet) Slice() []Kind {
	out := make([]Kind, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	rank := func(k Kind) int {
		for i, known := range kindOrder {
			if k == known {
				return i
			}
		}
		return len(kindOrder)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// String renders the set as a comma separated list, e.g. "events,lineups".
func (s KindSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, k := range s.Slice() {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ",")
}
