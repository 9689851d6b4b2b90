package reduce

import (
	"fmt"
	"sort"
)

// IntervalStore holds half-open byte ranges, merging any that touch or
// overlap (spec.md §4.1).
//
// The zero value is an empty, ready-to-use store.
type IntervalStore struct {
	intervals []interval
}

type interval struct {
	lo, hi int
}

// Add inserts [lo, hi), merging it with any existing interval that touches
// or overlaps it - "touch" meaning [a,b) and [b,c) merge into [a,c), not
// only strict overlaps (spec.md §9).
//
// Add panics if hi <= lo: an empty or inverted interval is an
// [ErrInvariantViolation] per spec.md §7, a programming error the caller
// must not construct in the first place.
func (s *IntervalStore) Add(lo, hi int) {
	if hi <= lo {
		panic(fmt.Sprintf("%v: [%d,%d)", ErrInvariantViolation, lo, hi))
	}

	s.intervals = append(s.intervals, interval{lo: lo, hi: hi})
	s.mergeOverlaps()
}

func (s *IntervalStore) mergeOverlaps() {
	if len(s.intervals) < 2 {
		return
	}

	sort.Slice(s.intervals, func(i, j int) bool {
		return s.intervals[i].lo < s.intervals[j].lo
	})

	merged := s.intervals[:1]

	for _, cur := range s.intervals[1:] {
		last := &merged[len(merged)-1]

		if cur.lo <= last.hi {
			if cur.hi > last.hi {
				last.hi = cur.hi
			}

			continue
		}

		merged = append(merged, cur)
	}

	s.intervals = merged
}

// Count returns the number of stored, already-merged intervals.
func (s *IntervalStore) Count() int {
	return len(s.intervals)
}

// DrainSorted returns the stored intervals as [begin,end) pairs in
// ascending order of begin. It does not mutate the store.
func (s *IntervalStore) DrainSorted() [][2]int {
	out := make([][2]int, len(s.intervals))
	for i, iv := range s.intervals {
		out[i] = [2]int{iv.lo, iv.hi}
	}

	return out
}
