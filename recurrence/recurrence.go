package recurrence

import (
	"fmt"
	"math"

	"github.com/samber/mo"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
)

// Recurrence is one occurrence of a possibly-repeating event together with
// everything needed to produce the following occurrences. Values are
// immutable; Advance returns a fresh Recurrence positioned one occurrence
// later.
type Recurrence struct {
	// Cur is the span of the current occurrence.
	Cur mintime.MinInterval
	// Index is the 1-based ordinal of Cur among all occurrences.
	Index   uint32
	pattern Pattern
}

// New positions a recurrence at the first occurrence of the pattern, which
// is span itself. The pattern's date property is not consulted for the
// first occurrence; a rule's anchor date counts even when the property
// would reject it.
func New(span mintime.MinInterval, p Pattern) Recurrence {
	return Recurrence{Cur: span, Index: 1, pattern: p}
}

// Pattern returns the recurrence's repetition pattern.
func (r Recurrence) Pattern() Pattern { return r.pattern }

// Advance returns the recurrence positioned at the next occurrence, or
// None when the pattern terminates. The next occurrence is found by
// stepping the span forward one day at a time, under the span's own
// display offset, until the pattern's property has accepted interval more
// days; running off the representable time range also terminates.
func (r Recurrence) Advance() mo.Option[Recurrence] {
	if !r.pattern.repeats {
		return mo.None[Recurrence]()
	}
	if r.pattern.term.kind == termCount && r.Index >= r.pattern.term.count {
		return mo.None[Recurrence]()
	}

	candidate := r.Cur
	for matched := uint32(0); matched < r.pattern.interval; {
		next, ok := candidate.NextDay()
		if !ok {
			return mo.None[Recurrence]()
		}
		candidate = next
		if r.pattern.prop.Matches(candidate.Start.Date()) {
			matched++
		}
	}

	if r.pattern.term.kind == termUntil && candidate.Start.After(r.pattern.term.until) {
		return mo.None[Recurrence]()
	}
	return mo.Some(Recurrence{Cur: candidate, Index: r.Index + 1, pattern: r.pattern})
}

// Overlap returns the total number of minutes the recurrence's occurrences
// spend inside window. Expansion stops at the first occurrence starting at
// or past the window's end, so unbounded recurrences terminate too.
// Overflow of the running total would mean the caller asked about an
// astronomically long window and panics as a defect.
func (r Recurrence) Overlap(window mintime.MinInterval) uint32 {
	var total uint32
	cur := r
	for {
		if !cur.Cur.Start.Before(window.End) {
			return total
		}
		part := cur.Cur.Intersect(window).NumMin()
		sum := uint64(total) + uint64(part)
		if sum > math.MaxUint32 {
			panic(fmt.Sprintf("overlap accumulation overflows: %d + %d", total, part))
		}
		total = uint32(sum)

		next, ok := cur.Advance().Get()
		if !ok {
			return total
		}
		cur = next
	}
}

// Ended reports whether every occurrence of the recurrence finishes
// before now. An occurrence ending exactly at now has not ended. Unbounded
// recurrences never end.
func (r Recurrence) Ended(now mintime.MinInstant) bool {
	if r.pattern.repeats && r.pattern.term.kind == termNever {
		return false
	}
	cur := r
	for {
		if !cur.Cur.End.Before(now) {
			return false
		}
		next, ok := cur.Advance().Get()
		if !ok {
			return true
		}
		cur = next
	}
}

func (r Recurrence) String() string {
	return fmt.Sprintf("%v, %v", r.Cur, r.pattern)
}
