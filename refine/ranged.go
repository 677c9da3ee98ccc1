// Package refine provides small numeric value types whose invalid states
// cannot be constructed: integers constrained to an inclusive range, and
// integer percentages. Validation happens once, at the construction site;
// everything downstream may rely on the value being in range.
package refine

import "fmt"

// RangeError reports a failed Ranged construction or increment. It carries
// the offending value together with the bounds so callers can branch on the
// direction of the violation.
type RangeError struct {
	Value     int64
	Min, Max  int64
	Underflow bool
}

func (e *RangeError) Error() string {
	if e.Underflow {
		return fmt.Sprintf("value %d underflows range [%d, %d]", e.Value, e.Min, e.Max)
	}
	return fmt.Sprintf("value %d overflows range [%d, %d]", e.Value, e.Min, e.Max)
}

// Ranged is an int64 constrained to an inclusive [min, max] range. The zero
// value is a valid element of the degenerate range [0, 0]; meaningful
// instances come from New or one of the named constructors below.
type Ranged struct {
	value    int64
	min, max int64
}

// New constructs a Ranged in [min, max], or returns a *RangeError when n is
// out of bounds.
func New(n, min, max int64) (Ranged, error) {
	if n < min {
		return Ranged{}, &RangeError{Value: n, Min: min, Max: max, Underflow: true}
	}
	if n > max {
		return Ranged{}, &RangeError{Value: n, Min: min, Max: max}
	}
	return Ranged{value: n, min: min, max: max}, nil
}

// MinuteOfHour constructs a minute-of-hour value in [0, 59].
func MinuteOfHour(n int64) (Ranged, error) { return New(n, 0, 59) }

// HourOfDay constructs an hour-of-day value in [0, 23].
func HourOfDay(n int64) (Ranged, error) { return New(n, 0, 23) }

// DayOfMonth constructs a day-of-month value in [1, 31]. Month-specific
// upper bounds are checked separately by the calendar arithmetic.
func DayOfMonth(n int64) (Ranged, error) { return New(n, 1, 31) }

// Positive constructs a strictly positive value, used for occurrence counts
// and repeat intervals.
func Positive(n int64) (Ranged, error) { return New(n, 1, int64(^uint64(0)>>1)) }

// Value returns the wrapped integer.
func (r Ranged) Value() int64 { return r.value }

// Increment returns the successor value, or a *RangeError when it would
// leave the range.
func (r Ranged) Increment() (Ranged, error) {
	if r.value >= r.max {
		return Ranged{}, &RangeError{Value: r.value + 1, Min: r.min, Max: r.max}
	}
	return Ranged{value: r.value + 1, min: r.min, max: r.max}, nil
}

// Equal reports whether two Ranged values wrap the same integer.
func (r Ranged) Equal(other Ranged) bool { return r.value == other.value }

// Less reports whether r wraps a smaller integer than other.
func (r Ranged) Less(other Ranged) bool { return r.value < other.value }

func (r Ranged) String() string { return fmt.Sprintf("%d", r.value) }
