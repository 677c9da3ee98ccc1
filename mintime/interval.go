package mintime

import "fmt"

// MinInterval is a half-open [Start, End) span between two instants. A
// degenerate (Start == End) or inverted (Start after End) interval is legal
// and simply has zero duration.
type MinInterval struct {
	Start MinInstant
	End   MinInstant
}

// NewInterval constructs the half-open span from start to end.
func NewInterval(start, end MinInstant) MinInterval {
	return MinInterval{Start: start, End: end}
}

// NumMin returns the duration in minutes, zero for degenerate or inverted
// spans.
func (iv MinInterval) NumMin() uint32 {
	return iv.End.MinutesSince(iv.Start)
}

// Intersect returns the overlap of two spans. The result may be inverted,
// in which case its duration is zero.
func (iv MinInterval) Intersect(other MinInterval) MinInterval {
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.End
	if other.End.Before(end) {
		end = other.End
	}
	return MinInterval{Start: start, End: end}
}

// AddMinutes shifts both endpoints forward by n minutes. The second return
// value is false when either endpoint would leave the representable range.
func (iv MinInterval) AddMinutes(n uint32) (MinInterval, bool) {
	start, ok := iv.Start.AddMinutes(n)
	if !ok {
		return MinInterval{}, false
	}
	end, ok := iv.End.AddMinutes(n)
	if !ok {
		return MinInterval{}, false
	}
	return MinInterval{Start: start, End: end}, true
}

// NextDay shifts the span forward by one whole day.
func (iv MinInterval) NextDay() (MinInterval, bool) {
	return iv.AddMinutes(MinutesPerDay)
}

func (iv MinInterval) String() string {
	return fmt.Sprintf("%s -- %s", iv.Start.Date().NoTZString(), iv.End.Date().NoTZString())
}
