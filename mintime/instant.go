package mintime

import (
	"fmt"
	"math"
	"time"
)

// MinInstant raw values stay below 2^31 so that adding the largest legal
// offset can never overflow the backing uint32.
const rawUpperBound = math.MaxInt32

// ConversionError reports a Date to MinInstant conversion whose partial sum
// left the representable minute range. It carries the offending civil date.
type ConversionError struct {
	Year  Year
	Month Month
	Day   uint8
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("date %d/%v/%d does not fit in the minute-instant range",
		uint16(e.Year), e.Month, e.Day)
}

// MinInstant is an absolute point in time at minute resolution: a count of
// minutes since the Unix epoch, normalized to UTC, paired with the offset
// used when rendering it as a Date. The offset never shifts the instant.
// Two instants are equal iff their raw counts are equal.
type MinInstant struct {
	raw    uint32
	offset ZoneOffset
}

// Now captures the current system time, displayed in the given offset.
// Panics if the system clock falls outside the representable range, which
// signals a broken clock rather than a recoverable condition.
func Now(tz ZoneOffset) MinInstant {
	t := time.Now().Unix() / 60
	if t < 0 || t > rawUpperBound {
		panic(fmt.Sprintf("system time %d minutes is outside the representable range", t))
	}
	return MinInstant{raw: uint32(t), offset: tz}
}

// FromRaw constructs an instant from a raw minute count.
func FromRaw(raw uint32, tz ZoneOffset) (MinInstant, error) {
	if raw > rawUpperBound {
		return MinInstant{}, fmt.Errorf("raw minute count %d exceeds upper bound %d", raw, uint32(rawUpperBound))
	}
	return MinInstant{raw: raw, offset: tz}, nil
}

// FromDate converts a civil date to the instant it denotes: whole years
// since the epoch, whole months since the year start, whole days, hours and
// minutes, each step overflow-checked, minus the date's UTC offset.
func FromDate(d Date) (MinInstant, error) {
	overflow := &ConversionError{Year: d.Year, Month: d.Month, Day: d.Day}

	// Partial sums may exceed the raw bound by at most one offset's worth
	// before normalization brings them back in range.
	const guard = int64(rawUpperBound) + offsetMax

	var total int64
	for y := Year(epochYear); y < d.Year; y++ {
		total += int64(y.Minutes())
		if total > guard {
			return MinInstant{}, overflow
		}
	}
	for m := January; m != d.Month; m++ {
		total += int64(m.Minutes(d.Year))
	}
	total += int64(uint32(d.Day-1) * MinutesPerDay)
	total += int64(uint32(d.Hour)*MinutesPerHour + uint32(d.Minute))
	total -= int64(d.Offset.Minutes())

	if total < 0 || total > rawUpperBound {
		return MinInstant{}, overflow
	}
	return MinInstant{raw: uint32(total), offset: d.Offset}, nil
}

// Raw returns the number of minutes since the epoch, normalized to UTC.
func (m MinInstant) Raw() uint32 { return m.raw }

// Offset returns the display offset attached to this instant.
func (m MinInstant) Offset() ZoneOffset { return m.offset }

// In returns the same instant rendered in a different offset.
func (m MinInstant) In(tz ZoneOffset) MinInstant {
	return MinInstant{raw: m.raw, offset: tz}
}

// Equal, Before and After compare the UTC-normalized raw counts; display
// offsets are irrelevant to ordering.
func (m MinInstant) Equal(other MinInstant) bool  { return m.raw == other.raw }
func (m MinInstant) Before(other MinInstant) bool { return m.raw < other.raw }
func (m MinInstant) After(other MinInstant) bool  { return m.raw > other.raw }

// AddMinutes returns the instant n minutes later. The second return value
// is false when the result would leave the representable range.
func (m MinInstant) AddMinutes(n uint32) (MinInstant, bool) {
	sum := uint64(m.raw) + uint64(n)
	if sum > rawUpperBound {
		return MinInstant{}, false
	}
	return MinInstant{raw: uint32(sum), offset: m.offset}, true
}

// MinutesSince returns m minus other in minutes, or zero when other is not
// earlier than m.
func (m MinInstant) MinutesSince(other MinInstant) uint32 {
	if m.raw <= other.raw {
		return 0
	}
	return m.raw - other.raw
}

// Date decomposes the instant using its own display offset.
func (m MinInstant) Date() Date { return m.DateIn(m.offset) }

// DateIn decomposes the instant into civil form under the requested offset:
// strip whole years while the remainder covers them, then whole months, then
// derive day, hour and minute from what is left. Exact inverse of FromDate
// for every date on or after the epoch. Instants within a negative offset's
// distance of the epoch have no post-1970 civil form in that offset; they
// display as the epoch itself.
func (m MinInstant) DateIn(tz ZoneOffset) Date {
	local := int64(m.raw) + int64(tz.Minutes())
	if local < 0 {
		local = 0
	}
	t := uint32(local)

	year := Year(epochYear)
	for t >= year.Minutes() {
		t -= year.Minutes()
		year = year.Next().MustGet()
	}

	month := January
	for t >= month.Minutes(year) {
		t -= month.Minutes(year)
		month = month.Next().MustGet()
	}

	return Date{
		Year:   year,
		Month:  month,
		Day:    uint8(1 + t/MinutesPerDay),
		Hour:   uint8((t % MinutesPerDay) / MinutesPerHour),
		Minute: uint8(t % MinutesPerHour),
		Offset: tz,
	}
}

// String renders the instant as a civil date in its display offset.
func (m MinInstant) String() string { return m.Date().String() }
