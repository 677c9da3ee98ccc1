package mintime

import (
	"fmt"

	"github.com/TianweiOwenLi/TaggyTime/refine"
)

// Date is the human-readable decomposition of a MinInstant: a civil year,
// month, day, hour and minute, together with the offset used to derive it.
// A Date is never authoritative; it always round-trips exactly through
// FromDate and MinInstant.Date.
type Date struct {
	Year   Year
	Month  Month
	Day    uint8
	Hour   uint8
	Minute uint8
	Offset ZoneOffset
}

// NewDate validates and constructs a civil date. Day, hour and minute pass
// through bounded construction; the day is additionally checked against the
// month's length in the given year.
func NewDate(year uint16, month Month, day, hour, minute int, tz ZoneOffset) (Date, error) {
	y, err := NewYear(year)
	if err != nil {
		return Date{}, err
	}
	if month < January || month > December {
		return Date{}, fmt.Errorf("month %d out of range", int(month))
	}
	d, err := refine.DayOfMonth(int64(day))
	if err != nil {
		return Date{}, fmt.Errorf("day of month: %w", err)
	}
	if uint32(d.Value()) > month.Days(y) {
		return Date{}, fmt.Errorf("day %d exceeds length of %v %d", day, month, year)
	}
	h, err := refine.HourOfDay(int64(hour))
	if err != nil {
		return Date{}, fmt.Errorf("hour of day: %w", err)
	}
	m, err := refine.MinuteOfHour(int64(minute))
	if err != nil {
		return Date{}, fmt.Errorf("minute of hour: %w", err)
	}

	return Date{
		Year:   y,
		Month:  month,
		Day:    uint8(d.Value()),
		Hour:   uint8(h.Value()),
		Minute: uint8(m.Value()),
		Offset: tz,
	}, nil
}

// DayInYear returns the 1-based ordinal of the date's day within its year.
func (d Date) DayInYear() uint32 {
	ret := uint32(d.Day)
	for m := January; m != d.Month; m++ {
		ret += m.Days(d.Year)
	}
	return ret
}

// Weekday returns the weekday this date falls on.
func (d Date) Weekday() Weekday { return WeekdayOf(d) }

// NoTZString renders the date without its offset, e.g. "2023/Jan/21 21:11".
func (d Date) NoTZString() string {
	return fmt.Sprintf("%d/%v/%d %02d:%02d", uint16(d.Year), d.Month, d.Day, d.Hour, d.Minute)
}

func (d Date) String() string {
	return fmt.Sprintf("%s, tz=%v", d.NoTZString(), d.Offset)
}
