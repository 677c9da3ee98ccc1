package mintime

import "fmt"

// Weekday enumerates the days of the week, Monday == 0, matching the
// iCalendar BYDAY order.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayCodes = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ParseWeekday parses a two-letter iCalendar weekday code such as "MO".
func ParseWeekday(s string) (Weekday, error) {
	for i, code := range weekdayCodes {
		if s == code {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("cannot parse %q as weekday code", s)
}

// NextWrap returns the following weekday, wrapping Sunday to Monday.
func (w Weekday) NextWrap() Weekday { return Weekday((int(w) + 1) % 7) }

// Code returns the two-letter iCalendar code for the weekday.
func (w Weekday) Code() string { return weekdayCodes[w] }

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// thursdayPlus computes the weekday n days after the epoch's Thursday.
func thursdayPlus(n uint32) Weekday {
	return Weekday((uint32(Thursday) + n) % 7)
}

// WeekdayOf computes the weekday of a civil date by counting days elapsed
// since the epoch.
func WeekdayOf(d Date) Weekday {
	var days uint32
	for y := Year(epochYear); y < d.Year; y++ {
		days += y.Days()
	}
	days += d.DayInYear() - 1
	return thursdayPlus(days)
}
