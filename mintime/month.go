package mintime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// Month enumerates the twelve civil months, January == 0.
type Month int

const (
	January Month = iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ParseMonth accepts a month number ("3"), a three-letter abbreviation
// ("mar"), or a full English name ("March"), case-insensitively.
func ParseMonth(s string) (Month, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month number %d out of range [1, 12]", n)
		}
		return Month(n - 1), nil
	}
	if len(trimmed) >= 3 {
		prefix := strings.ToLower(trimmed[:3])
		for i, name := range monthNames {
			if strings.ToLower(name) == prefix {
				return Month(i), nil
			}
		}
	}
	return 0, fmt.Errorf("cannot parse %q as month", s)
}

// Next returns the following month, or None past December.
func (m Month) Next() mo.Option[Month] {
	if m == December {
		return mo.None[Month]()
	}
	return mo.Some(m + 1)
}

// Prev returns the preceding month, or None before January.
func (m Month) Prev() mo.Option[Month] {
	if m == January {
		return mo.None[Month]()
	}
	return mo.Some(m - 1)
}

// Days returns the number of days of the month in year y; only February
// depends on leap status.
func (m Month) Days(y Year) uint32 {
	switch m {
	case February:
		if y.IsLeap() {
			return 29
		}
		return 28
	case April, June, September, November:
		return 30
	default:
		return 31
	}
}

// Minutes returns the number of minutes of the month in year y.
func (m Month) Minutes(y Year) uint32 { return m.Days(y) * MinutesPerDay }

func (m Month) String() string {
	if m < January || m > December {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}
