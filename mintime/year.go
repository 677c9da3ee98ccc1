package mintime

import (
	"fmt"
	"math"

	"github.com/samber/mo"
)

// Minute bookkeeping shared across the package.
const (
	MinutesPerHour uint32 = 60
	HoursPerDay    uint32 = 24
	MinutesPerDay  uint32 = MinutesPerHour * HoursPerDay

	epochYear uint16 = 1970
)

// Year is a civil (CE) year no earlier than the epoch year 1970.
type Year uint16

// NewYear constructs a Year, rejecting anything before the epoch.
func NewYear(n uint16) (Year, error) {
	if n < epochYear {
		return 0, fmt.Errorf("year %d precedes the epoch year %d", n, epochYear)
	}
	return Year(n), nil
}

// IsLeap applies the civil leap rule: divisible by 4, unless by 100,
// unless by 400.
func (y Year) IsLeap() bool {
	n := uint16(y)
	return n%400 == 0 || (n%4 == 0 && n%100 != 0)
}

// Days returns 366 for leap years and 365 otherwise.
func (y Year) Days() uint32 {
	if y.IsLeap() {
		return 366
	}
	return 365
}

// Minutes returns the number of minutes in the year.
func (y Year) Minutes() uint32 { return y.Days() * MinutesPerDay }

// Next returns the following year, or None past the representable maximum.
func (y Year) Next() mo.Option[Year] {
	if uint16(y) == math.MaxUint16 {
		return mo.None[Year]()
	}
	return mo.Some(y + 1)
}
