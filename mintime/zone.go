// Package mintime implements minute-resolution calendar time: absolute
// instants counted in minutes since the Unix epoch, fixed UTC offsets,
// civil dates, and half-open intervals between instants.
//
// The epoch (1970-01-01 00:00 UTC) falls on a Thursday; all weekday
// arithmetic is anchored there. Leap seconds are not modeled.
package mintime

import (
	"fmt"
	"strconv"
	"strings"
)

// Legal UTC offsets span -12:00 to +14:00, inclusive.
const (
	offsetMin = -720
	offsetMax = 840
)

// ZoneOffset is a fixed offset from UTC in minutes. It is a display
// adjustment only and never changes the absolute instant it is attached to.
type ZoneOffset struct {
	minutes int16
}

// NewZoneOffset constructs an offset of n minutes, rejecting values outside
// the real-world range of UTC offsets.
func NewZoneOffset(n int) (ZoneOffset, error) {
	if n < offsetMin || n > offsetMax {
		return ZoneOffset{}, fmt.Errorf("zone offset must be between %d and %d minutes, got %d", offsetMin, offsetMax, n)
	}
	return ZoneOffset{minutes: int16(n)}, nil
}

// UTC is the zero offset.
func UTC() ZoneOffset { return ZoneOffset{} }

// Minutes returns the raw offset in minutes.
func (z ZoneOffset) Minutes() int { return int(z.minutes) }

// ParseZoneOffset parses offsets like "-4:00", "+5:30", "8", or "-11".
// A bare number is interpreted as whole hours.
func ParseZoneOffset(s string) (ZoneOffset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZoneOffset{}, fmt.Errorf("empty zone offset expression")
	}

	sign := 1
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}

	hrPart, minPart, hasMin := strings.Cut(s, ":")
	hr, err := strconv.Atoi(hrPart)
	if err != nil {
		return ZoneOffset{}, fmt.Errorf("cannot parse %q as zone offset: %w", s, err)
	}
	min := 0
	if hasMin {
		min, err = strconv.Atoi(minPart)
		if err != nil || min > 59 {
			return ZoneOffset{}, fmt.Errorf("cannot parse %q as zone offset minutes", s)
		}
	}
	return NewZoneOffset(sign * (hr*60 + min))
}

// String renders the offset as ±hh:mm.
func (z ZoneOffset) String() string {
	n := int(z.minutes)
	sign := "+"
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%02d:%02d", sign, n/60, n%60)
}
