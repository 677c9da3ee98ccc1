package mintime

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDate parses a command-line date expression made of a "y/m/d" or
// "m/d" part and an "hh:mm" or "hh" part, with an optional trailing zone
// offset expression. When the year is omitted it defaults to the current
// year in tz; when the offset is omitted it defaults to tz.
func ParseDate(args []string, tz ZoneOffset) (Date, error) {
	if len(args) < 2 || len(args) > 3 {
		return Date{}, fmt.Errorf("cannot parse %v as date: want \"[yyyy/]m/d hh[:mm] [offset]\"", args)
	}

	offset := tz
	if len(args) == 3 {
		var err error
		offset, err = ParseZoneOffset(args[2])
		if err != nil {
			return Date{}, err
		}
	}

	year, month, day, err := parseYMD(args[0], tz)
	if err != nil {
		return Date{}, err
	}
	hour, minute, err := parseHourMinute(args[1])
	if err != nil {
		return Date{}, err
	}

	return NewDate(year, month, day, hour, minute, offset)
}

// parseYMD splits a "y/m/d" or "m/d" expression. The two-part form borrows
// the current year under tz.
func parseYMD(expr string, tz ZoneOffset) (uint16, Month, int, error) {
	parts := strings.Split(expr, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var yearStr, monthStr, dayStr string
	switch len(parts) {
	case 3:
		yearStr, monthStr, dayStr = parts[0], parts[1], parts[2]
	case 2:
		monthStr, dayStr = parts[0], parts[1]
	default:
		return 0, 0, 0, fmt.Errorf("cannot parse %q as year/month/day", expr)
	}

	var year uint16
	if yearStr == "" {
		year = uint16(Now(tz).Date().Year)
	} else {
		n, err := strconv.ParseUint(yearStr, 10, 16)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("cannot parse %q as year: %w", yearStr, err)
		}
		year = uint16(n)
	}

	month, err := ParseMonth(monthStr)
	if err != nil {
		return 0, 0, 0, err
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("cannot parse %q as day of month: %w", dayStr, err)
	}
	return year, month, day, nil
}

// parseHourMinute splits "hh:mm"; a bare "hh" defaults the minute to zero.
func parseHourMinute(expr string) (int, int, error) {
	hourStr, minuteStr, hasMinute := strings.Cut(expr, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return 0, 0, fmt.Errorf("cannot parse %q as hour: %w", expr, err)
	}
	minute := 0
	if hasMinute {
		minute, err = strconv.Atoi(strings.TrimSpace(minuteStr))
		if err != nil {
			return 0, 0, fmt.Errorf("cannot parse %q as minute: %w", expr, err)
		}
	}
	return hour, minute, nil
}
