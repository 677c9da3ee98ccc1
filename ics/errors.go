package ics

import (
	"errors"
	"fmt"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
)

// The parser's failure modes form a closed, named set so that callers can
// branch on kind with errors.Is / errors.As instead of matching message
// strings.

// ErrEOF is returned when the input ends where more tokens were required.
var ErrEOF = errors.New("unexpected end of input")

// NotANumberError reports a token found where a numeric literal was
// required.
type NotANumberError struct {
	Tok Token
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("%v is not a number", e.Tok)
}

// MalformedTimeError reports a date-time literal whose digit groups do not
// form a valid civil date.
type MalformedTimeError struct {
	YMD string
	HMS string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("cannot parse %q/%q as a valid time", e.YMD, e.HMS)
}

// MalformedListError reports an RRULE clause list with an empty entry,
// such as a doubled or trailing comma.
type MalformedListError struct {
	Tag Token
}

func (e *MalformedListError) Error() string {
	return fmt.Sprintf("clause list for %v contains an empty entry", e.Tag)
}

// InvalidFreqError reports an unrecognized FREQ value.
type InvalidFreqError struct {
	Tok Token
}

func (e *InvalidFreqError) Error() string {
	return fmt.Sprintf("%v is not a valid frequency", e.Tok)
}

// UnsupportedRuleError reports an RRULE clause this parser deliberately
// refuses: every BYxxx rule other than BYDAY. Partial recurrence evaluation
// silently producing wrong occurrence sets would be worse than rejecting
// the input.
type UnsupportedRuleError struct {
	Tok Token
}

func (e *UnsupportedRuleError) Error() string {
	return fmt.Sprintf("recurrence rule %v is not supported", e.Tok)
}

// CountAndUntilError reports an RRULE carrying both a COUNT and an UNTIL
// clause, which the format declares mutually exclusive.
type CountAndUntilError struct {
	Count uint32
	Until mintime.MinInstant
}

func (e *CountAndUntilError) Error() string {
	return fmt.Sprintf("count=%d and until=%v cannot both appear", e.Count, e.Until)
}

// MismatchError reports a required token that did not match.
type MismatchError struct {
	Expected Token
	Actual   Token
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %v, found %v", e.Expected, e.Actual)
}

// MissingPropertyError reports a VEVENT lacking a required property. The
// event is named by its summary, or "unnamed" when no summary was seen.
type MissingPropertyError struct {
	Summary  string
	Property string
}

func (e *MissingPropertyError) Error() string {
	name := e.Summary
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("VEVENT `%s` missing %s", name, e.Property)
}
