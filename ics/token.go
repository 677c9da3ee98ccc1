package ics

import "fmt"

// TokenKind classifies lexemes of the .ics subset grammar.
type TokenKind int

const (
	// Structural single-character tokens.
	KindBegin TokenKind = iota
	KindEnd
	KindColon
	KindSemicolon
	KindComma
	KindEquals
	KindSlash
	KindDash
	KindUnderscore
	KindPeriod
	KindNewline

	// Property keywords.
	KindDtstart
	KindDtend
	KindTzid
	KindVcalendar
	KindVevent
	KindSummary
	KindLocation
	KindTransp
	KindRrule

	// Recurrence-rule keywords.
	KindFreq
	KindInterval
	KindCount
	KindUntil
	KindWkst
	KindDaily
	KindWeekly
	KindMonthly
	KindYearly
	KindByDay
	KindBySecond
	KindByMinute
	KindByHour
	KindByMonth
	KindByMonthDay
	KindByYearDay
	KindByWeekNo
	KindBySetPos

	// Literals.
	KindNumber
	KindOther
)

// keywords maps recognized identifier spellings to their kinds. Matching is
// case-sensitive; .ics keywords are upper-case by format definition.
var keywords = map[string]TokenKind{
	"BEGIN":      KindBegin,
	"END":        KindEnd,
	"DTSTART":    KindDtstart,
	"DTEND":      KindDtend,
	"TZID":       KindTzid,
	"VCALENDAR":  KindVcalendar,
	"VEVENT":     KindVevent,
	"SUMMARY":    KindSummary,
	"LOCATION":   KindLocation,
	"TRANSP":     KindTransp,
	"RRULE":      KindRrule,
	"FREQ":       KindFreq,
	"INTERVAL":   KindInterval,
	"COUNT":      KindCount,
	"UNTIL":      KindUntil,
	"WKST":       KindWkst,
	"DAILY":      KindDaily,
	"WEEKLY":     KindWeekly,
	"MONTHLY":    KindMonthly,
	"YEARLY":     KindYearly,
	"BYDAY":      KindByDay,
	"BYSECOND":   KindBySecond,
	"BYMINUTE":   KindByMinute,
	"BYHOUR":     KindByHour,
	"BYMONTH":    KindByMonth,
	"BYMONTHDAY": KindByMonthDay,
	"BYYEARDAY":  KindByYearDay,
	"BYWEEKNO":   KindByWeekNo,
	"BYSETPOS":   KindBySetPos,
}

// structuralSpelling maps structural kinds back to their source characters.
var structuralSpelling = map[TokenKind]string{
	KindColon:      ":",
	KindSemicolon:  ";",
	KindComma:      ",",
	KindEquals:     "=",
	KindSlash:      "/",
	KindDash:       "-",
	KindUnderscore: "_",
	KindPeriod:     ".",
	KindNewline:    "\n",
}

// Token is a lexeme tagged with its kind. Text is populated only for
// KindNumber and KindOther.
type Token struct {
	Kind TokenKind
	Text string
}

// Is reports whether t matches other: kinds must agree, and for number and
// free-text tokens the text must agree too.
func (t Token) Is(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == KindNumber || t.Kind == KindOther {
		return t.Text == other.Text
	}
	return true
}

// CastString returns the source spelling of the token, used when free text
// is reassembled from consecutive tokens.
func (t Token) CastString() string {
	if s, ok := structuralSpelling[t.Kind]; ok {
		return s
	}
	if t.Kind == KindNumber || t.Kind == KindOther {
		return t.Text
	}
	for spelling, kind := range keywords {
		if kind == t.Kind {
			return spelling
		}
	}
	return fmt.Sprintf("TokenKind(%d)", int(t.Kind))
}

func (t Token) String() string {
	switch t.Kind {
	case KindNewline:
		return "<newline>"
	case KindNumber:
		return fmt.Sprintf("Number(%s)", t.Text)
	case KindOther:
		return fmt.Sprintf("Other(%s)", t.Text)
	default:
		return t.CastString()
	}
}
