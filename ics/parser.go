// Package ics parses the subset of the iCalendar text format needed to
// extract events and their recurrence rules: VCALENDAR and VEVENT blocks,
// DTSTART/DTEND with optional TZID parameters, SUMMARY, and RRULE clauses
// restricted to FREQ, INTERVAL, COUNT, UNTIL, WKST and BYDAY.
//
// Parsing is recursive descent over a token stream with unbounded
// lookahead. Unrecognized properties are skipped line by line; unrecognized
// recurrence clauses are a hard error, since evaluating a rule with part of
// its clauses ignored would yield a silently wrong occurrence set.
package ics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
	"github.com/TianweiOwenLi/TaggyTime/refine"
)

// defaultEventTime is the time of day assumed for date-only DTSTART and
// DTEND literals, matching the convention that an all-day deadline means
// end of that day.
const defaultEventTime = "235900"

// Freq is the base frequency of a recurrence rule.
type Freq int

const (
	Daily Freq = iota
	Weekly
	Monthly
	Yearly
)

func (f Freq) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	case Yearly:
		return "YEARLY"
	default:
		return fmt.Sprintf("Freq(%d)", int(f))
	}
}

// RuleTokens is one refining recurrence clause: its tag (currently always
// BYDAY) and the raw list values, left uninterpreted for the recurrence
// layer to evaluate.
type RuleTokens struct {
	Tag    Token
	Values []string
}

// RepeatRule is a parsed RRULE line.
type RepeatRule struct {
	Freq     Freq
	Rules    []RuleTokens
	Interval uint32
	Count    mo.Option[uint32]
	Until    mo.Option[mintime.MinInstant]
}

// Vevent is a parsed VEVENT block: the event's span, its summary, and its
// recurrence rule if one was given.
type Vevent struct {
	Span    mintime.MinInterval
	Summary string
	Repeat  mo.Option[RepeatRule]
}

// Calendar is a parsed VCALENDAR block.
type Calendar struct {
	Name   string
	Events []Vevent
}

// Parser holds the token stream and the ambient offset under which
// zone-free date literals are interpreted.
type Parser struct {
	name string
	buf  *PeekBuffer
	tz   mintime.ZoneOffset
}

// Parse parses content as a calendar. name labels the source for
// diagnostics; tz is the offset assumed for literals carrying neither a Z
// suffix nor a TZID parameter.
func Parse(name, content string, tz mintime.ZoneOffset) (*Calendar, error) {
	p := &Parser{
		name: name,
		buf:  NewPeekBuffer(NewLexer(name, content)),
		tz:   tz,
	}
	return p.parse()
}

func (p *Parser) parse() (*Calendar, error) {
	if err := p.munch(
		Token{Kind: KindBegin},
		Token{Kind: KindColon},
		Token{Kind: KindVcalendar},
	); err != nil {
		return nil, err
	}

	cal := &Calendar{Name: p.name}
	for {
		tok, err := p.buf.Peek(0)
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case KindBegin:
			// Only BEGIN:VEVENT opens a block we parse; every other BEGIN
			// (VTIMEZONE, VALARM, ...) is skipped like an ordinary line.
			kw, err := p.buf.Peek(2)
			if err == nil && kw.Kind == KindVevent {
				for i := 0; i < 3; i++ {
					p.buf.Next()
				}
				ev, err := p.vevent()
				if err != nil {
					return nil, err
				}
				cal.Events = append(cal.Events, ev)
				continue
			}
			p.skipLine()
		case KindEnd:
			kw, err := p.buf.Peek(2)
			if err == nil && kw.Kind == KindVcalendar {
				return cal, nil
			}
			p.skipLine()
		default:
			p.skipLine()
		}
	}
}

// vevent parses the body of a VEVENT block; BEGIN:VEVENT has already been
// consumed. Properties may appear in any order.
func (p *Parser) vevent() (Vevent, error) {
	var (
		start, end mo.Option[mintime.MinInstant]
		summary    string
		repeat     mo.Option[RepeatRule]
	)

	for {
		tok, err := p.buf.Next()
		if err != nil {
			return Vevent{}, err
		}

		switch tok.Kind {
		case KindDtstart:
			mi, err := p.dtPossibleTimezone()
			if err != nil {
				return Vevent{}, err
			}
			start = mo.Some(mi)
		case KindDtend:
			mi, err := p.dtPossibleTimezone()
			if err != nil {
				return Vevent{}, err
			}
			end = mo.Some(mi)
		case KindSummary:
			if err := p.munch(Token{Kind: KindColon}); err != nil {
				return Vevent{}, err
			}
			summary = p.summaryText()
		case KindRrule:
			if err := p.munch(Token{Kind: KindColon}); err != nil {
				return Vevent{}, err
			}
			rule, err := p.rrules()
			if err != nil {
				return Vevent{}, err
			}
			repeat = mo.Some(rule)
		case KindEnd:
			if err := p.munch(Token{Kind: KindColon}, Token{Kind: KindVevent}); err != nil {
				return Vevent{}, err
			}
			s, ok := start.Get()
			if !ok {
				return Vevent{}, &MissingPropertyError{Summary: summary, Property: "DTSTART"}
			}
			e, ok := end.Get()
			if !ok {
				return Vevent{}, &MissingPropertyError{Summary: summary, Property: "DTEND"}
			}
			return Vevent{
				Span:    mintime.NewInterval(s, e),
				Summary: summary,
				Repeat:  repeat,
			}, nil
		case KindNewline:
			// Blank line or end of a skipped property.
		default:
			p.skipLine()
		}
	}
}

// dtPossibleTimezone parses the remainder of a DTSTART or DTEND line. The
// property either continues straight into ":<literal>" or carries a
// ";TZID=<name>:<literal>" parameter. The TZID name itself is discarded;
// its presence only waives the literal's Z-suffix requirement, and the
// literal is then read under the parser's ambient offset.
func (p *Parser) dtPossibleTimezone() (mintime.MinInstant, error) {
	tok, err := p.buf.Next()
	if err != nil {
		return mintime.MinInstant{}, err
	}

	switch tok.Kind {
	case KindColon:
		return p.dtLiteral(false)
	case KindSemicolon:
		if err := p.munch(Token{Kind: KindTzid}, Token{Kind: KindEquals}); err != nil {
			return mintime.MinInstant{}, err
		}
		if err := p.skipUntil(KindColon); err != nil {
			return mintime.MinInstant{}, err
		}
		return p.dtLiteral(true)
	default:
		return mintime.MinInstant{}, &MismatchError{
			Expected: Token{Kind: KindColon},
			Actual:   tok,
		}
	}
}

// dtLiteral parses a date-time literal such as "20230121T211100Z" or the
// date-only "20230121". zoned reports whether an enclosing TZID parameter
// already located the literal; without one, a timed literal must carry the
// Z suffix and denotes UTC. Date-only literals default to 23:59.
func (p *Parser) dtLiteral(zoned bool) (mintime.MinInstant, error) {
	ymdTok, err := p.buf.Next()
	if err != nil {
		return mintime.MinInstant{}, err
	}
	if ymdTok.Kind != KindNumber {
		return mintime.MinInstant{}, &NotANumberError{Tok: ymdTok}
	}

	hms := defaultEventTime
	tz := p.tz

	sep, err := p.buf.Peek(0)
	if err == nil && sep.Is(Token{Kind: KindOther, Text: "T"}) {
		p.buf.Next()
		hmsTok, err := p.buf.Next()
		if err != nil {
			return mintime.MinInstant{}, err
		}
		if hmsTok.Kind != KindNumber {
			return mintime.MinInstant{}, &NotANumberError{Tok: hmsTok}
		}
		hms = hmsTok.Text

		if !zoned {
			if err := p.munch(Token{Kind: KindOther, Text: "Z"}); err != nil {
				return mintime.MinInstant{}, err
			}
			tz = mintime.UTC()
		}
	}

	return dateTimeLiteral(ymdTok.Text, hms, tz)
}

// dateTimeLiteral converts the two digit groups of a literal into an
// instant. hms may carry a seconds field, which is dropped.
func dateTimeLiteral(ymd, hms string, tz mintime.ZoneOffset) (mintime.MinInstant, error) {
	malformed := &MalformedTimeError{YMD: ymd, HMS: hms}
	if len(ymd) != 8 || len(hms) < 4 {
		return mintime.MinInstant{}, malformed
	}

	year, err1 := strconv.Atoi(ymd[:4])
	monthNum, err2 := strconv.Atoi(ymd[4:6])
	day, err3 := strconv.Atoi(ymd[6:8])
	hour, err4 := strconv.Atoi(hms[:2])
	minute, err5 := strconv.Atoi(hms[2:4])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return mintime.MinInstant{}, malformed
	}
	if monthNum < 1 || monthNum > 12 {
		return mintime.MinInstant{}, malformed
	}

	d, err := mintime.NewDate(uint16(year), mintime.Month(monthNum-1), day, hour, minute, tz)
	if err != nil {
		return mintime.MinInstant{}, malformed
	}
	mi, err := mintime.FromDate(d)
	if err != nil {
		return mintime.MinInstant{}, malformed
	}
	return mi, nil
}

// rrules parses the clause list of an RRULE line. FREQ must come first;
// the remaining clauses may appear in any order. COUNT and UNTIL are
// mutually exclusive, WKST is accepted and discarded, and every BYxxx
// clause other than BYDAY is rejected.
func (p *Parser) rrules() (RepeatRule, error) {
	if err := p.munch(Token{Kind: KindFreq}, Token{Kind: KindEquals}); err != nil {
		return RepeatRule{}, err
	}
	freqTok, err := p.buf.Next()
	if err != nil {
		return RepeatRule{}, err
	}

	var freq Freq
	switch freqTok.Kind {
	case KindDaily:
		freq = Daily
	case KindWeekly:
		freq = Weekly
	case KindMonthly:
		freq = Monthly
	case KindYearly:
		freq = Yearly
	default:
		return RepeatRule{}, &InvalidFreqError{Tok: freqTok}
	}

	rule := RepeatRule{Freq: freq, Interval: 1}
	for {
		tok, err := p.buf.Next()
		if errors.Is(err, ErrEOF) {
			tok = Token{Kind: KindNewline}
		} else if err != nil {
			return RepeatRule{}, err
		}

		switch tok.Kind {
		case KindNewline:
			if c, ok := rule.Count.Get(); ok {
				if u, uok := rule.Until.Get(); uok {
					return RepeatRule{}, &CountAndUntilError{Count: c, Until: u}
				}
			}
			return rule, nil
		case KindSemicolon:
			// Clause separator.
		case KindInterval:
			if err := p.munch(Token{Kind: KindEquals}); err != nil {
				return RepeatRule{}, err
			}
			n, err := p.positiveNumber()
			if err != nil {
				return RepeatRule{}, fmt.Errorf("INTERVAL: %w", err)
			}
			rule.Interval = n
		case KindCount:
			if err := p.munch(Token{Kind: KindEquals}); err != nil {
				return RepeatRule{}, err
			}
			n, err := p.positiveNumber()
			if err != nil {
				return RepeatRule{}, fmt.Errorf("COUNT: %w", err)
			}
			rule.Count = mo.Some(n)
		case KindUntil:
			if err := p.munch(Token{Kind: KindEquals}); err != nil {
				return RepeatRule{}, err
			}
			mi, err := p.dtLiteral(false)
			if err != nil {
				return RepeatRule{}, err
			}
			rule.Until = mo.Some(mi)
		case KindWkst:
			if err := p.munch(Token{Kind: KindEquals}); err != nil {
				return RepeatRule{}, err
			}
			if _, err := p.buf.Next(); err != nil {
				return RepeatRule{}, err
			}
		case KindByDay:
			if err := p.munch(Token{Kind: KindEquals}); err != nil {
				return RepeatRule{}, err
			}
			vals, err := p.tokList(tok)
			if err != nil {
				return RepeatRule{}, err
			}
			rule.Rules = append(rule.Rules, RuleTokens{Tag: tok, Values: vals})
		case KindBySecond, KindByMinute, KindByHour, KindByMonth,
			KindByMonthDay, KindByYearDay, KindByWeekNo, KindBySetPos:
			return RepeatRule{}, &UnsupportedRuleError{Tok: tok}
		default:
			return RepeatRule{}, &MismatchError{
				Expected: Token{Kind: KindNewline},
				Actual:   tok,
			}
		}
	}
}

// tokList parses a non-empty comma-separated clause value list. The
// terminating semicolon or newline is left in the stream.
func (p *Parser) tokList(tag Token) ([]string, error) {
	var vals []string
	for {
		tok, err := p.buf.Peek(0)
		if errors.Is(err, ErrEOF) || (err == nil && (tok.Kind == KindNewline || tok.Kind == KindSemicolon)) {
			return nil, &MalformedListError{Tag: tag}
		}
		if err != nil {
			return nil, err
		}
		p.buf.Next()
		vals = append(vals, tok.CastString())

		sep, err := p.buf.Peek(0)
		if errors.Is(err, ErrEOF) || (err == nil && (sep.Kind == KindNewline || sep.Kind == KindSemicolon)) {
			return vals, nil
		}
		if err != nil {
			return nil, err
		}
		if sep.Kind != KindComma {
			return nil, &MismatchError{Expected: Token{Kind: KindComma}, Actual: sep}
		}
		p.buf.Next()
	}
}

// summaryText collects the summary's free text. A summary may contain
// colons, dashes and even newlines (folded lines), so it runs until the
// next TRANSP or END property rather than the end of the line. The lexer
// discards spaces between words, so a single space is restored between
// adjacent text-bearing tokens.
func (p *Parser) summaryText() string {
	var b strings.Builder
	prevText := false
	for {
		tok, err := p.buf.Peek(0)
		if err != nil || tok.Kind == KindTransp || tok.Kind == KindEnd {
			return strings.TrimSpace(b.String())
		}
		p.buf.Next()

		if tok.Kind == KindNewline {
			b.WriteByte(' ')
			prevText = false
			continue
		}
		text := tok.Kind == KindNumber || tok.Kind == KindOther
		if text && prevText {
			b.WriteByte(' ')
		}
		b.WriteString(tok.CastString())
		prevText = text
	}
}

// number consumes a numeric token and returns its value.
func (p *Parser) number() (uint32, error) {
	tok, err := p.buf.Next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != KindNumber {
		return 0, &NotANumberError{Tok: tok}
	}
	n, err := strconv.ParseUint(tok.Text, 10, 32)
	if err != nil {
		return 0, &NotANumberError{Tok: tok}
	}
	return uint32(n), nil
}

// positiveNumber consumes a numeric token that must be at least one, as
// required of COUNT and INTERVAL clause values.
func (p *Parser) positiveNumber() (uint32, error) {
	n, err := p.number()
	if err != nil {
		return 0, err
	}
	if _, err := refine.Positive(int64(n)); err != nil {
		return 0, err
	}
	return n, nil
}

// munch consumes the expected tokens in order, failing on the first
// mismatch.
func (p *Parser) munch(expected ...Token) error {
	for _, want := range expected {
		tok, err := p.buf.Next()
		if err != nil {
			return err
		}
		if !tok.Is(want) {
			return &MismatchError{Expected: want, Actual: tok}
		}
	}
	return nil
}

// skipUntil consumes tokens through the first one of the given kind.
func (p *Parser) skipUntil(kind TokenKind) error {
	for {
		tok, err := p.buf.Next()
		if err != nil {
			return err
		}
		if tok.Kind == kind {
			return nil
		}
	}
}

// skipLine consumes tokens through the end of the current line; end of
// input also ends the line.
func (p *Parser) skipLine() {
	for {
		tok, err := p.buf.Next()
		if err != nil || tok.Kind == KindNewline {
			return
		}
	}
}
