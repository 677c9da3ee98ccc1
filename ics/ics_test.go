package ics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
	"github.com/TianweiOwenLi/TaggyTime/refine"
)

func utc(t *testing.T, year uint16, month mintime.Month, day, hour, minute int) mintime.MinInstant {
	t.Helper()
	d, err := mintime.NewDate(year, month, day, hour, minute, mintime.UTC())
	require.NoError(t, err)
	mi, err := mintime.FromDate(d)
	require.NoError(t, err)
	return mi
}

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer("test", src)
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			require.ErrorIs(t, err, ErrEOF)
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerClassification(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "property line",
			src:  "DTSTART:20230121T211100Z\n",
			want: []Token{
				{Kind: KindDtstart},
				{Kind: KindColon},
				{Kind: KindNumber, Text: "20230121"},
				{Kind: KindOther, Text: "T"},
				{Kind: KindNumber, Text: "211100"},
				{Kind: KindOther, Text: "Z"},
				{Kind: KindNewline},
			},
		},
		{
			name: "rrule clause list",
			src:  "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
			want: []Token{
				{Kind: KindRrule},
				{Kind: KindColon},
				{Kind: KindFreq},
				{Kind: KindEquals},
				{Kind: KindWeekly},
				{Kind: KindSemicolon},
				{Kind: KindByDay},
				{Kind: KindEquals},
				{Kind: KindOther, Text: "MO"},
				{Kind: KindComma},
				{Kind: KindOther, Text: "WE"},
				{Kind: KindComma},
				{Kind: KindOther, Text: "FR"},
			},
		},
		{
			name: "keyword spelling not terminated stays free text",
			src:  "COUNTDOWN=3",
			want: []Token{
				{Kind: KindOther, Text: "COUNTDOWN"},
				{Kind: KindEquals},
				{Kind: KindNumber, Text: "3"},
			},
		},
		{
			name: "keyword at end of input",
			src:  "COUNT",
			want: []Token{{Kind: KindCount}},
		},
		{
			name: "insignificant whitespace",
			src:  "BEGIN :\tVCALENDAR\r\n",
			want: []Token{
				{Kind: KindBegin},
				{Kind: KindColon},
				{Kind: KindVcalendar},
				{Kind: KindNewline},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexAll(t, tt.src))
		})
	}
}

func TestPeekIsIdempotent(t *testing.T) {
	buf := NewPeekBuffer(NewLexer("test", "BEGIN:VEVENT"))

	first, err := buf.Peek(2)
	require.NoError(t, err)
	again, err := buf.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Peeking never advanced the stream.
	tok, err := buf.Next()
	require.NoError(t, err)
	assert.Equal(t, Token{Kind: KindBegin}, tok)

	// Peeking past the end caches the error too.
	_, err = buf.Peek(5)
	assert.ErrorIs(t, err, ErrEOF)
	_, err = buf.Peek(5)
	assert.ErrorIs(t, err, ErrEOF)
}

const sampleCalendar = `BEGIN:VCALENDAR
PRODID:-//Google Inc//Google Calendar 70.9054//EN
VERSION:2.0
CALSCALE:GREGORIAN
BEGIN:VEVENT
DTSTART:20230120T133000Z
DTEND:20230120T152000Z
RRULE:FREQ=WEEKLY;WKST=SU;COUNT=12;BYDAY=MO,WE,FR
DTSTAMP:20230119T080000Z
UID:4e9m2c1p8r@google.com
STATUS:CONFIRMED
SUMMARY:15-445 Lecture
TRANSP:OPAQUE
END:VEVENT
BEGIN:VEVENT
DTSTART;TZID=America/New_York:20230301T090000
DTEND;TZID=America/New_York:20230301T100000
SUMMARY:One-off checkup
TRANSP:OPAQUE
END:VEVENT
END:VCALENDAR
`

func TestParseCalendar(t *testing.T) {
	cal, err := Parse("classes", sampleCalendar, mintime.UTC())
	require.NoError(t, err)

	assert.Equal(t, "classes", cal.Name)
	require.Len(t, cal.Events, 2)

	lecture := cal.Events[0]
	assert.Equal(t, "15-445 Lecture", lecture.Summary)
	assert.Equal(t, utc(t, 2023, mintime.January, 20, 13, 30), lecture.Span.Start)
	assert.Equal(t, utc(t, 2023, mintime.January, 20, 15, 20), lecture.Span.End)

	rule := lecture.Repeat.MustGet()
	assert.Equal(t, Weekly, rule.Freq)
	assert.Equal(t, uint32(1), rule.Interval)
	assert.Equal(t, uint32(12), rule.Count.MustGet())
	assert.True(t, rule.Until.IsAbsent())
	require.Len(t, rule.Rules, 1)
	assert.Equal(t, KindByDay, rule.Rules[0].Tag.Kind)
	assert.Equal(t, []string{"MO", "WE", "FR"}, rule.Rules[0].Values)

	checkup := cal.Events[1]
	assert.Equal(t, "One-off checkup", checkup.Summary)
	assert.True(t, checkup.Repeat.IsAbsent())
	// TZID names are discarded; the literal reads under the ambient offset.
	assert.Equal(t, utc(t, 2023, mintime.March, 1, 9, 0), checkup.Span.Start)
}

func TestParseDateOnlyLiteralDefaultsToEndOfDay(t *testing.T) {
	src := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"DTSTART:20230310",
		"DTEND:20230312",
		"SUMMARY:Retreat",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")

	cal, err := Parse("retreat", src, mintime.UTC())
	require.NoError(t, err)
	require.Len(t, cal.Events, 1)
	assert.Equal(t, utc(t, 2023, mintime.March, 10, 23, 59), cal.Events[0].Span.Start)
	assert.Equal(t, utc(t, 2023, mintime.March, 12, 23, 59), cal.Events[0].Span.End)
}

func TestParseUntilClause(t *testing.T) {
	src := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"DTSTART:20230120T090000Z",
		"DTEND:20230120T100000Z",
		"RRULE:FREQ=DAILY;UNTIL=20230215T090000Z",
		"SUMMARY:Standup",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")

	cal, err := Parse("standup", src, mintime.UTC())
	require.NoError(t, err)
	rule := cal.Events[0].Repeat.MustGet()
	assert.Equal(t, Daily, rule.Freq)
	assert.Equal(t, utc(t, 2023, mintime.February, 15, 9, 0), rule.Until.MustGet())
	assert.True(t, rule.Count.IsAbsent())
}

func TestParseErrors(t *testing.T) {
	wrap := func(lines ...string) string {
		all := append([]string{"BEGIN:VCALENDAR", "BEGIN:VEVENT"}, lines...)
		all = append(all, "END:VEVENT", "END:VCALENDAR")
		return strings.Join(all, "\n")
	}

	t.Run("missing dtend names the event", func(t *testing.T) {
		_, err := Parse("bad", wrap(
			"DTSTART:20230120T090000Z",
			"SUMMARY:Orphan",
			"TRANSP:OPAQUE",
		), mintime.UTC())

		var missing *MissingPropertyError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "Orphan", missing.Summary)
		assert.Equal(t, "DTEND", missing.Property)
	})

	t.Run("count and until are mutually exclusive", func(t *testing.T) {
		_, err := Parse("bad", wrap(
			"DTSTART:20230120T090000Z",
			"DTEND:20230120T100000Z",
			"RRULE:FREQ=DAILY;COUNT=5;UNTIL=20230215T090000Z",
		), mintime.UTC())

		var both *CountAndUntilError
		require.ErrorAs(t, err, &both)
		assert.Equal(t, uint32(5), both.Count)
	})

	t.Run("unsupported byxxx clause", func(t *testing.T) {
		_, err := Parse("bad", wrap(
			"DTSTART:20230120T090000Z",
			"DTEND:20230120T100000Z",
			"RRULE:FREQ=YEARLY;BYMONTH=3",
		), mintime.UTC())

		var unsupported *UnsupportedRuleError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, KindByMonth, unsupported.Tok.Kind)
	})

	t.Run("timed literal without zone marker", func(t *testing.T) {
		_, err := Parse("bad", wrap(
			"DTSTART:20230120T090000",
			"DTEND:20230120T100000Z",
		), mintime.UTC())

		var mismatch *MismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("impossible civil date", func(t *testing.T) {
		_, err := Parse("bad", wrap(
			"DTSTART:20230231T090000Z",
			"DTEND:20230301T100000Z",
		), mintime.UTC())

		var malformed *MalformedTimeError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "20230231", malformed.YMD)
	})

	t.Run("empty byday list", func(t *testing.T) {
		_, err := Parse("bad", wrap(
			"DTSTART:20230120T090000Z",
			"DTEND:20230120T100000Z",
			"RRULE:FREQ=WEEKLY;BYDAY=",
		), mintime.UTC())

		var malformed *MalformedListError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("zero count", func(t *testing.T) {
		_, err := Parse("bad", wrap(
			"DTSTART:20230120T090000Z",
			"DTEND:20230120T100000Z",
			"RRULE:FREQ=DAILY;COUNT=0",
		), mintime.UTC())

		var rangeErr *refine.RangeError
		require.ErrorAs(t, err, &rangeErr)
	})

	t.Run("truncated input", func(t *testing.T) {
		_, err := Parse("bad", "BEGIN:VCALENDAR\nBEGIN:VEVENT\nDTSTART:20230120T090000Z\n", mintime.UTC())
		assert.ErrorIs(t, err, ErrEOF)
	})
}
