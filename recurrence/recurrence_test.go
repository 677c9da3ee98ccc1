package recurrence

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TianweiOwenLi/TaggyTime/ics"
	"github.com/TianweiOwenLi/TaggyTime/mintime"
)

func instant(t *testing.T, year uint16, month mintime.Month, day, hour, minute int) mintime.MinInstant {
	t.Helper()
	d, err := mintime.NewDate(year, month, day, hour, minute, mintime.UTC())
	require.NoError(t, err)
	mi, err := mintime.FromDate(d)
	require.NoError(t, err)
	return mi
}

func span(t *testing.T, year uint16, month mintime.Month, day, h1, m1, h2, m2 int) mintime.MinInterval {
	t.Helper()
	return mintime.NewInterval(
		instant(t, year, month, day, h1, m1),
		instant(t, year, month, day, h2, m2),
	)
}

// mwfLecture is a class meeting Monday, Wednesday and Friday, anchored on
// Friday 2023-Jan-20.
func mwfLecture(t *testing.T, term Term) Recurrence {
	t.Helper()
	prop := AnyOf(
		OnWeekday(mintime.Monday),
		OnWeekday(mintime.Wednesday),
		OnWeekday(mintime.Friday),
	)
	return New(span(t, 2023, mintime.January, 20, 13, 30, 15, 20), Repeating(prop, 1, term))
}

func TestAdvanceStepsToMatchingDays(t *testing.T) {
	r := mwfLecture(t, Never())
	assert.Equal(t, mintime.Friday, r.Cur.Start.Date().Weekday())

	r = r.Advance().MustGet()
	assert.Equal(t, uint32(2), r.Index)
	assert.Equal(t, "2023/Jan/23 13:30", r.Cur.Start.Date().NoTZString())

	r = r.Advance().MustGet()
	assert.Equal(t, "2023/Jan/25 13:30", r.Cur.Start.Date().NoTZString())
}

func TestCountTermination(t *testing.T) {
	r := mwfLecture(t, Count(12))

	last := r
	for {
		next, ok := last.Advance().Get()
		if !ok {
			break
		}
		last = next
	}

	assert.Equal(t, uint32(12), last.Index)
	assert.Equal(t, "2023/Feb/15 13:30", last.Cur.Start.Date().NoTZString())
}

func TestUntilTermination(t *testing.T) {
	// The bound falls on the start of the fourth occurrence, which is
	// therefore included; one minute earlier and it is not.
	onBoundary := mwfLecture(t, Until(instant(t, 2023, mintime.January, 27, 13, 30)))
	count := 1
	for r := onBoundary; ; {
		next, ok := r.Advance().Get()
		if !ok {
			break
		}
		r = next
		count++
	}
	assert.Equal(t, 4, count)

	justBefore := mwfLecture(t, Until(instant(t, 2023, mintime.January, 27, 13, 29)))
	count = 1
	for r := justBefore; ; {
		next, ok := r.Advance().Get()
		if !ok {
			break
		}
		r = next
		count++
	}
	assert.Equal(t, 3, count)
}

func TestIntervalSkipsMatches(t *testing.T) {
	// Every third day, anchored on Jan 1.
	r := New(span(t, 2023, mintime.January, 1, 9, 0, 10, 0), Repeating(Always(), 3, Never()))

	r = r.Advance().MustGet()
	assert.Equal(t, "2023/Jan/4 09:00", r.Cur.Start.Date().NoTZString())
	r = r.Advance().MustGet()
	assert.Equal(t, "2023/Jan/7 09:00", r.Cur.Start.Date().NoTZString())
}

func TestMonthDayStepping(t *testing.T) {
	// Anchored on the 31st: months without a 31st are skipped entirely.
	r := New(span(t, 2023, mintime.January, 31, 9, 0, 10, 0), Repeating(OnMonthDay(31), 1, Never()))

	r = r.Advance().MustGet()
	assert.Equal(t, "2023/Mar/31 09:00", r.Cur.Start.Date().NoTZString())
	r = r.Advance().MustGet()
	assert.Equal(t, "2023/May/31 09:00", r.Cur.Start.Date().NoTZString())
}

func TestYearlyLeapDay(t *testing.T) {
	prop := AllOf(InMonth(mintime.February), OnMonthDay(29))
	r := New(span(t, 2024, mintime.February, 29, 9, 0, 10, 0), Repeating(prop, 1, Never()))

	r = r.Advance().MustGet()
	assert.Equal(t, "2028/Feb/29 09:00", r.Cur.Start.Date().NoTZString())
}

func TestOverlap(t *testing.T) {
	r := mwfLecture(t, Never())
	window := mintime.NewInterval(
		instant(t, 2023, mintime.January, 21, 0, 0),
		instant(t, 2023, mintime.January, 27, 14, 52),
	)

	// Mon 23 and Wed 25 contribute full 110-minute sessions; Fri 27 is cut
	// off at 14:52 after 82 minutes. Fri 20 precedes the window.
	assert.Equal(t, uint32(302), r.Overlap(window))
}

func TestOverlapEmptyWindow(t *testing.T) {
	r := mwfLecture(t, Never())
	window := mintime.NewInterval(
		instant(t, 2022, mintime.June, 1, 0, 0),
		instant(t, 2022, mintime.June, 30, 0, 0),
	)
	assert.Equal(t, uint32(0), r.Overlap(window))
}

func TestEnded(t *testing.T) {
	once := New(span(t, 2023, mintime.January, 20, 13, 30, 15, 20), Once())
	assert.False(t, once.Ended(instant(t, 2023, mintime.January, 20, 14, 0)))
	// Ending exactly at now is not yet ended; one minute later it is.
	assert.False(t, once.Ended(instant(t, 2023, mintime.January, 20, 15, 20)))
	assert.True(t, once.Ended(instant(t, 2023, mintime.January, 20, 15, 21)))

	counted := mwfLecture(t, Count(12))
	assert.False(t, counted.Ended(instant(t, 2023, mintime.February, 15, 13, 30)))
	assert.False(t, counted.Ended(instant(t, 2023, mintime.February, 15, 15, 20)))
	assert.True(t, counted.Ended(instant(t, 2023, mintime.February, 15, 15, 21)))

	unbounded := mwfLecture(t, Never())
	assert.False(t, unbounded.Ended(instant(t, 2077, mintime.January, 1, 0, 0)))
}

func TestSpecRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rec  Recurrence
	}{
		{
			name: "one-shot",
			rec:  New(span(t, 2023, mintime.January, 20, 13, 30, 15, 20), Once()),
		},
		{
			name: "weekdays with count, mid-sequence",
			rec:  mwfLecture(t, Count(12)).Advance().MustGet(),
		},
		{
			name: "daily until",
			rec: New(
				span(t, 2023, mintime.January, 1, 9, 0, 9, 30),
				Repeating(Always(), 2, Until(instant(t, 2023, mintime.June, 1, 0, 0))),
			),
		},
		{
			name: "yearly month and day",
			rec: New(
				span(t, 2024, mintime.February, 29, 9, 0, 10, 0),
				Repeating(AllOf(InMonth(mintime.February), OnMonthDay(29)), 1, Never()),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rebuilt, err := FromSpec(tt.rec.Spec())
			require.NoError(t, err)
			assert.Equal(t, tt.rec, rebuilt)
		})
	}
}

func TestFromEvent(t *testing.T) {
	base := span(t, 2023, mintime.January, 20, 13, 30, 15, 20)

	t.Run("no rrule is one-shot", func(t *testing.T) {
		r, err := FromEvent(ics.Vevent{Span: base, Summary: "checkup"})
		require.NoError(t, err)
		assert.True(t, r.Advance().IsAbsent())
	})

	t.Run("weekly byday", func(t *testing.T) {
		ev := ics.Vevent{
			Span:    base,
			Summary: "lecture",
			Repeat: mo.Some(ics.RepeatRule{
				Freq:     ics.Weekly,
				Interval: 1,
				Count:    mo.Some(uint32(12)),
				Rules: []ics.RuleTokens{{
					Tag:    ics.Token{Kind: ics.KindByDay},
					Values: []string{"MO", "WE", "FR"},
				}},
			}),
		}
		r, err := FromEvent(ev)
		require.NoError(t, err)
		next := r.Advance().MustGet()
		assert.Equal(t, mintime.Monday, next.Cur.Start.Date().Weekday())
	})

	t.Run("weekly without byday keeps start weekday", func(t *testing.T) {
		ev := ics.Vevent{
			Span:    base,
			Summary: "sync",
			Repeat:  mo.Some(ics.RepeatRule{Freq: ics.Weekly, Interval: 1}),
		}
		r, err := FromEvent(ev)
		require.NoError(t, err)
		next := r.Advance().MustGet()
		assert.Equal(t, "2023/Jan/27 13:30", next.Cur.Start.Date().NoTZString())
	})

	t.Run("monthly keeps start day", func(t *testing.T) {
		ev := ics.Vevent{
			Span:    base,
			Summary: "rent",
			Repeat:  mo.Some(ics.RepeatRule{Freq: ics.Monthly, Interval: 1}),
		}
		r, err := FromEvent(ev)
		require.NoError(t, err)
		next := r.Advance().MustGet()
		assert.Equal(t, "2023/Feb/20 13:30", next.Cur.Start.Date().NoTZString())
	})

	t.Run("bad weekday code", func(t *testing.T) {
		ev := ics.Vevent{
			Span:    base,
			Summary: "broken",
			Repeat: mo.Some(ics.RepeatRule{
				Freq:     ics.Weekly,
				Interval: 1,
				Rules: []ics.RuleTokens{{
					Tag:    ics.Token{Kind: ics.KindByDay},
					Values: []string{"XX"},
				}},
			}),
		}
		_, err := FromEvent(ev)
		assert.Error(t, err)
	})
}
