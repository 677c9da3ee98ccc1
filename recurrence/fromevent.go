package recurrence

import (
	"fmt"

	"github.com/TianweiOwenLi/TaggyTime/ics"
	"github.com/TianweiOwenLi/TaggyTime/mintime"
)

// FromEvent translates a parsed event into a recurrence. Events without an
// RRULE become one-shot occurrences. For repeating events the rule's
// frequency and BYDAY clauses become a date property:
//
//   - an explicit BYDAY list accepts exactly the listed weekdays;
//   - DAILY accepts every day;
//   - WEEKLY without BYDAY accepts the weekday the event starts on;
//   - MONTHLY accepts the day-of-month the event starts on;
//   - YEARLY accepts the start's month-and-day combination.
func FromEvent(ev ics.Vevent) (Recurrence, error) {
	rule, ok := ev.Repeat.Get()
	if !ok {
		return New(ev.Span, Once()), nil
	}

	var byday []DateProperty
	for _, clause := range rule.Rules {
		if clause.Tag.Kind != ics.KindByDay {
			continue
		}
		for _, code := range clause.Values {
			day, err := mintime.ParseWeekday(code)
			if err != nil {
				return Recurrence{}, fmt.Errorf("event %q: %w", ev.Summary, err)
			}
			byday = append(byday, OnWeekday(day))
		}
	}

	start := ev.Span.Start.Date()
	var prop DateProperty
	switch {
	case len(byday) > 0:
		prop = AnyOf(byday...)
	case rule.Freq == ics.Daily:
		prop = Always()
	case rule.Freq == ics.Weekly:
		prop = OnWeekday(start.Weekday())
	case rule.Freq == ics.Monthly:
		prop = OnMonthDay(start.Day)
	default:
		prop = AllOf(InMonth(start.Month), OnMonthDay(start.Day))
	}

	term := Never()
	if n, ok := rule.Count.Get(); ok {
		term = Count(n)
	} else if bound, ok := rule.Until.Get(); ok {
		term = Until(bound)
	}

	return New(ev.Span, Repeating(prop, rule.Interval, term)), nil
}
