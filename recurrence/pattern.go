// Package recurrence expands parsed recurrence rules into concrete
// occurrence sequences. A rule becomes a Pattern, which pairs a predicate
// over civil dates with a step interval and a termination condition; the
// engine then walks forward one day at a time, keeping the days the
// predicate accepts.
package recurrence

import (
	"fmt"
	"strings"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
)

// DateProperty is a predicate over civil dates. Recurrence expansion keeps
// exactly the days a property accepts.
type DateProperty interface {
	Matches(d mintime.Date) bool
	String() string
}

type always struct{}

func (always) Matches(mintime.Date) bool { return true }
func (always) String() string            { return "every day" }

// Always accepts every date.
func Always() DateProperty { return always{} }

type onWeekday struct{ day mintime.Weekday }

func (p onWeekday) Matches(d mintime.Date) bool { return d.Weekday() == p.day }
func (p onWeekday) String() string              { return p.day.String() }

// OnWeekday accepts dates falling on the given weekday.
func OnWeekday(day mintime.Weekday) DateProperty { return onWeekday{day: day} }

type onMonthDay struct{ day uint8 }

func (p onMonthDay) Matches(d mintime.Date) bool { return d.Day == p.day }
func (p onMonthDay) String() string              { return fmt.Sprintf("day %d", p.day) }

// OnMonthDay accepts dates on the given day of the month.
func OnMonthDay(day uint8) DateProperty { return onMonthDay{day: day} }

type inMonth struct{ month mintime.Month }

func (p inMonth) Matches(d mintime.Date) bool { return d.Month == p.month }
func (p inMonth) String() string              { return p.month.String() }

// InMonth accepts dates within the given month.
func InMonth(month mintime.Month) DateProperty { return inMonth{month: month} }

type anyOf struct{ props []DateProperty }

func (p anyOf) Matches(d mintime.Date) bool {
	for _, prop := range p.props {
		if prop.Matches(d) {
			return true
		}
	}
	return false
}

func (p anyOf) String() string { return joinProps(p.props, ", ") }

// AnyOf accepts dates matching at least one of the given properties. With
// no properties it accepts nothing.
func AnyOf(props ...DateProperty) DateProperty { return anyOf{props: props} }

type allOf struct{ props []DateProperty }

func (p allOf) Matches(d mintime.Date) bool {
	for _, prop := range p.props {
		if !prop.Matches(d) {
			return false
		}
	}
	return true
}

func (p allOf) String() string { return joinProps(p.props, " ") }

// AllOf accepts dates matching every one of the given properties.
func AllOf(props ...DateProperty) DateProperty { return allOf{props: props} }

func joinProps(props []DateProperty, sep string) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}

type termKind int

const (
	termNever termKind = iota
	termCount
	termUntil
)

// Term is the termination condition of a repeating pattern: never, after a
// fixed number of occurrences, or once an occurrence would start past a
// bound.
type Term struct {
	kind  termKind
	count uint32
	until mintime.MinInstant
}

// Never repeats without bound.
func Never() Term { return Term{kind: termNever} }

// Count stops after n occurrences, the initial one included.
func Count(n uint32) Term { return Term{kind: termCount, count: n} }

// Until stops before the first occurrence that would start after the
// bound.
func Until(bound mintime.MinInstant) Term {
	return Term{kind: termUntil, until: bound}
}

func (t Term) String() string {
	switch t.kind {
	case termCount:
		return fmt.Sprintf("%d times", t.count)
	case termUntil:
		return fmt.Sprintf("until %s", t.until.Date().NoTZString())
	default:
		return "forever"
	}
}

// Pattern describes how an occurrence repeats. The zero value is invalid;
// construct with Once or Repeating.
type Pattern struct {
	repeats  bool
	prop     DateProperty
	interval uint32
	term     Term
}

// Once is the pattern of a non-repeating occurrence.
func Once() Pattern { return Pattern{} }

// Repeating builds a pattern that keeps every interval-th day accepted by
// prop, subject to term. An interval of zero is treated as one.
func Repeating(prop DateProperty, interval uint32, term Term) Pattern {
	if interval == 0 {
		interval = 1
	}
	return Pattern{repeats: true, prop: prop, interval: interval, term: term}
}

func (p Pattern) String() string {
	if !p.repeats {
		return "once"
	}
	s := fmt.Sprintf("repeats on %v, %v", p.prop, p.term)
	if p.interval > 1 {
		s += fmt.Sprintf(", every %d matches", p.interval)
	}
	return s
}
