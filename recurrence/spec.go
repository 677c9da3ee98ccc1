package recurrence

import (
	"fmt"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
)

// Spec is a flat, serialization-friendly description of a recurrence. It
// covers exactly the pattern shapes FromEvent produces: every day, a set of
// weekdays, a day of the month, or a month-and-day combination.
type Spec struct {
	StartRaw      uint32
	EndRaw        uint32
	OffsetMinutes int
	Index         uint32

	Repeats  bool
	EveryDay bool
	Weekdays []string
	MonthDay int
	Month    int // 1 through 12, zero when unused
	Interval uint32

	Term     string // "never", "count" or "until"
	Count    uint32
	UntilRaw uint32
}

// Spec flattens the recurrence for persistence. FromSpec inverts it.
func (r Recurrence) Spec() Spec {
	s := Spec{
		StartRaw:      r.Cur.Start.Raw(),
		EndRaw:        r.Cur.End.Raw(),
		OffsetMinutes: r.Cur.Start.Offset().Minutes(),
		Index:         r.Index,
		Repeats:       r.pattern.repeats,
		Term:          "never",
	}
	if !r.pattern.repeats {
		return s
	}

	s.Interval = r.pattern.interval
	describeProp(r.pattern.prop, &s)

	switch r.pattern.term.kind {
	case termCount:
		s.Term = "count"
		s.Count = r.pattern.term.count
	case termUntil:
		s.Term = "until"
		s.UntilRaw = r.pattern.term.until.Raw()
	}
	return s
}

func describeProp(prop DateProperty, s *Spec) {
	switch p := prop.(type) {
	case always:
		s.EveryDay = true
	case onWeekday:
		s.Weekdays = append(s.Weekdays, p.day.Code())
	case onMonthDay:
		s.MonthDay = int(p.day)
	case inMonth:
		s.Month = int(p.month) + 1
	case anyOf:
		for _, sub := range p.props {
			describeProp(sub, s)
		}
	case allOf:
		for _, sub := range p.props {
			describeProp(sub, s)
		}
	}
}

// FromSpec rebuilds a recurrence from its flattened form.
func FromSpec(s Spec) (Recurrence, error) {
	offset, err := mintime.NewZoneOffset(s.OffsetMinutes)
	if err != nil {
		return Recurrence{}, err
	}
	start, err := mintime.FromRaw(s.StartRaw, offset)
	if err != nil {
		return Recurrence{}, err
	}
	end, err := mintime.FromRaw(s.EndRaw, offset)
	if err != nil {
		return Recurrence{}, err
	}
	span := mintime.NewInterval(start, end)

	index := s.Index
	if index == 0 {
		index = 1
	}

	if !s.Repeats {
		return Recurrence{Cur: span, Index: index, pattern: Once()}, nil
	}

	prop, err := specProp(s)
	if err != nil {
		return Recurrence{}, err
	}

	var term Term
	switch s.Term {
	case "never", "":
		term = Never()
	case "count":
		term = Count(s.Count)
	case "until":
		bound, err := mintime.FromRaw(s.UntilRaw, offset)
		if err != nil {
			return Recurrence{}, err
		}
		term = Until(bound)
	default:
		return Recurrence{}, fmt.Errorf("unknown termination kind %q", s.Term)
	}

	return Recurrence{
		Cur:     span,
		Index:   index,
		pattern: Repeating(prop, s.Interval, term),
	}, nil
}

func specProp(s Spec) (DateProperty, error) {
	if s.EveryDay {
		return Always(), nil
	}
	if len(s.Weekdays) > 0 {
		props := make([]DateProperty, len(s.Weekdays))
		for i, code := range s.Weekdays {
			day, err := mintime.ParseWeekday(code)
			if err != nil {
				return nil, err
			}
			props[i] = OnWeekday(day)
		}
		return AnyOf(props...), nil
	}
	if s.MonthDay > 0 && s.Month > 0 {
		if s.Month > 12 {
			return nil, fmt.Errorf("month number %d out of range", s.Month)
		}
		return AllOf(
			InMonth(mintime.Month(s.Month-1)),
			OnMonthDay(uint8(s.MonthDay)),
		), nil
	}
	if s.MonthDay > 0 {
		return OnMonthDay(uint8(s.MonthDay)), nil
	}
	return nil, fmt.Errorf("recurrence description names no date property")
}
