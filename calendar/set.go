package calendar

import (
	"fmt"
	"math"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
	"github.com/TianweiOwenLi/TaggyTime/refine"
)

// Set is the collection of loaded calendars, keyed by calendar name.
type Set struct {
	cals NameMap[[]Event]
}

// Add registers a named calendar, failing when the name is taken.
func (s *Set) Add(name string, events []Event) error {
	return s.cals.UniqueInsert(name, events)
}

// Put registers a named calendar, replacing any previous one.
func (s *Set) Put(name string, events []Event) {
	s.cals.Insert(name, events)
}

// Remove drops a calendar, reporting whether it existed.
func (s *Set) Remove(name string) bool { return s.cals.Remove(name) }

// Contains reports whether a calendar is loaded under name.
func (s *Set) Contains(name string) bool { return s.cals.Contains(name) }

// Names returns the loaded calendar names in sorted order.
func (s *Set) Names() []string { return s.cals.Names() }

// Len returns the number of loaded calendars.
func (s *Set) Len() int { return s.cals.Len() }

// Events returns the events of the named calendar.
func (s *Set) Events(name string) ([]Event, bool) { return s.cals.Get(name) }

// Overlap returns the total minutes of window occupied by any event of any
// calendar. Concurrent events count multiply; the sum overflowing uint32
// would take millennia of booked time and panics as a defect.
func (s *Set) Overlap(window mintime.MinInterval) uint32 {
	var total uint32
	for _, name := range s.cals.Names() {
		events, _ := s.cals.Get(name)
		for _, ev := range events {
			part := ev.Recurrence.Overlap(window)
			sum := uint64(total) + uint64(part)
			if sum > math.MaxUint32 {
				panic(fmt.Sprintf("overlap accumulation overflows: %d + %d", total, part))
			}
			total = uint32(sum)
		}
	}
	return total
}

// Impact computes the share of free time between now and the task's due
// instant that the task's remaining workload consumes. Tasks due in the
// past are expired, as are tasks whose remaining workload exceeds what a
// percentage can express.
func (s *Set) Impact(now mintime.MinInstant, t *Task) Impact {
	if !t.Due.After(now) {
		return ExpiredImpact()
	}

	window := mintime.NewInterval(now, t.Due)
	total := window.NumMin()
	occupied := s.Overlap(window)
	remaining := t.RemainingWorkload().NumMin()

	if occupied >= total {
		if remaining == 0 {
			return ImpactOf(0)
		}
		return ExpiredImpact()
	}

	ratio := float64(remaining) / float64(total-occupied)
	load, err := refine.PercentFromRatio(ratio)
	if err != nil {
		return ExpiredImpact()
	}
	return ImpactOf(load)
}

// Truncate fast-forwards every event past its occurrences that ended
// before now, dropping events with no occurrence left.
func (s *Set) Truncate(now mintime.MinInstant) {
	for _, name := range s.cals.Names() {
		events, _ := s.cals.Get(name)
		kept := make([]Event, 0, len(events))
		for _, ev := range events {
			if advanced, ok := ev.Truncate(now); ok {
				kept = append(kept, advanced)
			}
		}
		s.cals.Insert(name, kept)
	}
}
