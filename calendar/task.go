package calendar

import (
	"fmt"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
	"github.com/TianweiOwenLi/TaggyTime/refine"
)

// MaxWorkload is the largest representable workload in minutes, a little
// over forty days of uninterrupted work.
const MaxWorkload = 59_999

// Workload is the number of minutes needed to complete a task from scratch.
type Workload uint32

// NewWorkload validates a workload given in minutes.
func NewWorkload(numMin uint32) (Workload, error) {
	if numMin > MaxWorkload {
		return 0, fmt.Errorf("workload of %d minutes exceeds the %d-minute bound", numMin, MaxWorkload)
	}
	return Workload(numMin), nil
}

// NumMin returns the workload in minutes.
func (w Workload) NumMin() uint32 { return uint32(w) }

// MultiplyPercent scales the workload, rounding to the nearest whole
// minute. The product stays within uint32 even for overflowed percents.
func (w Workload) MultiplyPercent(p refine.Percent) Workload {
	product := uint32(w) * uint32(p)
	scaled := product / 100
	if product%100 >= 50 {
		scaled++
	}
	return Workload(scaled)
}

func (w Workload) String() string { return fmt.Sprintf("%d min", uint32(w)) }

// Impact expresses how much of the free time before a task's due instant
// its remaining workload would consume. A task is expired when its due
// instant has passed or no amount of free time can accommodate it.
type Impact struct {
	load    refine.Percent
	expired bool
}

// ExpiredImpact is the impact of an unsatisfiable task.
func ExpiredImpact() Impact { return Impact{expired: true} }

// ImpactOf wraps a computed load percentage.
func ImpactOf(p refine.Percent) Impact { return Impact{load: p} }

// IsExpired reports whether the task cannot be completed in time.
func (im Impact) IsExpired() bool { return im.expired }

// Load returns the load percentage; meaningless for expired impacts.
func (im Impact) Load() refine.Percent { return im.load }

// Heavier orders impacts by urgency: expired outweighs everything, then
// higher loads.
func (im Impact) Heavier(other Impact) bool {
	if im.expired != other.expired {
		return im.expired
	}
	return im.load > other.load
}

func (im Impact) String() string {
	if im.expired {
		return "expired"
	}
	return im.load.String()
}

// Task is a piece of work with a deadline: its length and how much of it
// is already done. Impact against the current calendars is a function of
// the task, the loaded events and the present instant, so it is computed
// on demand rather than stored.
type Task struct {
	Due        mintime.MinInstant
	Length     Workload
	Completion refine.Percent
}

// NewTask creates a task with no progress.
func NewTask(due mintime.MinInstant, length Workload) *Task {
	return &Task{Due: due, Length: length}
}

// RemainingWorkload scales the task's length by its unfinished share.
func (t *Task) RemainingWorkload() Workload {
	complement, err := t.Completion.Complement()
	if err != nil {
		// Completion is clamped on every write, so it cannot overflow.
		panic(fmt.Sprintf("task completion %v overflowed", t.Completion))
	}
	return t.Length.MultiplyPercent(complement)
}

// SetProgress updates completion, capping it at 100%.
func (t *Task) SetProgress(p refine.Percent) {
	t.Completion = p.Clamp()
}

func (t *Task) String() string {
	return fmt.Sprintf("due %s, %v, %v done",
		t.Due.Date().NoTZString(), t.Length, t.Completion)
}
