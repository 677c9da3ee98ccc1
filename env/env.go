// Package env persists the working state between invocations: the user's
// timezone, the loaded calendars and the task list.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/TianweiOwenLi/TaggyTime/calendar"
	"github.com/TianweiOwenLi/TaggyTime/mintime"
	"github.com/TianweiOwenLi/TaggyTime/recurrence"
	"github.com/TianweiOwenLi/TaggyTime/refine"
)

// Env is the whole persisted state.
type Env struct {
	TZ        mintime.ZoneOffset
	Calendars calendar.Set
	Tasks     calendar.NameMap[*calendar.Task]
}

// New returns an empty environment in UTC.
func New() *Env {
	return &Env{TZ: mintime.UTC()}
}

// The on-disk representation is kept separate from the domain types so the
// file format can evolve independently. Instants are stored as raw minute
// counts; the display offset is reattached from the environment's timezone
// on load.

type fileEnv struct {
	TZ        string         `yaml:"tz"`
	Calendars []fileCalendar `yaml:"calendars,omitempty"`
	Tasks     []fileTask     `yaml:"tasks,omitempty"`
}

type fileCalendar struct {
	Name   string      `yaml:"name"`
	Events []fileEvent `yaml:"events,omitempty"`
}

type fileEvent struct {
	Summary    string         `yaml:"summary"`
	Recurrence fileRecurrence `yaml:"recurrence"`
}

type fileRecurrence struct {
	Start    uint32   `yaml:"start"`
	End      uint32   `yaml:"end"`
	Offset   int      `yaml:"offset,omitempty"`
	Index    uint32   `yaml:"index"`
	Repeats  bool     `yaml:"repeats"`
	EveryDay bool     `yaml:"every_day,omitempty"`
	Weekdays []string `yaml:"weekdays,omitempty"`
	MonthDay int      `yaml:"month_day,omitempty"`
	Month    int      `yaml:"month,omitempty"`
	Interval uint32   `yaml:"interval,omitempty"`
	Term     string   `yaml:"term,omitempty"`
	Count    uint32   `yaml:"count,omitempty"`
	Until    uint32   `yaml:"until,omitempty"`
}

type fileTask struct {
	Name       string `yaml:"name"`
	Due        uint32 `yaml:"due"`
	Length     uint32 `yaml:"length"`
	Completion uint16 `yaml:"completion"`
}

// Load reads the environment from path. A missing file is not an error; it
// yields a fresh environment in UTC.
func Load(path string) (*Env, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("no environment file, starting fresh", "path", path)
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	var file fileEnv
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	e, err := fromFile(file)
	if err != nil {
		return nil, fmt.Errorf("environment %s: %w", path, err)
	}
	slog.Debug("environment loaded",
		"path", path, "calendars", e.Calendars.Len(), "tasks", e.Tasks.Len())
	return e, nil
}

// Save writes the environment to path, creating parent directories as
// needed.
func (e *Env) Save(path string) error {
	content, err := yaml.Marshal(toFile(e))
	if err != nil {
		return fmt.Errorf("encode environment: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create environment directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write environment: %w", err)
	}
	slog.Debug("environment saved", "path", path)
	return nil
}

func fromFile(file fileEnv) (*Env, error) {
	e := New()
	if file.TZ != "" {
		tz, err := mintime.ParseZoneOffset(file.TZ)
		if err != nil {
			return nil, err
		}
		e.TZ = tz
	}

	for _, cal := range file.Calendars {
		events := make([]calendar.Event, 0, len(cal.Events))
		for _, ev := range cal.Events {
			rec, err := recurrence.FromSpec(recurrence.Spec{
				StartRaw:      ev.Recurrence.Start,
				EndRaw:        ev.Recurrence.End,
				OffsetMinutes: ev.Recurrence.Offset,
				Index:         ev.Recurrence.Index,
				Repeats:       ev.Recurrence.Repeats,
				EveryDay:      ev.Recurrence.EveryDay,
				Weekdays:      ev.Recurrence.Weekdays,
				MonthDay:      ev.Recurrence.MonthDay,
				Month:         ev.Recurrence.Month,
				Interval:      ev.Recurrence.Interval,
				Term:          ev.Recurrence.Term,
				Count:         ev.Recurrence.Count,
				UntilRaw:      ev.Recurrence.Until,
			})
			if err != nil {
				return nil, fmt.Errorf("event %q: %w", ev.Summary, err)
			}
			events = append(events, calendar.Event{Summary: ev.Summary, Recurrence: rec})
		}
		if err := e.Calendars.Add(cal.Name, events); err != nil {
			return nil, err
		}
	}

	for _, task := range file.Tasks {
		due, err := mintime.FromRaw(task.Due, e.TZ)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Name, err)
		}
		length, err := calendar.NewWorkload(task.Length)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Name, err)
		}
		t := calendar.NewTask(due, length)
		t.SetProgress(refine.Percent(task.Completion))
		if err := e.Tasks.UniqueInsert(task.Name, t); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func toFile(e *Env) fileEnv {
	file := fileEnv{TZ: e.TZ.String()}

	for _, name := range e.Calendars.Names() {
		events, _ := e.Calendars.Events(name)
		cal := fileCalendar{Name: name, Events: make([]fileEvent, 0, len(events))}
		for _, ev := range events {
			spec := ev.Recurrence.Spec()
			cal.Events = append(cal.Events, fileEvent{
				Summary: ev.Summary,
				Recurrence: fileRecurrence{
					Start:    spec.StartRaw,
					End:      spec.EndRaw,
					Offset:   spec.OffsetMinutes,
					Index:    spec.Index,
					Repeats:  spec.Repeats,
					EveryDay: spec.EveryDay,
					Weekdays: spec.Weekdays,
					MonthDay: spec.MonthDay,
					Month:    spec.Month,
					Interval: spec.Interval,
					Term:     spec.Term,
					Count:    spec.Count,
					Until:    spec.UntilRaw,
				},
			})
		}
		file.Calendars = append(file.Calendars, cal)
	}

	for _, name := range e.Tasks.Names() {
		task, _ := e.Tasks.Get(name)
		file.Tasks = append(file.Tasks, fileTask{
			Name:       name,
			Due:        task.Due.Raw(),
			Length:     task.Length.NumMin(),
			Completion: uint16(task.Completion),
		})
	}
	return file
}
