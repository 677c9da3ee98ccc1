// Package calendar holds loaded calendars and tasks, and computes how much
// of the free time before a task's due date the task consumes.
package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TianweiOwenLi/TaggyTime/ics"
	"github.com/TianweiOwenLi/TaggyTime/mintime"
	"github.com/TianweiOwenLi/TaggyTime/recurrence"
)

// NotICSError reports an attempt to load a file without the .ics extension.
type NotICSError struct {
	Path string
}

func (e *NotICSError) Error() string {
	return fmt.Sprintf("`%s` is not an .ics file", e.Path)
}

// Event is a calendar event: a summary and the expanded recurrence of its
// occurrences.
type Event struct {
	Summary    string
	Recurrence recurrence.Recurrence
}

// Truncate fast-forwards the event past occurrences that ended before now.
// An occurrence ending exactly at now is kept. The second return value is
// false when no occurrence remains.
func (e Event) Truncate(now mintime.MinInstant) (Event, bool) {
	r := e.Recurrence
	for {
		if !r.Cur.End.Before(now) {
			return Event{Summary: e.Summary, Recurrence: r}, true
		}
		next, ok := r.Advance().Get()
		if !ok {
			return Event{}, false
		}
		r = next
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %v", e.Summary, e.Recurrence)
}

// LoadICS reads and parses the .ics file at path, returning the calendar
// name (the file's base name without extension) and its events. Date
// literals without zone information are interpreted under tz.
func LoadICS(path string, tz mintime.ZoneOffset) (string, []Event, error) {
	if strings.ToLower(filepath.Ext(path)) != ".ics" {
		return "", nil, &NotICSError{Path: path}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read calendar: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	cal, err := ics.Parse(name, string(content), tz)
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", path, err)
	}

	events := make([]Event, 0, len(cal.Events))
	for _, ev := range cal.Events {
		rec, err := recurrence.FromEvent(ev)
		if err != nil {
			return "", nil, err
		}
		events = append(events, Event{Summary: ev.Summary, Recurrence: rec})
	}
	return name, events, nil
}
