package domain

import (
	"fmt"
	"time"

	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
)

// Shift is a recurring weekly working window, given by (weekday, startHour,
// endHour). It spans midnight whenever endHour <= startHour (spec §3); the
// after-midnight tail is attributed to the following weekday.
type Shift struct {
	Weekday   time.Weekday
	StartHour int
	EndHour   int
}

// SpansMidnight reports whether the shift's working window crosses into the
// following calendar day.
func (s Shift) SpansMidnight() bool {
	return s.EndHour <= s.StartHour
}

func (s Shift) validate() error {
	if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 0 || s.EndHour > 23 {
		return fmt.Errorf("shift hours must be 0-23, got start=%d end=%d", s.StartHour, s.EndHour)
	}
	return nil
}

// MaintenanceWindow is a closed instant interval [Start, End] during which
// the work center produces nothing. Multi-day and overlapping windows are
// permitted; no merging is performed (spec §3).
type MaintenanceWindow struct {
	Start  time.Time
	End    time.Time
	Reason string
}

func (m MaintenanceWindow) validate() error {
	if m.End.Before(m.Start) {
		return fmt.Errorf("maintenance window end %s before start %s", m.End, m.Start)
	}
	return nil
}

// Contains reports whether t falls within the closed interval [Start, End].
// Maintenance windows use inclusive endpoints for the is_working check
// (spec §4.1) — this is deliberately asymmetric with the exclusive overlap
// check used for reason classification (spec §9).
func (m MaintenanceWindow) Contains(t time.Time) bool {
	return !t.Before(m.Start) && !t.After(m.End)
}

// WorkCenter is a resource that produces at most one order at a time, with
// a fixed recurring shift schedule and blackout windows (spec §3, GLOSSARY).
type WorkCenter struct {
	Name        string
	Shifts      []Shift
	Maintenance []MaintenanceWindow
}

// NewWorkCenter validates and constructs a work center. At least one shift
// must exist, otherwise the center is uninstantiable (spec §3, §7
// no_shifts).
func NewWorkCenter(name string, shifts []Shift, maintenance []MaintenanceWindow) (*WorkCenter, error) {
	if len(shifts) == 0 {
		return nil, reflowerr.New(reflowerr.KindNoShifts, "work center has zero shifts", name)
	}
	for _, s := range shifts {
		if err := s.validate(); err != nil {
			return nil, reflowerr.Wrap(reflowerr.KindInputInvalid, err, "invalid shift", name)
		}
	}
	for _, m := range maintenance {
		if err := m.validate(); err != nil {
			return nil, reflowerr.Wrap(reflowerr.KindInputInvalid, err, "invalid maintenance window", name)
		}
	}
	return &WorkCenter{Name: name, Shifts: shifts, Maintenance: maintenance}, nil
}
