// Package calendar implements C1, the working-time calendar primitives of
// spec §4.1: deciding whether an instant is working time, and translating
// "consume D working minutes starting at instant T" into a real-world end
// instant, honoring shift boundaries, maintenance blackouts, and shifts
// that span midnight.
package calendar

import (
	"time"

	"github.com/wbaizer/naologic-reflow/internal/domain"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
	"github.com/wbaizer/naologic-reflow/internal/logging"
)

// maxEndOfWorkIterations bounds end_of_work's minute-cursor traversal — an
// infinite-loop guard, not a wall-clock timeout (spec §5, §4.1).
const maxEndOfWorkIterations = 10_000

// maxNextWorkingHours bounds next_working's hourly search to 30 days
// (spec §4.1).
const maxNextWorkingHours = 30 * 24

// Calendar answers is_working/next_working/end_of_work for a single,
// fixed work center. It is pure — no mutation, safe for concurrent use by
// multiple callers scheduling different work centers (spec §5).
type Calendar struct {
	center     *domain.WorkCenter
	logger     logging.Logger
	shiftsByWD map[time.Weekday][]domain.Shift
}

// New builds a Calendar over the given work center's shifts and
// maintenance windows, precomputing a per-weekday shift index so shift
// membership lookups don't rescan the full shift list (spec §9 optimization
// note).
func New(center *domain.WorkCenter, logger logging.Logger) *Calendar {
	if logger == nil {
		logger = logging.Discard()
	}
	idx := make(map[time.Weekday][]domain.Shift)
	for _, s := range center.Shifts {
		idx[s.Weekday] = append(idx[s.Weekday], s)
	}
	return &Calendar{
		center:     center,
		logger:     logger.With("calendar"),
		shiftsByWD: idx,
	}
}

// IsWorking reports whether production is permitted at instant t: t must
// lie within some shift AND outside every maintenance window (spec §4.1).
// Maintenance windows use inclusive endpoints and block boundary instants.
func (c *Calendar) IsWorking(t time.Time) bool {
	if c.inMaintenance(t) {
		return false
	}
	return c.inShift(t)
}

// Maintenance returns the work center's maintenance windows, for callers
// that need to classify a displacement reason rather than just test
// is_working (spec §4.3.2).
func (c *Calendar) Maintenance() []domain.MaintenanceWindow {
	return c.center.Maintenance
}

func (c *Calendar) inMaintenance(t time.Time) bool {
	for _, w := range c.center.Maintenance {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// inShift implements the half-open minute comparison of spec §4.1: shifts
// on t's own weekday (pre-midnight part for spanning shifts), plus the
// after-midnight tail of spanning shifts whose weekday is the previous day.
func (c *Calendar) inShift(t time.Time) bool {
	weekday := t.Weekday()
	minuteOfDay := t.Hour()*60 + t.Minute()

	for _, s := range c.shiftsByWD[weekday] {
		if s.SpansMidnight() {
			if minuteOfDay >= s.StartHour*60 {
				return true
			}
		} else if minuteOfDay >= s.StartHour*60 && minuteOfDay < s.EndHour*60 {
			return true
		}
	}

	previousWeekday := (weekday + 6) % 7
	for _, s := range c.shiftsByWD[previousWeekday] {
		if s.SpansMidnight() && minuteOfDay < s.EndHour*60 {
			return true
		}
	}
	return false
}

// NextWorking returns the first instant of the form t + k hours (k >= 0)
// with IsWorking true. The search advances in one-hour steps and accepts the
// first working hour found, per the hour-level-granularity contract of spec
// §4.1, so an earlier working minute between two probes is not returned — it
// preserves t's own minute-of-hour offset rather than snapping to the top
// of the hour. Fails with no_working_time past a 30-day horizon.
func (c *Calendar) NextWorking(t time.Time) (time.Time, error) {
	if c.IsWorking(t) {
		return t, nil
	}
	cursor := t
	for i := 0; i < maxNextWorkingHours; i++ {
		cursor = cursor.Add(time.Hour)
		if c.IsWorking(cursor) {
			return cursor, nil
		}
	}
	c.logger.Warn("no working instant found", "from", t, "horizonHours", maxNextWorkingHours)
	return time.Time{}, reflowerr.New(reflowerr.KindNoWorkingTime,
		"no working instant within 30 days", c.center.Name)
}

// EndOfWork returns the instant at which the durationMinutes-th working
// minute completes, starting from start. Operationally: a cursor and a
// remainder counter, decrementing the remainder on every working minute
// and always advancing the cursor by one minute (spec §4.1). Bounded by
// maxEndOfWorkIterations as a safety ceiling against runaway traversal
// (e.g. a work center with no further working time at all).
func (c *Calendar) EndOfWork(start time.Time, durationMinutes int) (time.Time, error) {
	cursor := start
	remaining := durationMinutes
	iterations := 0

	for remaining > 0 {
		if iterations >= maxEndOfWorkIterations {
			c.logger.Warn("end_of_work exceeded safety cap", "start", start, "durationMinutes", durationMinutes)
			return time.Time{}, reflowerr.New(reflowerr.KindNoWorkingTime,
				"end_of_work exceeded 10000-minute safety cap", c.center.Name)
		}
		if c.IsWorking(cursor) {
			remaining--
		}
		cursor = cursor.Add(time.Minute)
		iterations++
	}
	return cursor, nil
}
