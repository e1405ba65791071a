package domain

import (
	"time"

	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
)

// WorkOrder is a unit of production work with a target start, target end,
// working-minute duration, set of predecessor orders, and a fixed/movable
// flag (spec §3, GLOSSARY).
type WorkOrder struct {
	ID              string
	WorkCenterID    string
	OriginalStart   time.Time
	OriginalEnd     time.Time
	DurationMinutes int
	Fixed           bool // true for maintenance-class orders
	Predecessors    []string
}

// NewWorkOrder validates and constructs a work order. end >= start in the
// input and duration > 0 are required invariants (spec §3); violations are
// input_invalid, fatal to the invocation (spec §7).
func NewWorkOrder(
	id, workCenterID string,
	start, end time.Time,
	durationMinutes int,
	fixed bool,
	predecessors []string,
) (*WorkOrder, error) {
	if id == "" {
		return nil, reflowerr.New(reflowerr.KindInputInvalid, "work order ID must not be empty")
	}
	if end.Before(start) {
		return nil, reflowerr.New(reflowerr.KindInputInvalid, "end before start in input", id)
	}
	if durationMinutes <= 0 {
		return nil, reflowerr.New(reflowerr.KindInputInvalid, "duration must be positive", id)
	}
	return &WorkOrder{
		ID:              id,
		WorkCenterID:    workCenterID,
		OriginalStart:   start,
		OriginalEnd:     end,
		DurationMinutes: durationMinutes,
		Fixed:           fixed,
		Predecessors:    predecessors,
	}, nil
}

// Duration returns the order's working-minute duration as a time.Duration,
// for convenience in calendar arithmetic.
func (w *WorkOrder) Duration() time.Duration {
	return time.Duration(w.DurationMinutes) * time.Minute
}
