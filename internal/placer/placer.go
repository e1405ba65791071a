// Package placer implements C3, the conflict-driven placer of spec §4.3:
// given a linearized list of work orders, it assigns each the earliest
// feasible start honoring predecessor completion, work-center exclusivity,
// and the working-time calendar, tagging every displacement with a reason.
package placer

import (
	"time"

	"github.com/wbaizer/naologic-reflow/internal/calendar"
	"github.com/wbaizer/naologic-reflow/internal/domain"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
	"github.com/wbaizer/naologic-reflow/internal/logging"
)

// Placer tracks the orders already placed in this invocation (by linearization
// order) so later orders can probe exclusivity against them.
type Placer struct {
	cal     *calendar.Calendar
	logger  logging.Logger
	placed  []domain.PlacedOrder
	endByID map[string]time.Time
}

// New builds a Placer over a single work center's calendar.
func New(cal *calendar.Calendar, logger logging.Logger) *Placer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Placer{
		cal:     cal,
		logger:  logger.With("placer"),
		endByID: make(map[string]time.Time),
	}
}

// PlaceFixed records a fixed (maintenance-class) order unchanged at its
// original interval. It participates in exclusivity and predecessor
// satisfaction exactly like a movable order (spec §4.3).
func (p *Placer) PlaceFixed(order *domain.WorkOrder) (domain.PlacedOrder, *domain.ChangeRecord) {
	placed := domain.PlacedOrder{WorkOrder: *order, NewStart: order.OriginalStart, NewEnd: order.OriginalEnd}
	p.placed = append(p.placed, placed)
	p.endByID[order.ID] = order.OriginalEnd

	cr := domain.NewChangeRecord(order, order.OriginalStart, order.OriginalEnd, domain.ReasonFixedMaintenance)
	return placed, cr
}

// PlaceMovable applies §4.3.1's earliest-feasible-placement algorithm to a
// single movable order, then classifies the displacement per §4.3.2.
func (p *Placer) PlaceMovable(order *domain.WorkOrder) (domain.PlacedOrder, *domain.ChangeRecord, error) {
	floorFromPreds, latestPredID, err := p.floorFromPredecessors(order)
	if err != nil {
		return domain.PlacedOrder{}, nil, err
	}

	// Loop steps 2-4 of §4.3.1 to re-verify exclusivity after the
	// snap-to-working step, per the spec's own recommendation over the
	// source's looser one-shot behavior (see DESIGN.md).
	floor := floorFromPreds
	var newStart, newEnd time.Time
	for {
		floor, _, err = p.floorFromExclusivity(floor, order.DurationMinutes)
		if err != nil {
			return domain.PlacedOrder{}, nil, err
		}

		newStart, err = p.cal.NextWorking(floor)
		if err != nil {
			return domain.PlacedOrder{}, nil, err
		}
		newEnd, err = p.cal.EndOfWork(newStart, order.DurationMinutes)
		if err != nil {
			return domain.PlacedOrder{}, nil, err
		}
		if newStart.Equal(floor) {
			break
		}
		// the snap moved the floor; re-probe exclusivity from the new floor.
		floor = newStart
	}

	placed := domain.PlacedOrder{WorkOrder: *order, NewStart: newStart, NewEnd: newEnd}
	p.placed = append(p.placed, placed)
	p.endByID[order.ID] = newEnd

	reason, payload := p.classify(order, newStart, newEnd, latestPredID)
	cr := domain.NewChangeRecord(order, newStart, newEnd, reason)
	applyPayload(cr, reason, payload)

	return placed, cr, nil
}

// floorFromPredecessors implements §4.3.1 step 1: the order cannot start
// before the latest scheduled end among its predecessors.
func (p *Placer) floorFromPredecessors(order *domain.WorkOrder) (time.Time, string, error) {
	floor := order.OriginalStart
	latestPredID := ""
	for _, predID := range order.Predecessors {
		end, ok := p.endByID[predID]
		if !ok {
			return time.Time{}, "", reflowerr.New(reflowerr.KindInternal,
				"predecessor not yet placed; linearizer invariant violated", order.ID, predID)
		}
		if end.After(floor) {
			floor = end
			latestPredID = predID
		}
	}
	return floor, latestPredID, nil
}

// floorFromExclusivity implements §4.3.1 step 2: repeatedly push the floor
// past any already-placed order whose tentative occupancy overlaps it, using
// the open-ended-right overlap test (Fc < Q.end && E > Q.start).
func (p *Placer) floorFromExclusivity(floor time.Time, durationMinutes int) (time.Time, string, error) {
	blockingID := ""
	for {
		end, err := p.cal.EndOfWork(floor, durationMinutes)
		if err != nil {
			return time.Time{}, "", err
		}
		advanced := false
		for _, q := range p.placed {
			if floor.Before(q.NewEnd) && end.After(q.NewStart) {
				floor = q.NewEnd
				blockingID = q.ID
				advanced = true
				break
			}
		}
		if !advanced {
			return floor, blockingID, nil
		}
	}
}

// classify implements §4.3.2's reason-priority ladder.
func (p *Placer) classify(order *domain.WorkOrder, newStart, newEnd time.Time, latestPredID string) (domain.Reason, any) {
	if newStart.Equal(order.OriginalStart) && newEnd.Equal(order.OriginalEnd) {
		return domain.ReasonNoChange, nil
	}
	if latestPredID != "" && p.endByID[latestPredID].After(order.OriginalStart) {
		return domain.ReasonPredecessor, latestPredID
	}
	if overlapper := p.overlapsAnyPlaced(order); overlapper != "" {
		return domain.ReasonCenterBusy, overlapper
	}
	if window := p.overlapsMaintenance(order); window != nil {
		return domain.ReasonMaintenanceWindow, window
	}
	return domain.ReasonNoChange, nil
}

// overlapsAnyPlaced tests the order's original interval against every
// already-placed order's scheduled interval, excluding itself.
func (p *Placer) overlapsAnyPlaced(order *domain.WorkOrder) string {
	for _, q := range p.placed {
		if q.ID == order.ID {
			continue
		}
		if order.OriginalStart.Before(q.NewEnd) && q.NewStart.Before(order.OriginalEnd) {
			return q.ID
		}
	}
	return ""
}

// overlapsMaintenance tests the order's original interval against the
// center's maintenance windows using an exclusive overlap check — the
// deliberate asymmetry with is_working's inclusive-endpoint rule (spec §9).
func (p *Placer) overlapsMaintenance(order *domain.WorkOrder) *domain.MaintenanceWindow {
	for _, w := range p.cal.Maintenance() {
		if order.OriginalStart.Before(w.End) && w.Start.Before(order.OriginalEnd) {
			return &w
		}
	}
	return nil
}

func applyPayload(cr *domain.ChangeRecord, reason domain.Reason, payload any) {
	switch reason {
	case domain.ReasonPredecessor:
		cr.PredecessorID = payload.(string)
	case domain.ReasonCenterBusy:
		cr.BlockingOrderID = payload.(string)
	case domain.ReasonMaintenanceWindow:
		cr.MaintenanceWindow = payload.(*domain.MaintenanceWindow)
	}
	cr.Explanation = cr.Explain()
}
