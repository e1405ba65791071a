// Package reflow implements C4, the per-work-center orchestrator of spec
// §4.3.3: it validates a work center's orders, places the fixed ones
// first, linearizes the full set, places the movable ones in that order,
// and assembles the result bundle.
package reflow

import (
	"github.com/wbaizer/naologic-reflow/internal/calendar"
	"github.com/wbaizer/naologic-reflow/internal/domain"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
	"github.com/wbaizer/naologic-reflow/internal/linearize"
	"github.com/wbaizer/naologic-reflow/internal/logging"
	"github.com/wbaizer/naologic-reflow/internal/placer"
)

// Invoke runs one engine invocation for a single work center over its
// orders (fixed and movable together; callers need not pre-split them).
func Invoke(center *domain.WorkCenter, orders []*domain.WorkOrder, logger logging.Logger) (*domain.Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("reflow")

	if err := validateOwnership(center, orders); err != nil {
		return nil, err
	}

	cal := calendar.New(center, logger)
	p := placer.New(cal, logger)

	placedByID := make(map[string]domain.PlacedOrder, len(orders))
	changesByID := make(map[string]*domain.ChangeRecord, len(orders))

	for _, o := range orders {
		if o.Fixed {
			placed, cr := p.PlaceFixed(o)
			placedByID[o.ID] = placed
			changesByID[o.ID] = cr
		}
	}

	linearized, err := linearize.Order(orders, logger)
	if err != nil {
		return nil, err
	}

	for _, o := range linearized {
		if o.Fixed {
			continue
		}
		placed, cr, err := p.PlaceMovable(o)
		if err != nil {
			return nil, err
		}
		placedByID[o.ID] = placed
		changesByID[o.ID] = cr
	}

	result := assemble(center.Name, orders, placedByID, changesByID)
	logger.Info("invocation complete",
		"workCenter", center.Name,
		"orders", len(orders),
		"changed", result.Summary.ChangedCount,
		"unchanged", result.Summary.UnchangedCount,
		"fixed", result.Summary.FixedCount,
	)
	return result, nil
}

// validateOwnership enforces that every order names this center, failing
// with foreign_order listing every offender (spec §4.3.3).
func validateOwnership(center *domain.WorkCenter, orders []*domain.WorkOrder) error {
	var offenders []string
	for _, o := range orders {
		if o.WorkCenterID != center.Name {
			offenders = append(offenders, o.ID)
		}
	}
	if len(offenders) > 0 {
		return reflowerr.New(reflowerr.KindForeignOrder, "order references a different work center", offenders...)
	}
	return nil
}

// assemble builds the result bundle in the input's original order, and
// computes the summary counts and supplemental busiest-order statistic.
func assemble(
	workCenterName string,
	orders []*domain.WorkOrder,
	placedByID map[string]domain.PlacedOrder,
	changesByID map[string]*domain.ChangeRecord,
) *domain.Result {
	scheduled := make([]domain.PlacedOrder, 0, len(orders))
	changes := make([]*domain.ChangeRecord, 0, len(orders))
	summary := domain.Summary{}

	for _, o := range orders {
		placed := placedByID[o.ID]
		cr := changesByID[o.ID]
		scheduled = append(scheduled, placed)
		changes = append(changes, cr)

		switch {
		case cr.Reason == domain.ReasonFixedMaintenance:
			summary.FixedCount++
		case cr.Reason == domain.ReasonNoChange:
			summary.UnchangedCount++
		default:
			summary.ChangedCount++
		}

		if cr.DisplacementMinutes > 0 {
			summary.TotalDisplacementMinutes += cr.DisplacementMinutes
			if cr.DisplacementMinutes > summary.BusiestDisplacement {
				summary.BusiestDisplacement = cr.DisplacementMinutes
				summary.BusiestOrderID = o.ID
			}
		}
	}

	return &domain.Result{
		WorkCenterName:  workCenterName,
		ScheduledOrders: scheduled,
		Changes:         changes,
		Summary:         summary,
	}
}
