package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reason tags why an order's schedule moved (or didn't). Exposed as a sum
// type so new reason kinds are caught at review time via exhaustive
// switches, rather than the teacher's original loosely-typed discriminated
// record (spec §9).
type Reason string

const (
	ReasonNoChange          Reason = "no_change"
	ReasonFixedMaintenance  Reason = "fixed_maintenance"
	ReasonPredecessor       Reason = "predecessor"
	ReasonCenterBusy        Reason = "center_busy"
	ReasonMaintenanceWindow Reason = "maintenance_window"
)

// ChangeRecord captures one order's displacement: its original and new
// interval, the signed displacement, the tagged reason, and a payload
// identifying whatever caused the displacement (spec §3).
type ChangeRecord struct {
	ID                  string
	OrderID             string
	OriginalStart       time.Time
	OriginalEnd         time.Time
	NewStart            time.Time
	NewEnd              time.Time
	DisplacementMinutes int
	Reason              Reason
	// PredecessorID is set when Reason == ReasonPredecessor.
	PredecessorID string
	// BlockingOrderID is set when Reason == ReasonCenterBusy.
	BlockingOrderID string
	// MaintenanceWindow is set when Reason == ReasonMaintenanceWindow.
	MaintenanceWindow *MaintenanceWindow
	Explanation       string
}

// NewChangeRecord stamps a fresh change record with a trace ID and a
// formatted explanation derived from the reason.
func NewChangeRecord(order *WorkOrder, newStart, newEnd time.Time, reason Reason) *ChangeRecord {
	cr := &ChangeRecord{
		ID:                  uuid.New().String(),
		OrderID:             order.ID,
		OriginalStart:       order.OriginalStart,
		OriginalEnd:         order.OriginalEnd,
		NewStart:            newStart,
		NewEnd:              newEnd,
		DisplacementMinutes: int(newStart.Sub(order.OriginalStart).Minutes()),
		Reason:              reason,
	}
	cr.Explanation = cr.Explain()
	return cr
}

// Explain renders the human-readable explanation string for the record's
// tag and payload. This is purely a formatting concern (spec §4.3.2) — only
// Reason and the payload fields are behavioral.
func (c *ChangeRecord) Explain() string {
	switch c.Reason {
	case ReasonNoChange:
		return fmt.Sprintf("%s: schedule unchanged", c.OrderID)
	case ReasonFixedMaintenance:
		return fmt.Sprintf("%s: maintenance order, not moved", c.OrderID)
	case ReasonPredecessor:
		return fmt.Sprintf("%s: displaced by predecessor %s ending after original start", c.OrderID, c.PredecessorID)
	case ReasonCenterBusy:
		return fmt.Sprintf("%s: displaced, work center busy with %s", c.OrderID, c.BlockingOrderID)
	case ReasonMaintenanceWindow:
		if c.MaintenanceWindow != nil {
			return fmt.Sprintf("%s: displaced by maintenance window %s-%s", c.OrderID,
				c.MaintenanceWindow.Start.Format(time.RFC3339), c.MaintenanceWindow.End.Format(time.RFC3339))
		}
		return fmt.Sprintf("%s: displaced by maintenance window", c.OrderID)
	default:
		return fmt.Sprintf("%s: %s", c.OrderID, c.Reason)
	}
}
