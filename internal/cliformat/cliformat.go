// Package cliformat renders a domain.Result as human-readable text for the
// CLI entrypoint. Report formatting is explicitly out of the engine's own
// scope (spec §1); this package only reads domain.Result, never the other
// way around.
package cliformat

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/wbaizer/naologic-reflow/internal/domain"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	headerColor  = color.New(color.FgMagenta, color.Bold)
	dimColor     = color.New(color.FgBlack, color.Bold)
)

// WriteSummary renders a one-page summary of the invocation result.
// When pretty is false, it sets color.NoColor so the summary is plain,
// scriptable text on stdout (spec §6).
func WriteSummary(w io.Writer, result *domain.Result, pretty bool) {
	if !pretty {
		color.NoColor = true
	}

	headerColor.Fprintf(w, "Work center: %s\n", result.WorkCenterName)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	successColor.Fprintf(w, "unchanged: %d\n", result.Summary.UnchangedCount)
	warnColor.Fprintf(w, "changed:   %d\n", result.Summary.ChangedCount)
	dimColor.Fprintf(w, "fixed:     %d\n", result.Summary.FixedCount)
	fmt.Fprintf(w, "total displacement: %d minutes\n", result.Summary.TotalDisplacementMinutes)
	if result.Summary.BusiestOrderID != "" {
		fmt.Fprintf(w, "busiest order: %s (+%d minutes)\n", result.Summary.BusiestOrderID, result.Summary.BusiestDisplacement)
	}

	fmt.Fprintln(w)
	for _, cr := range result.Changes {
		writeChangeLine(w, cr)
	}
}

func writeChangeLine(w io.Writer, cr *domain.ChangeRecord) {
	switch cr.Reason {
	case domain.ReasonNoChange:
		successColor.Fprintf(w, "  %-12s %s\n", cr.OrderID, cr.Explain())
	case domain.ReasonFixedMaintenance:
		dimColor.Fprintf(w, "  %-12s %s\n", cr.OrderID, cr.Explain())
	default:
		warnColor.Fprintf(w, "  %-12s %s -> %s (+%dm)\n", cr.OrderID, cr.Explain(),
			cr.NewStart.Format(time.RFC3339), cr.DisplacementMinutes)
	}
}
