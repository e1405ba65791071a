package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
)

func TestNewWorkCenter_RequiresAtLeastOneShift(t *testing.T) {
	_, err := NewWorkCenter("A", nil, nil)
	require.Error(t, err)
	assert.True(t, reflowerr.Is(err, reflowerr.KindNoShifts))
}

func TestNewWorkCenter_RejectsBadShiftHours(t *testing.T) {
	_, err := NewWorkCenter("A", []Shift{{Weekday: time.Monday, StartHour: 8, EndHour: 24}}, nil)
	require.Error(t, err)
	assert.True(t, reflowerr.Is(err, reflowerr.KindInputInvalid))
}

func TestShift_SpansMidnight(t *testing.T) {
	tests := []struct {
		name   string
		shift  Shift
		expect bool
	}{
		{"normal day shift", Shift{StartHour: 8, EndHour: 17}, false},
		{"end equals start", Shift{StartHour: 22, EndHour: 22}, true},
		{"spans midnight", Shift{StartHour: 22, EndHour: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.shift.SpansMidnight())
		})
	}
}

func TestMaintenanceWindow_ContainsInclusive(t *testing.T) {
	start := time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 14, 13, 0, 0, 0, time.UTC)
	w := MaintenanceWindow{Start: start, End: end}

	assert.True(t, w.Contains(start))
	assert.True(t, w.Contains(end))
	assert.True(t, w.Contains(start.Add(90*time.Minute)))
	assert.False(t, w.Contains(start.Add(-time.Minute)))
	assert.False(t, w.Contains(end.Add(time.Minute)))
}

func TestNewWorkOrder_RejectsEndBeforeStart(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err := NewWorkOrder("001", "A", start, end, 60, false, nil)
	require.Error(t, err)
	assert.True(t, reflowerr.Is(err, reflowerr.KindInputInvalid))
}

func TestNewWorkOrder_RejectsNonPositiveDuration(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	_, err := NewWorkOrder("001", "A", start, start, 0, false, nil)
	require.Error(t, err)
	assert.True(t, reflowerr.Is(err, reflowerr.KindInputInvalid))
}

func TestChangeRecord_ExplainByReason(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	order, err := NewWorkOrder("001", "A", start, start.Add(3*time.Hour), 180, false, nil)
	require.NoError(t, err)

	cr := NewChangeRecord(order, start, start.Add(3*time.Hour), ReasonNoChange)
	assert.Contains(t, cr.Explain(), "unchanged")

	cr.Reason = ReasonPredecessor
	cr.PredecessorID = "000"
	assert.Contains(t, cr.Explain(), "000")

	cr.Reason = ReasonCenterBusy
	cr.BlockingOrderID = "005"
	assert.Contains(t, cr.Explain(), "005")

	window := &MaintenanceWindow{Start: start, End: start.Add(time.Hour)}
	cr.Reason = ReasonMaintenanceWindow
	cr.MaintenanceWindow = window
	assert.Contains(t, cr.Explain(), start.Format(time.RFC3339))
}
