package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbaizer/naologic-reflow/internal/domain"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
)

func mustCenter(t *testing.T, name string, shifts []domain.Shift, maintenance []domain.MaintenanceWindow) *domain.WorkCenter {
	t.Helper()
	c, err := domain.NewWorkCenter(name, shifts, maintenance)
	require.NoError(t, err)
	return c
}

func TestIsWorking_BasicShift(t *testing.T) {
	center := mustCenter(t, "A", []domain.Shift{{Weekday: time.Monday, StartHour: 8, EndHour: 17}}, nil)
	cal := New(center, nil)

	mon := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC) // a Monday
	assert.False(t, cal.IsWorking(mon.Add(7*time.Hour+59*time.Minute)))
	assert.True(t, cal.IsWorking(mon.Add(8*time.Hour)))
	assert.True(t, cal.IsWorking(mon.Add(16*time.Hour+59*time.Minute)))
	assert.False(t, cal.IsWorking(mon.Add(17*time.Hour)))
}

func TestIsWorking_MidnightSpanningShift(t *testing.T) {
	center := mustCenter(t, "A", []domain.Shift{{Weekday: time.Monday, StartHour: 22, EndHour: 6}}, nil)
	cal := New(center, nil)

	mon := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	// pre-midnight part, on Monday.
	assert.True(t, cal.IsWorking(mon.Add(22*time.Hour)))
	assert.True(t, cal.IsWorking(mon.Add(23*time.Hour+59*time.Minute)))
	// post-midnight tail, attributed to Tuesday.
	tue := mon.Add(24 * time.Hour)
	assert.True(t, cal.IsWorking(tue))
	assert.True(t, cal.IsWorking(tue.Add(5*time.Hour+59*time.Minute)))
	assert.False(t, cal.IsWorking(tue.Add(6*time.Hour)))
	// Tuesday itself has no shift of its own beyond the inherited tail.
	assert.False(t, cal.IsWorking(tue.Add(12 * time.Hour)))
}

func TestIsWorking_MaintenanceBlocksInclusive(t *testing.T) {
	shift := domain.Shift{Weekday: time.Wednesday, StartHour: 6, EndHour: 22}
	start := time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC) // a Wednesday
	end := time.Date(2026, 1, 14, 13, 0, 0, 0, time.UTC)
	center := mustCenter(t, "B", []domain.Shift{shift}, []domain.MaintenanceWindow{{Start: start, End: end}})
	cal := New(center, nil)

	assert.False(t, cal.IsWorking(start))
	assert.False(t, cal.IsWorking(end))
	assert.False(t, cal.IsWorking(start.Add(90*time.Minute)))
	assert.True(t, cal.IsWorking(start.Add(-time.Minute)))
	assert.True(t, cal.IsWorking(end.Add(time.Minute)))
}

func TestNextWorking_SkipsToFollowingShift(t *testing.T) {
	center := mustCenter(t, "A", []domain.Shift{{Weekday: time.Monday, StartHour: 8, EndHour: 17}}, nil)
	cal := New(center, nil)

	mon := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	result, err := cal.NextWorking(mon.Add(18 * time.Hour))
	require.NoError(t, err)
	assert.True(t, cal.IsWorking(result))
	assert.True(t, result.After(mon.Add(18 * time.Hour)))
}

func TestNextWorking_SucceedsWhenNextOccurrenceWithinHorizon(t *testing.T) {
	center := mustCenter(t, "A", []domain.Shift{{Weekday: time.Monday, StartHour: 8, EndHour: 9}}, nil)
	cal := New(center, nil)
	mon := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

	_, err := cal.NextWorking(mon)
	require.NoError(t, err) // next Monday exists within 30 days
}

func TestEndOfWork_FailsWhenMaintenanceBlocksEveryOccurrenceWithinCap(t *testing.T) {
	// A single 60-minute weekly shift, with a maintenance window blanketing
	// its very next occurrence. Reaching the second occurrence means
	// traversing a full week (10,080 minutes) of mostly-non-working cursor
	// advances, well past the 10,000-minute safety cap with room to spare -
	// deliberately not a razor-thin margin, since there is no test runner
	// here to catch an off-by-one.
	shift := domain.Shift{Weekday: time.Monday, StartHour: 8, EndHour: 9}
	blockedStart := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC) // the first Monday occurrence
	blockedEnd := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	center := mustCenter(t, "G", []domain.Shift{shift}, []domain.MaintenanceWindow{{Start: blockedStart, End: blockedEnd}})
	cal := New(center, nil)

	start := time.Date(2026, 2, 2, 7, 0, 0, 0, time.UTC)
	_, err := cal.EndOfWork(start, 120) // the week's only shift yields at most 60 working minutes
	require.Error(t, err)
	assert.True(t, reflowerr.Is(err, reflowerr.KindNoWorkingTime))
}

func TestEndOfWork_LunchBreakPause(t *testing.T) {
	center := mustCenter(t, "D", []domain.Shift{
		{Weekday: time.Thursday, StartHour: 8, EndHour: 12},
		{Weekday: time.Thursday, StartHour: 13, EndHour: 17},
	}, nil)
	cal := New(center, nil)

	start := time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC) // a Thursday
	end, err := cal.EndOfWork(start, 180)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC), end)
}

func TestEndOfWork_WeekendSpanning(t *testing.T) {
	center := mustCenter(t, "F", []domain.Shift{
		{Weekday: time.Friday, StartHour: 8, EndHour: 17},
		{Weekday: time.Monday, StartHour: 8, EndHour: 17},
	}, nil)
	cal := New(center, nil)

	start := time.Date(2026, 1, 16, 16, 0, 0, 0, time.UTC) // a Friday
	end, err := cal.EndOfWork(start, 480)
	require.NoError(t, err)
	// 1h Friday (16:00-17:00) + 7h Monday (08:00-15:00), per the literal
	// minute-cursor algorithm of spec §4.1 (see DESIGN.md on scenario 6).
	assert.Equal(t, time.Date(2026, 1, 19, 15, 0, 0, 0, time.UTC), end)
}

func TestEndOfWork_MaintenanceWindowDisplacesCompletion(t *testing.T) {
	shifts := []domain.Shift{
		{Weekday: time.Wednesday, StartHour: 6, EndHour: 14},
		{Weekday: time.Wednesday, StartHour: 14, EndHour: 22},
	}
	winStart := time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC)
	winEnd := time.Date(2026, 1, 14, 13, 0, 0, 0, time.UTC)
	center := mustCenter(t, "B", shifts, []domain.MaintenanceWindow{{Start: winStart, End: winEnd}})
	cal := New(center, nil)

	start := time.Date(2026, 1, 14, 8, 0, 0, 0, time.UTC)
	end, err := cal.EndOfWork(start, 240)
	require.NoError(t, err)
	// inclusive maintenance endpoint blocks the window's final minute, so
	// working time resumes at 13:01, not 13:00 (spec §9 asymmetry); 2 working
	// hours (08:00-10:00) plus 2 more from 13:01 lands the 240th minute at 15:01.
	assert.Equal(t, time.Date(2026, 1, 14, 15, 1, 0, 0, time.UTC), end)
}
