package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atiempo.app/atiempo/attendance/model"
)

func day(day int, entry, exit string) model.DayRecord {
	return model.DayRecord{
		EmployeeID: "100001", Year: 2025, Month: "noviembre", Day: day,
		EntryTime: entry, ExitTime: exit,
	}
}

func TestRecomputeMonth(t *testing.T) {
	fake := newFakeDayStore()
	// November 2025 starts on a Saturday: 20 working days, 4 Fridays.
	fake.put(day(3, "2025-11-03 08:58:00", "2025-11-03 17:02:00"))
	fake.put(day(4, "2025-11-04 09:00:00", "2025-11-04 17:00:00")) // late
	fake.put(day(5, "2025-11-05 08:45:00", ""))                   // never badged out
	fake.put(day(7, "2025-11-07 08:55:00", "2025-11-07 13:55:00")) // Friday
	fake.put(day(8, "2025-11-08 10:00:00", "2025-11-08 14:00:00")) // Saturday, ignored

	a := NewAggregator(fake, DefaultWorkdayRules())
	summary, err := a.Recompute(context.Background(), "100001", 2025, "noviembre")
	require.NoError(t, err)

	assert.Equal(t, 20, summary.DaysExpected)
	assert.Equal(t, 4, summary.DaysWorked)
	assert.Equal(t, 16, summary.DaysAbsent)
	assert.Equal(t, 1, summary.LateCount)
	assert.Equal(t, 148.0, summary.HoursExpected)
	assert.Equal(t, 21.1, summary.HoursWorked)
	assert.Equal(t, 20.0, summary.AttendancePct)
	assert.Equal(t, 75.0, summary.PunctualityPct)
}

func TestRecomputeEmptyMonth(t *testing.T) {
	a := NewAggregator(newFakeDayStore(), DefaultWorkdayRules())

	summary, err := a.Recompute(context.Background(), "100001", 2025, "noviembre")
	require.NoError(t, err)

	assert.Equal(t, 20, summary.DaysExpected)
	assert.Equal(t, 0, summary.DaysWorked)
	assert.Equal(t, 20, summary.DaysAbsent)
	assert.Equal(t, 0.0, summary.AttendancePct)
	// No worked days must not divide by zero.
	assert.Equal(t, 0.0, summary.PunctualityPct)
}

func TestRecomputeClampsNegativeDuration(t *testing.T) {
	fake := newFakeDayStore()
	fake.put(day(3, "2025-11-03 17:00:00", "2025-11-03 09:00:00"))

	a := NewAggregator(fake, DefaultWorkdayRules())
	summary, err := a.Recompute(context.Background(), "100001", 2025, "noviembre")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DaysWorked)
	assert.Equal(t, 0.0, summary.HoursWorked)
}

func TestRecomputeUnknownMonth(t *testing.T) {
	a := NewAggregator(newFakeDayStore(), DefaultWorkdayRules())

	_, err := a.Recompute(context.Background(), "100001", 2025, "november")
	assert.Error(t, err)
}

func TestRecomputeEdgeOfLateness(t *testing.T) {
	fake := newFakeDayStore()
	fake.put(day(3, "2025-11-03 08:59:59", "2025-11-03 17:00:00"))
	fake.put(day(4, "2025-11-04 09:00:00", "2025-11-04 17:00:00"))

	a := NewAggregator(fake, DefaultWorkdayRules())
	summary, err := a.Recompute(context.Background(), "100001", 2025, "noviembre")
	require.NoError(t, err)

	// 09:00:00 sharp is already late, 08:59:59 is not.
	assert.Equal(t, 1, summary.LateCount)
}
