package core

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/utils"
)

func scanAt(t *testing.T, p *Processor, employeeID, stamp string) (ScanOutcome, error) {
	t.Helper()
	at, err := time.ParseInLocation(model.TimestampLayout, stamp, utils.MadridTZ)
	require.NoError(t, err)
	return p.RecordScan(context.Background(), employeeID, &at, model.ViaQR)
}

func TestRecordScanDayCycle(t *testing.T) {
	fake := newFakeDayStore()
	p := NewProcessor(fake, SystemClock(), newFakeDirectory("100001"))
	key := store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14}

	outcome, err := scanAt(t, p, "100001", "2025-03-14 08:58:00")
	require.NoError(t, err)
	assert.Equal(t, ActionEntry, outcome.Action)
	assert.Equal(t, "entry recorded", outcome.Message)
	assert.Equal(t, "marzo", outcome.Month)
	assert.Equal(t, 14, outcome.Day)

	rec := fake.get(key)
	assert.Equal(t, "2025-03-14 08:58:00", rec.EntryTime)
	assert.Empty(t, rec.ExitTime)
	assert.Equal(t, string(model.ViaQR), rec.RegisteredVia)

	outcome, err = scanAt(t, p, "100001", "2025-03-14 17:02:00")
	require.NoError(t, err)
	assert.Equal(t, ActionExit, outcome.Action)
	assert.Equal(t, "exit recorded", outcome.Message)

	rec = fake.get(key)
	assert.Equal(t, "2025-03-14 08:58:00", rec.EntryTime)
	assert.Equal(t, "2025-03-14 17:02:00", rec.ExitTime)

	// A forgotten badge-out from yesterday shows up as a third scan.
	outcome, err = scanAt(t, p, "100001", "2025-03-14 17:10:00")
	require.NoError(t, err)
	assert.Equal(t, ActionNone, outcome.Action)
	assert.Equal(t, "already recorded", outcome.Message)

	rec = fake.get(key)
	assert.Equal(t, "2025-03-14 08:58:00", rec.EntryTime)
	assert.Equal(t, "2025-03-14 17:02:00", rec.ExitTime)
	assert.Equal(t, extraScanExplanation, rec.Explanation)
}

func TestRecordScanRepeatedExtraScans(t *testing.T) {
	fake := newFakeDayStore()
	p := NewProcessor(fake, SystemClock(), newFakeDirectory("100001"))

	for _, stamp := range []string{"2025-03-14 08:58:00", "2025-03-14 17:02:00", "2025-03-14 17:10:00", "2025-03-14 17:15:00"} {
		_, err := scanAt(t, p, "100001", stamp)
		require.NoError(t, err)
	}

	rec := fake.get(store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14})
	assert.Equal(t, extraScanExplanation+"\n"+extraScanExplanation, rec.Explanation)
}

func TestRecordScanUnknownEmployee(t *testing.T) {
	p := NewProcessor(newFakeDayStore(), SystemClock(), newFakeDirectory("100001"))

	_, err := scanAt(t, p, "999999", "2025-03-14 08:58:00")
	assert.ErrorIs(t, err, ErrUnknownEmployee)
}

func TestRecordScanDefaultsToClock(t *testing.T) {
	fake := newFakeDayStore()
	now := time.Date(2025, time.November, 3, 9, 12, 30, 0, utils.MadridTZ)
	p := NewProcessor(fake, fixedClock{at: now}, newFakeDirectory("100001"))

	outcome, err := p.RecordScan(context.Background(), "100001", nil, model.ViaManual)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-03 09:12:30", outcome.Timestamp)
	assert.Equal(t, "noviembre", outcome.Month)

	rec := fake.get(store.DayKey{EmployeeID: "100001", Year: 2025, Month: "noviembre", Day: 3})
	assert.Equal(t, string(model.ViaManual), rec.RegisteredVia)
}

func TestRecordScanRetriesContention(t *testing.T) {
	fake := newFakeDayStore()
	fake.contendNext = 2
	p := NewProcessor(fake, SystemClock(), newFakeDirectory("100001"))

	outcome, err := scanAt(t, p, "100001", "2025-03-14 08:58:00")
	require.NoError(t, err)
	assert.Equal(t, ActionEntry, outcome.Action)
}

func TestRecordScanGivesUpAfterMaxAttempts(t *testing.T) {
	fake := newFakeDayStore()
	fake.contendNext = maxScanAttempts
	p := NewProcessor(fake, SystemClock(), newFakeDirectory("100001"))

	_, err := scanAt(t, p, "100001", "2025-03-14 08:58:00")
	assert.ErrorIs(t, err, ErrContention)
	assert.Equal(t, 0, fake.count())
}

func TestRecordScanStoreUnavailable(t *testing.T) {
	fake := newFakeDayStore()
	fake.failWith = store.ErrUnavailable
	p := NewProcessor(fake, SystemClock(), newFakeDirectory("100001"))

	_, err := scanAt(t, p, "100001", "2025-03-14 08:58:00")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestRecordScanTimeout(t *testing.T) {
	p := NewProcessor(newFakeDayStore(), SystemClock(), newFakeDirectory("100001"))

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	at := time.Date(2025, time.March, 14, 8, 58, 0, 0, utils.MadridTZ)
	_, err := p.RecordScan(ctx, "100001", &at, model.ViaQR)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRecordScanMalformedRecordTreatedClosed(t *testing.T) {
	fake := newFakeDayStore()
	fake.put(model.DayRecord{
		EmployeeID: "100001",
		Year:       2025,
		Month:      "marzo",
		Day:        14,
		ExitTime:   "2025-03-14 17:00:00",
	})
	p := NewProcessor(fake, SystemClock(), newFakeDirectory("100001"))

	outcome, err := scanAt(t, p, "100001", "2025-03-14 18:00:00")
	require.NoError(t, err)
	assert.Equal(t, ActionNone, outcome.Action)

	rec := fake.get(store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14})
	assert.Empty(t, rec.EntryTime)
	assert.Equal(t, "2025-03-14 17:00:00", rec.ExitTime)
	assert.Equal(t, extraScanExplanation, rec.Explanation)
}

func TestRecordScanConcurrent(t *testing.T) {
	fake := newFakeDayStore()
	p := NewProcessor(fake, SystemClock(), newFakeDirectory("100001"))

	const scans = 8
	var wg sync.WaitGroup
	errs := make([]error, scans)
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			at := time.Date(2025, time.March, 14, 9, i, 0, 0, utils.MadridTZ)
			_, errs[i] = p.RecordScan(context.Background(), "100001", &at, model.ViaQR)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, fmt.Sprintf("scan %d", i))
	}

	// Exactly one entry and one exit survive no matter the interleaving.
	rec := fake.get(store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14})
	assert.NotEmpty(t, rec.EntryTime)
	assert.NotEmpty(t, rec.ExitTime)
	assert.Equal(t, model.StateClosed, rec.State())
	assert.Equal(t, 1, fake.count())
}
