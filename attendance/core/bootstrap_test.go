package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
)

func TestEnsureYearStructure(t *testing.T) {
	fake := newFakeDayStore()
	in := NewInitializer(fake)

	require.NoError(t, in.EnsureYearStructure(context.Background(), "100001", 2025))
	assert.Equal(t, 365, fake.count())

	// Month boundaries come out right.
	assert.NotNil(t, fake.records[store.DayKey{EmployeeID: "100001", Year: 2025, Month: "febrero", Day: 28}])
	assert.Nil(t, fake.records[store.DayKey{EmployeeID: "100001", Year: 2025, Month: "febrero", Day: 29}])
	assert.NotNil(t, fake.records[store.DayKey{EmployeeID: "100001", Year: 2025, Month: "diciembre", Day: 31}])
}

func TestEnsureYearStructureLeapYear(t *testing.T) {
	fake := newFakeDayStore()
	in := NewInitializer(fake)

	require.NoError(t, in.EnsureYearStructure(context.Background(), "100001", 2024))
	assert.Equal(t, 366, fake.count())
	assert.NotNil(t, fake.records[store.DayKey{EmployeeID: "100001", Year: 2024, Month: "febrero", Day: 29}])
}

func TestEnsureYearStructureIdempotent(t *testing.T) {
	fake := newFakeDayStore()
	in := NewInitializer(fake)
	ctx := context.Background()

	require.NoError(t, in.EnsureYearStructure(ctx, "100001", 2025))

	// Scan data written between calls must survive a re-run.
	fake.put(model.DayRecord{
		EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14,
		EntryTime: "2025-03-14 08:58:00",
	})
	require.NoError(t, in.EnsureYearStructure(ctx, "100001", 2025))

	assert.Equal(t, 365, fake.count())
	rec := fake.get(store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14})
	assert.Equal(t, "2025-03-14 08:58:00", rec.EntryTime)
}

func TestEnsureYearStructureInvalidYear(t *testing.T) {
	in := NewInitializer(newFakeDayStore())

	assert.Error(t, in.EnsureYearStructure(context.Background(), "100001", 99))
	assert.Error(t, in.EnsureYearStructure(context.Background(), "100001", 10000))
}

func TestEnsureYearStructureConcurrent(t *testing.T) {
	fake := newFakeDayStore()
	in := NewInitializer(fake)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = in.EnsureYearStructure(context.Background(), "100001", 2025)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 365, fake.count())
}

func TestEnsureYearStructureStoreDown(t *testing.T) {
	fake := newFakeDayStore()
	fake.failWith = store.ErrUnavailable

	err := NewInitializer(fake).EnsureYearStructure(context.Background(), "100001", 2025)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
