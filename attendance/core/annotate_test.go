package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
)

func TestAnnotate(t *testing.T) {
	fake := newFakeDayStore()
	fake.put(model.DayRecord{
		EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14,
		EntryTime: "2025-03-14 08:58:00", ExitTime: "2025-03-14 17:02:00",
	})
	a := NewAnnotator(fake, newFakeDirectory("100001"))
	key := store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14}

	require.NoError(t, a.Annotate(context.Background(), key, "Visita médica", "Justificante aportado"))

	rec := fake.get(key)
	assert.Equal(t, "Visita médica", rec.Explanation)
	assert.Equal(t, "Justificante aportado", rec.Observation)
	// Scan data stays put.
	assert.Equal(t, "2025-03-14 08:58:00", rec.EntryTime)
	assert.Equal(t, "2025-03-14 17:02:00", rec.ExitTime)
}

func TestAnnotateCreatesMissingRecord(t *testing.T) {
	fake := newFakeDayStore()
	a := NewAnnotator(fake, newFakeDirectory("100001"))
	key := store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14}

	require.NoError(t, a.Annotate(context.Background(), key, "Baja", ""))

	rec := fake.get(key)
	assert.Equal(t, "Baja", rec.Explanation)
	assert.Equal(t, model.StateEmpty, rec.State())
}

func TestAnnotateUnknownEmployee(t *testing.T) {
	a := NewAnnotator(newFakeDayStore(), newFakeDirectory("100001"))
	key := store.DayKey{EmployeeID: "999999", Year: 2025, Month: "marzo", Day: 14}

	err := a.Annotate(context.Background(), key, "x", "")
	assert.ErrorIs(t, err, ErrUnknownEmployee)
}

func TestAnnotateStoreDown(t *testing.T) {
	fake := newFakeDayStore()
	fake.failWith = store.ErrUnavailable
	a := NewAnnotator(fake, newFakeDirectory("100001"))
	key := store.DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 14}

	err := a.Annotate(context.Background(), key, "x", "")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
