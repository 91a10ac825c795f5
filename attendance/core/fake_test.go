package core

import (
	"context"
	"sync"
	"time"

	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
)

// fakeDayStore is an in-memory DayStore with injectable failures. It
// serializes everything behind one mutex, like the real store serializes
// row transactions.
type fakeDayStore struct {
	mu      sync.Mutex
	records map[store.DayKey]*model.DayRecord

	contendNext int   // fail this many Transact calls with ErrContention
	failWith    error // returned by every operation when set
}

func newFakeDayStore() *fakeDayStore {
	return &fakeDayStore{records: make(map[store.DayKey]*model.DayRecord)}
}

func (f *fakeDayStore) get(key store.DayKey) model.DayRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[key]; ok {
		return *rec
	}
	return model.DayRecord{}
}

func (f *fakeDayStore) put(rec model.DayRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := store.DayKey{EmployeeID: rec.EmployeeID, Year: rec.Year, Month: rec.Month, Day: rec.Day}
	f.records[key] = &rec
}

func (f *fakeDayStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeDayStore) Transact(ctx context.Context, key store.DayKey, fn func(rec *model.DayRecord) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if f.contendNext > 0 {
		f.contendNext--
		return store.ErrContention
	}
	rec, ok := f.records[key]
	if !ok {
		rec = &model.DayRecord{
			EmployeeID: key.EmployeeID,
			Year:       key.Year,
			Month:      key.Month,
			Day:        key.Day,
		}
	}
	if err := fn(rec); err != nil {
		return err
	}
	f.records[key] = rec
	return nil
}

func (f *fakeDayStore) SetIfAbsent(ctx context.Context, records []model.DayRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for i := range records {
		rec := records[i]
		key := store.DayKey{EmployeeID: rec.EmployeeID, Year: rec.Year, Month: rec.Month, Day: rec.Day}
		if _, ok := f.records[key]; !ok {
			f.records[key] = &rec
		}
	}
	return nil
}

func (f *fakeDayStore) MergeAnnotations(ctx context.Context, key store.DayKey, explanation, observation string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	rec, ok := f.records[key]
	if !ok {
		rec = &model.DayRecord{
			EmployeeID: key.EmployeeID,
			Year:       key.Year,
			Month:      key.Month,
			Day:        key.Day,
		}
		f.records[key] = rec
	}
	rec.Explanation = explanation
	rec.Observation = observation
	return nil
}

func (f *fakeDayStore) MonthRecords(ctx context.Context, employeeID string, year int, month string) ([]model.DayRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []model.DayRecord
	for day := 1; day <= 31; day++ {
		key := store.DayKey{EmployeeID: employeeID, Year: year, Month: month, Day: day}
		if rec, ok := f.records[key]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeDayStore) HasAnchor(ctx context.Context, employeeID string, year int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	for key := range f.records {
		if key.EmployeeID == employeeID && key.Year == year && key.Month == model.AnchorMonth {
			return true, nil
		}
	}
	return false, nil
}

// fakeDirectory knows a fixed roster.
type fakeDirectory struct {
	codes map[string]bool
}

func newFakeDirectory(codes ...string) *fakeDirectory {
	d := &fakeDirectory{codes: make(map[string]bool)}
	for _, c := range codes {
		d.codes[c] = true
	}
	return d
}

func (d *fakeDirectory) Exists(ctx context.Context, employeeID string) (bool, error) {
	return d.codes[employeeID], nil
}

// fixedClock always reports the same instant.
type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}
