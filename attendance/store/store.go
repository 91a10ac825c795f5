package store

import (
	"context"
	"errors"
	"time"

	"atiempo.app/atiempo/attendance/model"
)

var (
	// ErrContention reports a transaction aborted by a concurrent writer.
	// Callers may retry.
	ErrContention = errors.New("attendance store: transaction contention")
	// ErrUnavailable reports that the backing store could not be reached.
	ErrUnavailable = errors.New("attendance store: unavailable")
)

// DayKey addresses exactly one DayRecord.
type DayKey struct {
	EmployeeID string
	Year       int
	Month      string
	Day        int
}

// KeyFor builds the key addressing the given instant's record.
func KeyFor(employeeID string, t time.Time) DayKey {
	return DayKey{
		EmployeeID: employeeID,
		Year:       t.Year(),
		Month:      model.MonthName(t.Month()),
		Day:        t.Day(),
	}
}

// DayStore is the transactional document access the recording engine
// depends on. Implementations must serialize concurrent Transact calls on
// the same key.
type DayStore interface {
	// Transact runs fn inside an atomic read-modify-write on the addressed
	// record. A missing record is materialized empty before fn runs, and
	// created in the same commit. fn returning an error aborts the
	// transaction and is returned unchanged.
	Transact(ctx context.Context, key DayKey, fn func(rec *model.DayRecord) error) error

	// SetIfAbsent creates the given records, silently skipping keys that
	// already exist. Idempotent; safe to run concurrently.
	SetIfAbsent(ctx context.Context, records []model.DayRecord) error

	// MergeAnnotations writes only the explanation/observation fields of
	// the addressed record, creating it if absent. Entry and exit fields
	// are never touched.
	MergeAnnotations(ctx context.Context, key DayKey, explanation, observation string) error

	// MonthRecords returns the month's records ordered by day.
	MonthRecords(ctx context.Context, employeeID string, year int, month string) ([]model.DayRecord, error)

	// HasAnchor reports whether the year structure has been bootstrapped
	// for the employee.
	HasAnchor(ctx context.Context, employeeID string, year int) (bool, error)
}
