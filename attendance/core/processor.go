package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
)

// maxScanAttempts bounds the retry loop when concurrent scans abort each
// other's transactions.
const maxScanAttempts = 3

// extraScanExplanation is appended when a scan arrives on an already
// closed day.
const extraScanExplanation = "Escaneo adicional detectado: posible olvido de cerrar sesión anterior."

type ScanAction string

const (
	ActionEntry ScanAction = "entry"
	ActionExit  ScanAction = "exit"
	ActionNone  ScanAction = "none"
)

// ScanOutcome describes what a scan did to the day's record.
type ScanOutcome struct {
	Action    ScanAction `json:"action"`
	Message   string     `json:"message"`
	Timestamp string     `json:"timestamp"`
	Year      int        `json:"year"`
	Month     string     `json:"month"`
	Day       int        `json:"day"`
}

// EmployeeDirectory resolves badge codes against the employee roster.
type EmployeeDirectory interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
}

// Processor turns badge scans into entry/exit marks on day records.
type Processor struct {
	store     store.DayStore
	clock     Clock
	employees EmployeeDirectory
}

func NewProcessor(s store.DayStore, clock Clock, employees EmployeeDirectory) *Processor {
	return &Processor{store: s, clock: clock, employees: employees}
}

// RecordScan applies one badge scan. The first scan of the day opens the
// record, the second closes it, and any further scan leaves the times
// untouched and appends an explanation note. at overrides the scan
// instant; nil means now.
func (p *Processor) RecordScan(ctx context.Context, employeeID string, at *time.Time, via model.RegisteredVia) (ScanOutcome, error) {
	known, err := p.employees.Exists(ctx, employeeID)
	if err != nil {
		return ScanOutcome{}, translate(err)
	}
	if !known {
		return ScanOutcome{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, employeeID)
	}

	when := p.clock.Now()
	if at != nil {
		when = *at
	}
	key := store.KeyFor(employeeID, when)
	stamp := when.Format(model.TimestampLayout)

	var outcome ScanOutcome
	var lastErr error
	for attempt := 1; attempt <= maxScanAttempts; attempt++ {
		lastErr = p.store.Transact(ctx, key, func(rec *model.DayRecord) error {
			outcome = apply(rec, stamp, via)
			return nil
		})
		if lastErr == nil {
			outcome.Year = key.Year
			outcome.Month = key.Month
			outcome.Day = key.Day
			return outcome, nil
		}
		if !errors.Is(lastErr, store.ErrContention) {
			break
		}
		log.Printf("[WARN] scan for %s on %s/%d contended, attempt %d of %d", employeeID, key.Month, key.Day, attempt, maxScanAttempts)
	}
	return ScanOutcome{}, translate(lastErr)
}

// apply mutates the record for one scan and reports the outcome. Runs
// inside the store transaction and may execute more than once on retry.
func apply(rec *model.DayRecord, stamp string, via model.RegisteredVia) ScanOutcome {
	if rec.Malformed() {
		log.Printf("[WARN] record %s %d/%s/%d has exit %q without entry, treating as closed",
			rec.EmployeeID, rec.Year, rec.Month, rec.Day, rec.ExitTime)
	}
	switch rec.State() {
	case model.StateEmpty:
		rec.EntryTime = stamp
		rec.RegisteredVia = string(via)
		return ScanOutcome{Action: ActionEntry, Message: "entry recorded", Timestamp: stamp}
	case model.StateOpen:
		rec.ExitTime = stamp
		return ScanOutcome{Action: ActionExit, Message: "exit recorded", Timestamp: stamp}
	default:
		rec.AppendExplanation(extraScanExplanation)
		return ScanOutcome{Action: ActionNone, Message: "already recorded", Timestamp: stamp}
	}
}

// translate maps store and context failures onto the engine's sentinel
// errors so callers never see raw driver errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, store.ErrContention):
		return fmt.Errorf("%w after %d attempts", ErrContention, maxScanAttempts)
	case errors.Is(err, store.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return err
	}
}
