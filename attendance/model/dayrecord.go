package model

import "time"

// TimestampLayout is the wire format for entry/exit timestamps stored on a
// DayRecord, e.g. "2025-03-14 08:58:12".
const TimestampLayout = "2006-01-02 15:04:05"

type RegisteredVia string

const (
	ViaQR     RegisteredVia = "QR"
	ViaManual RegisteredVia = "MANUAL"
)

// RecordState is the per-day state observed at transaction time.
type RecordState int

const (
	StateEmpty RecordState = iota
	StateOpen
	StateClosed
)

func (s RecordState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// DayRecord holds one employee's attendance for one calendar day.
// Exactly one row exists per (employee_id, year, month, day).
type DayRecord struct {
	ID         uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	EmployeeID string `json:"employeeId" gorm:"column:employee_id;size:32;not null;uniqueIndex:idx_attendance_day,priority:1"`
	Year       int    `json:"year" gorm:"not null;uniqueIndex:idx_attendance_day,priority:2"`
	Month      string `json:"month" gorm:"size:12;not null;uniqueIndex:idx_attendance_day,priority:3"`
	Day        int    `json:"day" gorm:"not null;uniqueIndex:idx_attendance_day,priority:4"`

	EntryTime     string `json:"entryTime" gorm:"column:entry_time;size:19;not null;default:''"`
	ExitTime      string `json:"exitTime" gorm:"column:exit_time;size:19;not null;default:''"`
	Explanation   string `json:"explanation" gorm:"type:text"`
	Observation   string `json:"observation" gorm:"type:text"`
	RegisteredVia string `json:"registeredVia" gorm:"column:registered_via;size:8"`

	CreatedAt time.Time `json:"-" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
	UpdatedAt time.Time `json:"-" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`
}

func (DayRecord) TableName() string {
	return "attendance_days"
}

// State classifies the record. A record with an exit but no entry violates
// the entry-before-exit invariant; it is reported as Closed and flagged by
// Malformed so callers can warn instead of overwriting.
func (r *DayRecord) State() RecordState {
	switch {
	case r.EntryTime == "" && r.ExitTime == "":
		return StateEmpty
	case r.ExitTime == "":
		return StateOpen
	default:
		return StateClosed
	}
}

func (r *DayRecord) Malformed() bool {
	return r.EntryTime == "" && r.ExitTime != ""
}

// AppendExplanation adds a note without disturbing earlier ones.
func (r *DayRecord) AppendExplanation(note string) {
	if r.Explanation == "" {
		r.Explanation = note
		return
	}
	r.Explanation += "\n" + note
}
