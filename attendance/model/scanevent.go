package model

import "time"

// ScanEvent is the raw audit trail of accepted scan submissions, kept
// alongside the derived DayRecords. Write-behind only; never read back by
// the recording engine.
type ScanEvent struct {
	ID         string `json:"id" gorm:"primaryKey;size:36"`
	EmployeeID string `json:"employeeId" gorm:"column:employee_id;size:32;index"`
	Date       string `json:"date" gorm:"size:10"`
	Timestamp  string `json:"timestamp" gorm:"size:19"`
	Via        string `json:"via" gorm:"size:8"`
	Outcome    string `json:"outcome" gorm:"size:255"`

	CreatedAt time.Time `json:"-" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
}

func (ScanEvent) TableName() string {
	return "scan_events"
}
