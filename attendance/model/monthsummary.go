package model

// MonthSummary is derived from the month's DayRecords on demand; it is
// never persisted and never consulted by the scan recording path.
type MonthSummary struct {
	EmployeeID string `json:"employeeId"`
	Year       int    `json:"year"`
	Month      string `json:"month"`

	DaysExpected   int     `json:"daysExpected"`
	DaysWorked     int     `json:"daysWorked"`
	DaysAbsent     int     `json:"daysAbsent"`
	LateCount      int     `json:"lateCount"`
	HoursWorked    float64 `json:"hoursWorked"`
	HoursExpected  float64 `json:"hoursExpected"`
	AttendancePct  float64 `json:"attendancePct"`
	PunctualityPct float64 `json:"punctualityPct"`
}
