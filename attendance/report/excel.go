package report

import (
	"bytes"
	"fmt"
	"time"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/model"
	"github.com/xuri/excelize/v2"
)

// Day status labels shown to HR. These predate this service and must not
// change without coordinating with the dashboards.
const (
	StatusAbsent     = "Ausente"
	StatusNoExit     = "Sin registro de salida"
	StatusComplete   = "Jornada completa"
	StatusIncomplete = "Jornada incompleta"
)

const sheetName = "Asistencia"

// DayStatus labels one day the way the HR workbook has always done.
func DayStatus(rec model.DayRecord, hours, expected float64) string {
	switch rec.State() {
	case model.StateEmpty:
		return StatusAbsent
	case model.StateOpen:
		return StatusNoExit
	}
	if rec.Malformed() {
		return StatusNoExit
	}
	if hours >= expected {
		return StatusComplete
	}
	return StatusIncomplete
}

// BuildMonthWorkbook renders the month's day rows plus the summary block
// into an xlsx workbook.
func BuildMonthWorkbook(employeeName string, rules engine.WorkdayRules, records []model.DayRecord, summary model.MonthSummary) (*bytes.Buffer, error) {
	m, ok := model.MonthIndex(summary.Month)
	if !ok {
		return nil, fmt.Errorf("unknown month %q", summary.Month)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - %s %d", employeeName, summary.Month, summary.Year))

	headers := []string{"Día", "Entrada", "Salida", "Horas", "Estado", "Justificación"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheetName, cell, h)
	}

	byDay := make(map[int]model.DayRecord, len(records))
	for _, rec := range records {
		byDay[rec.Day] = rec
	}

	row := 4
	for day := 1; day <= model.DaysIn(summary.Year, m); day++ {
		weekday := time.Date(summary.Year, m, day, 0, 0, 0, 0, time.UTC).Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			continue
		}
		expected := rules.WeekdayHours
		if weekday == time.Friday {
			expected = rules.FridayHours
		}

		rec := byDay[day]
		rec.Day = day
		hours := workedHours(rec)

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), day)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), clockPart(rec.EntryTime))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), clockPart(rec.ExitTime))
		if hours > 0 {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), hours)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), DayStatus(rec, hours, expected))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), rec.Explanation)
		row++
	}

	row++
	block := []struct {
		label string
		value interface{}
	}{
		{"Días laborables", summary.DaysExpected},
		{"Días trabajados", summary.DaysWorked},
		{"Ausencias", summary.DaysAbsent},
		{"Retrasos", summary.LateCount},
		{"Horas trabajadas", summary.HoursWorked},
		{"Horas previstas", summary.HoursExpected},
		{"Asistencia %", summary.AttendancePct},
		{"Puntualidad %", summary.PunctualityPct},
	}
	for _, item := range block {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.value)
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "C", 12)
	f.SetColWidth(sheetName, "E", "F", 28)

	return f.WriteToBuffer()
}

func workedHours(rec model.DayRecord) float64 {
	if rec.EntryTime == "" || rec.ExitTime == "" {
		return 0
	}
	entry, err := time.Parse(model.TimestampLayout, rec.EntryTime)
	if err != nil {
		return 0
	}
	exit, err := time.Parse(model.TimestampLayout, rec.ExitTime)
	if err != nil {
		return 0
	}
	if h := exit.Sub(entry).Hours(); h > 0 {
		return h
	}
	return 0
}

// clockPart trims the stored timestamp down to HH:MM:SS for display.
func clockPart(stamp string) string {
	if len(stamp) == len(model.TimestampLayout) {
		return stamp[11:]
	}
	return stamp
}
