package model

import "time"

// MonthNames are the canonical month keys, kept in the Spanish lowercase
// form the badge devices and dashboards have always used.
var MonthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// AnchorMonth is the month whose existence marks a bootstrapped year.
const AnchorMonth = "enero"

func MonthName(m time.Month) string {
	return MonthNames[int(m)-1]
}

// MonthIndex resolves a month name to its 1-based calendar index.
func MonthIndex(name string) (time.Month, bool) {
	for i, n := range MonthNames {
		if n == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// DaysIn returns the real day count of a month, leap years included.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
