package core

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
)

// WorkdayRules parameterize the monthly aggregation. Weekends are never
// counted as expected days.
type WorkdayRules struct {
	// NominalStart is the contractual start of the day as "HH:MM". An
	// entry at or after it counts as late.
	NominalStart string
	// WeekdayHours is the expected workload Monday through Thursday.
	WeekdayHours float64
	// FridayHours is the reduced Friday workload.
	FridayHours float64
}

func DefaultWorkdayRules() WorkdayRules {
	return WorkdayRules{NominalStart: "09:00", WeekdayHours: 8, FridayHours: 5}
}

// Aggregator derives monthly summaries from day records. Summaries are
// computed on demand, never persisted.
type Aggregator struct {
	store store.DayStore
	rules WorkdayRules
}

func NewAggregator(s store.DayStore, rules WorkdayRules) *Aggregator {
	return &Aggregator{store: s, rules: rules}
}

// Recompute scans the month's records and produces the summary. month is
// the Spanish month name used throughout the record keys.
func (a *Aggregator) Recompute(ctx context.Context, employeeID string, year int, month string) (model.MonthSummary, error) {
	m, ok := model.MonthIndex(month)
	if !ok {
		return model.MonthSummary{}, fmt.Errorf("unknown month %q", month)
	}

	records, err := a.store.MonthRecords(ctx, employeeID, year, month)
	if err != nil {
		return model.MonthSummary{}, translate(err)
	}
	byDay := make(map[int]model.DayRecord, len(records))
	for _, rec := range records {
		byDay[rec.Day] = rec
	}

	summary := model.MonthSummary{EmployeeID: employeeID, Year: year, Month: month}
	for day := 1; day <= model.DaysIn(year, m); day++ {
		weekday := time.Date(year, m, day, 0, 0, 0, 0, time.UTC).Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			continue
		}
		summary.DaysExpected++
		if weekday == time.Friday {
			summary.HoursExpected += a.rules.FridayHours
		} else {
			summary.HoursExpected += a.rules.WeekdayHours
		}

		rec, ok := byDay[day]
		if !ok || rec.EntryTime == "" {
			summary.DaysAbsent++
			continue
		}
		summary.DaysWorked++
		entry, err := time.Parse(model.TimestampLayout, rec.EntryTime)
		if err != nil {
			log.Printf("[WARN] unparseable entry %q for %s %d/%s/%d", rec.EntryTime, employeeID, year, month, day)
			continue
		}
		if entry.Format("15:04") >= a.rules.NominalStart {
			summary.LateCount++
		}
		if rec.ExitTime != "" {
			exit, err := time.Parse(model.TimestampLayout, rec.ExitTime)
			if err != nil {
				log.Printf("[WARN] unparseable exit %q for %s %d/%s/%d", rec.ExitTime, employeeID, year, month, day)
				continue
			}
			if hours := exit.Sub(entry).Hours(); hours > 0 {
				summary.HoursWorked += hours
			}
		}
	}

	summary.HoursWorked = round1(summary.HoursWorked)
	summary.AttendancePct = percentage(summary.DaysWorked, summary.DaysExpected)
	summary.PunctualityPct = percentage(summary.DaysWorked-summary.LateCount, summary.DaysWorked)
	return summary, nil
}

// percentage rounds to one decimal and guards the empty denominator.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
