package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
)

// Initializer lazily builds the per-employee year structure: one empty
// DayRecord for every calendar day of the year.
type Initializer struct {
	store store.DayStore
}

func NewInitializer(s store.DayStore) *Initializer {
	return &Initializer{store: s}
}

// EnsureYearStructure creates the full set of empty day records for the
// employee's year unless it already exists. The January anchor decides
// existence, so the check is a single lookup. Safe to call concurrently;
// inserts skip days that already exist and never overwrite scan data.
func (in *Initializer) EnsureYearStructure(ctx context.Context, employeeID string, year int) error {
	if year < 1000 || year > 9999 {
		return fmt.Errorf("invalid year %d", year)
	}

	exists, err := in.store.HasAnchor(ctx, employeeID, year)
	if err != nil {
		return translate(err)
	}
	if exists {
		return nil
	}

	records := make([]model.DayRecord, 0, 366)
	for m := time.January; m <= time.December; m++ {
		name := model.MonthName(m)
		for day := 1; day <= model.DaysIn(year, m); day++ {
			records = append(records, model.DayRecord{
				EmployeeID: employeeID,
				Year:       year,
				Month:      name,
				Day:        day,
			})
		}
	}

	log.Printf("[INFO] bootstrapping %d day records for employee %s year %d", len(records), employeeID, year)
	if err := in.store.SetIfAbsent(ctx, records); err != nil {
		return translate(err)
	}
	return nil
}
