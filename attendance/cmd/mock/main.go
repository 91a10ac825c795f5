package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/core"
	"atiempo.app/atiempo/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds a month of plausible attendance for every active employee so the
// dashboards have something to show on a fresh schema. Roughly one weekday
// in ten stays absent, entries land between 08:00 and 10:59.
func main() {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/atiempo?parseTime=true"
	}
	db := core.ConnectDB(dsn)

	if err := db.AutoMigrate(&core.Employee{}, &model.DayRecord{}, &model.ScanEvent{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	now := utils.MadridNow()
	year, month := now.Year(), now.Month()

	var employees []core.Employee
	if err := db.Where("status = ?", "ACTIVE").Find(&employees).Error; err != nil {
		log.Fatalf("failed to fetch employees: %v", err)
	}
	if len(employees) == 0 {
		fmt.Println("No active employees. Nothing to seed.")
		return
	}

	ctx := context.Background()
	st := store.New(db)
	in := engine.NewInitializer(st)

	var filled []model.DayRecord
	for _, emp := range employees {
		if err := in.EnsureYearStructure(ctx, emp.Code, year); err != nil {
			log.Fatalf("failed to bootstrap %s/%d: %v", emp.Code, year, err)
		}
		filled = append(filled, mockMonth(emp.Code, year, month)...)
	}

	fmt.Printf("Seeding %d day records for %d employees...\n", len(filled), len(employees))
	if err := upsertRecords(db, filled); err != nil {
		log.Fatalf("failed to seed records: %v", err)
	}
	fmt.Println("Done.")
}

func mockMonth(employeeCode string, year int, month time.Month) []model.DayRecord {
	var records []model.DayRecord
	name := model.MonthName(month)

	for day := 1; day <= model.DaysIn(year, month); day++ {
		weekday := time.Date(year, month, day, 0, 0, 0, 0, utils.MadridTZ).Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			continue
		}
		if rand.Intn(10) == 0 {
			continue // absence
		}

		entry := time.Date(year, month, day, 8+rand.Intn(3), rand.Intn(60), rand.Intn(60), 0, utils.MadridTZ)
		hours := 8
		if weekday == time.Friday {
			hours = 5
		}
		exit := entry.Add(time.Duration(hours)*time.Hour + time.Duration(rand.Intn(30)-15)*time.Minute)

		records = append(records, model.DayRecord{
			EmployeeID:    employeeCode,
			Year:          year,
			Month:         name,
			Day:           day,
			EntryTime:     entry.Format(model.TimestampLayout),
			ExitTime:      exit.Format(model.TimestampLayout),
			RegisteredVia: string(model.ViaQR),
		})
	}
	return records
}

func upsertRecords(db *gorm.DB, records []model.DayRecord) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "employee_id"}, {Name: "year"}, {Name: "month"}, {Name: "day"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"entry_time", "exit_time", "registered_via"}),
	}).CreateInBatches(records, 100).Error
}
