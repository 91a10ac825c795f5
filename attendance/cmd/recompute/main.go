package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/core"
	"atiempo.app/atiempo/infrastructure/communication"
	"atiempo.app/atiempo/infrastructure/devops"
	"atiempo.app/atiempo/utils"
	"gorm.io/gorm"
)

// Month-end batch: recomputes every employee's summary for the given month
// on every tenant database and prints the result table. Failures go to the
// Slack error channel so HR ops sees them before the first of the month.
func main() {
	var yearFlag, monthFlag string
	flag.StringVar(&yearFlag, "year", "", "Year to recompute. Defaults to the current year.")
	flag.StringVar(&monthFlag, "month", "", "Spanish month name. Defaults to the previous month.")
	flag.Parse()

	now := utils.MadridNow()
	year := now.Year()
	if yearFlag != "" {
		fmt.Sscanf(yearFlag, "%d", &year)
	}
	month := monthFlag
	if month == "" {
		prev := now.AddDate(0, -1, 0)
		month = model.MonthName(prev.Month())
		year = prev.Year()
	}
	if _, ok := model.MonthIndex(month); !ok {
		log.Fatalf("unknown month %q", month)
	}

	ctx := context.Background()
	var slackClient *communication.Slack
	if os.Getenv("SLACK_BOT_TOKEN") != "" {
		slackClient = communication.ConnectSlack()
	}

	failures := 0
	for _, entry := range fleet(ctx) {
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/?parseTime=true", entry.Username, entry.Password, entry.Host)
		if err := recomputeFleet(ctx, entry.Name, dsn, year, month); err != nil {
			failures++
			msg := fmt.Sprintf("attendance recompute failed for %s (%s %d): %v", entry.Name, month, year, err)
			log.Printf("[WARN] %s", msg)
			if slackClient != nil {
				if slackErr := slackClient.Error(msg); slackErr != nil {
					log.Printf("[WARN] slack notification failed: %v", slackErr)
				}
			}
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

// fleet resolves the database inventory, preferring the SSM parameter and
// falling back to the local DSN for development.
func fleet(ctx context.Context) []devops.DBEntry {
	entries, err := devops.LoadDBConfig(ctx)
	if err == nil && len(entries) > 0 {
		return entries
	}
	if err != nil {
		log.Printf("[WARN] could not load fleet inventory: %v", err)
	}
	return []devops.DBEntry{{Name: "localhost", Host: "localhost:3306", Username: "root", Password: "development"}}
}

func recomputeFleet(ctx context.Context, name, dsn string, year int, month string) error {
	if name == "localhost" {
		dsn = os.Getenv("DSN")
		if dsn == "" {
			dsn = "root:development@tcp(localhost:3306)/?parseTime=true"
		}
	}

	dm, err := core.New(dsn, 5)
	if err != nil {
		return err
	}
	defer dm.Close()

	schemas, err := dm.GetAllDatabases(ctx)
	if err != nil {
		return err
	}

	for _, schema := range schemas {
		if err := dm.Exec(ctx, schema, func(db *gorm.DB) error {
			return recomputeSchema(ctx, db, schema, year, month)
		}); err != nil {
			return fmt.Errorf("schema %s: %w", schema, err)
		}
	}
	return nil
}

func recomputeSchema(ctx context.Context, db *gorm.DB, schema string, year int, month string) error {
	var employees []core.Employee
	if err := db.Where("status = ?", "ACTIVE").Find(&employees).Error; err != nil {
		return fmt.Errorf("failed to fetch employees: %w", err)
	}

	a := engine.NewAggregator(store.New(db), engine.DefaultWorkdayRules())

	fmt.Printf("== %s %s %d ==\n", schema, month, year)
	fmt.Printf("%-10s %-24s %8s %8s %8s %10s %10s\n",
		"code", "name", "worked", "absent", "late", "asist.%", "punct.%")
	for _, emp := range employees {
		summary, err := a.Recompute(ctx, emp.Code, year, month)
		if err != nil {
			return fmt.Errorf("employee %s: %w", emp.Code, err)
		}
		fmt.Printf("%-10s %-24s %8d %8d %8d %10.1f %10.1f\n",
			emp.Code, emp.DisplayName(), summary.DaysWorked, summary.DaysAbsent,
			summary.LateCount, summary.AttendancePct, summary.PunctualityPct)
	}
	return nil
}
