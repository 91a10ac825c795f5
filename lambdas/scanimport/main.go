package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/core"
	"atiempo.app/atiempo/infrastructure/communication"
	"atiempo.app/atiempo/infrastructure/filesystem"
	"atiempo.app/atiempo/lambdas/scanimport/helper"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"
)

// Backfill importer: terminal vendors drop historical scan exports into the
// import bucket under <schema>/<file>.csv, and each drop replays through
// the same processor the live endpoint uses.

func importFile(ctx context.Context, dm *core.DatabaseManager, bucket, key string) (int, error) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("key %s has no schema prefix", key)
	}
	schema := parts[0]

	var buf bytes.Buffer
	if err := filesystem.ReadFile(bucket, key, ctx, &buf); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}

	scans, err := helper.ParseScanCSV(&buf)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	fmt.Printf("[INFO] %s: %d scans for schema %s\n", key, len(scans), schema)

	imported := 0
	err = dm.Exec(ctx, schema, func(db *gorm.DB) error {
		st := store.New(db)
		in := engine.NewInitializer(st)
		for code, years := range helper.Years(scans) {
			for _, year := range years {
				if err := in.EnsureYearStructure(ctx, code, year); err != nil {
					return fmt.Errorf("bootstrap %s/%d: %w", code, year, err)
				}
			}
		}

		p := engine.NewProcessor(st, engine.SystemClock(), core.NewDirectory(db))
		for _, scan := range scans {
			at := scan.Timestamp
			via := model.RegisteredVia(scan.Via)
			if _, err := p.RecordScan(ctx, scan.EmployeeCode, &at, via); err != nil {
				fmt.Printf("[WARN] scan %s@%s skipped: %v\n", scan.EmployeeCode, at, err)
				continue
			}
			imported++
		}
		return nil
	})
	return imported, err
}

func HandleRequest(ctx context.Context, event events.S3Event) error {
	dsn := os.Getenv("DSN")
	dm, err := core.New(dsn, 5)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	slack := communication.ConnectSlack()
	hasError := false
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key

		imported, err := importFile(ctx, dm, bucket, key)
		if err != nil {
			hasError = true
			fmt.Printf("[ERROR] import of %s failed: %v\n", key, err)
			if slackErr := slack.Error(fmt.Sprintf("scan import failed for s3://%s/%s: %v", bucket, key, err)); slackErr != nil {
				fmt.Printf("[ERROR] slack notification failed: %v\n", slackErr)
			}
			continue
		}
		fmt.Printf("[INFO] imported %d scans from s3://%s/%s\n", imported, bucket, key)
	}

	if hasError {
		return fmt.Errorf("one or more imports failed")
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
