package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"atiempo.app/atiempo/attendance/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQL error numbers translated into the store taxonomy.
const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrLockWait       = 1205
	mysqlErrDeadlock       = 1213
)

var keyColumns = []clause.Column{
	{Name: "employee_id"}, {Name: "year"}, {Name: "month"}, {Name: "day"},
}

// GormDayStore implements DayStore on MySQL through GORM. Row-level
// isolation comes from SELECT ... FOR UPDATE inside db.Transaction; the
// create-and-transition fusion relies on the unique (employee_id, year,
// month, day) index turning insert races into retryable contention.
type GormDayStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormDayStore {
	return &GormDayStore{db: db}
}

func (s *GormDayStore) Transact(ctx context.Context, key DayKey, fn func(rec *model.DayRecord) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.DayRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ? AND year = ? AND month = ? AND day = ?",
				key.EmployeeID, key.Year, key.Month, key.Day).
			Take(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = model.DayRecord{
				EmployeeID: key.EmployeeID,
				Year:       key.Year,
				Month:      key.Month,
				Day:        key.Day,
			}
		} else if err != nil {
			return err
		}

		if err := fn(&rec); err != nil {
			return err
		}

		if rec.ID == 0 {
			return tx.Create(&rec).Error
		}
		return tx.Model(&model.DayRecord{}).Where("id = ?", rec.ID).
			Updates(map[string]interface{}{
				"entry_time":     rec.EntryTime,
				"exit_time":      rec.ExitTime,
				"explanation":    rec.Explanation,
				"observation":    rec.Observation,
				"registered_via": rec.RegisteredVia,
			}).Error
	})
	return translateError(err)
}

func (s *GormDayStore) SetIfAbsent(ctx context.Context, records []model.DayRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   keyColumns,
		DoNothing: true,
	}).CreateInBatches(records, 100).Error
	return translateError(err)
}

func (s *GormDayStore) MergeAnnotations(ctx context.Context, key DayKey, explanation, observation string) error {
	rec := model.DayRecord{
		EmployeeID:  key.EmployeeID,
		Year:        key.Year,
		Month:       key.Month,
		Day:         key.Day,
		Explanation: explanation,
		Observation: observation,
	}
	// Upsert restricted to the two annotation columns so a concurrent
	// entry/exit commit can never be clobbered.
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   keyColumns,
		DoUpdates: clause.AssignmentColumns([]string{"explanation", "observation"}),
	}).Create(&rec).Error
	return translateError(err)
}

func (s *GormDayStore) MonthRecords(ctx context.Context, employeeID string, year int, month string) ([]model.DayRecord, error) {
	var records []model.DayRecord
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		Order("day").
		Find(&records).Error
	if err != nil {
		return nil, translateError(err)
	}
	return records, nil
}

func (s *GormDayStore) HasAnchor(ctx context.Context, employeeID string, year int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.DayRecord{}).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, model.AnchorMonth).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDeadlock, mysqlErrLockWait, mysqlErrDuplicateEntry:
			return fmt.Errorf("%w: %v", ErrContention, err)
		}
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
