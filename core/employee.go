package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Employee is the roster row behind a badge code. The badge terminals only
// carry the numeric code, everything else lives here.
type Employee struct {
	EmployeeId    uint   `gorm:"primaryKey;autoIncrement"`
	Code          string `gorm:"size:32;uniqueIndex"`
	PreferredName string
	FirstName     string
	Surname       string
	Email         *string `gorm:"index"`
	DepartmentId  *int
	StartDate     *time.Time
	EndDate       *time.Time
	Status        string `gorm:"size:16;default:ACTIVE"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) DisplayName() string {
	name := e.PreferredName
	if name == "" {
		name = e.FirstName
	}
	return strings.TrimSpace(name + " " + e.Surname)
}

// FindEmployeeByCode resolves a badge code. Missing is not an error.
func FindEmployeeByCode(db *gorm.DB, code string) (*Employee, error) {
	var emp Employee
	result := db.Where("code = ?", code).First(&emp)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &emp, nil
}

// Directory adapts the roster table to the scan processor's lookup.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) Exists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&Employee{}).
		Where("code = ? AND status = ?", code, "ACTIVE").
		Limit(1).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
