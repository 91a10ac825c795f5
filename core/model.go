package core

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectDB opens a plain single-schema connection. The web service goes
// through DatabaseManager instead; this is for CLI tools that target one
// schema.
func ConnectDB(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		// Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect to DB from GORM: %v", err))
	}
	return db
}
