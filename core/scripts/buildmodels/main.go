package main

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gen"
	"gorm.io/gorm"
)

func main() {
	g := gen.NewGenerator(gen.Config{
		OutPath:      "../../models",
		ModelPkgPath: "models",                                                           // avoid helper functions
		Mode:         gen.WithoutContext | gen.WithDefaultQuery | gen.WithQueryInterface, // generate mode
	})

	g.WithDataTypeMap(map[string]func(gorm.ColumnType) (dataType string){
		"time": func(gorm.ColumnType) string {
			return "string"
		},
		"decimal": func(gorm.ColumnType) string {
			return "float64"
		},
	})

	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/atiempo?parseTime=true"
	}
	gormdb, _ := gorm.Open(mysql.Open(dsn))
	g.UseDB(gormdb)

	g.GenerateModel("employees")
	g.GenerateModel("attendance_days")
	g.GenerateModel("scan_events")
	g.ApplyBasic()

	// Generate the code
	g.Execute()
}
