package handlers

import (
	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/report"
	"atiempo.app/atiempo/attendance/store"
	common "atiempo.app/atiempo/attendance/web/common"
	"atiempo.app/atiempo/core"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Endpoint struct {
	base   common.Handler
	clock  engine.Clock
	rules  engine.WorkdayRules
	sender report.Sender
}

// Register wires the attendance routes onto the protected group. sender may
// be nil, which disables the report route's delivery step.
func Register(r *gin.RouterGroup, dm *core.DatabaseManager, sender report.Sender) {
	endpoint := &Endpoint{
		base:   common.Handler{Dm: dm},
		clock:  engine.SystemClock(),
		rules:  engine.DefaultWorkdayRules(),
		sender: sender,
	}
	r.POST("/scan", endpoint.Scan)
	r.POST("/employees/:id/attendance/:year/bootstrap", endpoint.Bootstrap)
	r.GET("/employees/:id/attendance/:year/:month", endpoint.MonthRecords)
	r.GET("/employees/:id/attendance/:year/:month/summary", endpoint.Summary)
	r.PUT("/employees/:id/attendance/:year/:month/:day/justification", endpoint.Justify)
	r.POST("/employees/:id/attendance/:year/:month/report", endpoint.Report)
}

// processor assembles the engine around a request-scoped db handle.
func (ep *Endpoint) processor(db *gorm.DB) *engine.Processor {
	return engine.NewProcessor(store.New(db), ep.clock, core.NewDirectory(db))
}
