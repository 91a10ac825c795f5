package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/utils"
	web "atiempo.app/atiempo/web/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (ep *Endpoint) Scan(c *gin.Context) {
	var dto ScanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var at *time.Time
	if dto.Timestamp != nil {
		t, err := utils.ParseISOTime(*dto.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid timestamp"))
			return
		}
		at = utils.Ptr(t.In(utils.MadridTZ))
	}
	via := model.ViaQR
	if dto.Via != nil && *dto.Via == string(model.ViaManual) {
		via = model.ViaManual
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	p := ep.processor(db)

	// First scan of the year builds the structure. Failures here must not
	// swallow the scan itself; the per-day transaction can still create
	// its own record.
	when := ep.clock.Now()
	if at != nil {
		when = *at
	}
	if err := engine.NewInitializer(store.New(db)).EnsureYearStructure(ctx, dto.EmployeeCode, when.Year()); err != nil {
		log.Printf("[WARN] year bootstrap for %s/%d failed: %v", dto.EmployeeCode, when.Year(), err)
	}

	outcome, err := p.RecordScan(ctx, dto.EmployeeCode, at, via)
	recordScanEvent(db, dto.EmployeeCode, when, via, outcome, err)
	if err != nil {
		status := scanErrorStatus(err)
		c.JSON(status, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(outcome))
}

func scanErrorStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnknownEmployee):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrContention):
		return http.StatusConflict
	case errors.Is(err, engine.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, engine.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// recordScanEvent appends the audit row. Best effort; the scan result is
// already decided.
func recordScanEvent(db *gorm.DB, employeeCode string, at time.Time, via model.RegisteredVia, outcome engine.ScanOutcome, scanErr error) {
	event := model.ScanEvent{
		ID:         uuid.NewString(),
		EmployeeID: employeeCode,
		Date:       at.Format("2006-01-02"),
		Timestamp:  at.Format(model.TimestampLayout),
		Via:        string(via),
		Outcome:    string(outcome.Action),
	}
	if scanErr != nil {
		event.Outcome = "error: " + scanErr.Error()
	}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("[WARN] failed to record scan event for %s: %v", employeeCode, err)
	}
}
