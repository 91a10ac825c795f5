package handlers

import (
	"fmt"
	"net/http"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/report"
	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/core"
	web "atiempo.app/atiempo/web/common"
	"github.com/gin-gonic/gin"
)

type ReportRequestDTO struct {
	Recipients []string `json:"recipients" binding:"omitempty,dive,email"`
}

func (ep *Endpoint) Report(c *gin.Context) {
	employeeID, year, month, ok := monthParams(c)
	if !ok {
		return
	}

	var dto ReportRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	emp, err := core.FindEmployeeByCode(db, employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if emp == nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(fmt.Sprintf("Unknown employee '%s'", employeeID)))
		return
	}

	st := store.New(db)
	records, err := st.MonthRecords(ctx, employeeID, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	summary, err := engine.NewAggregator(st, ep.rules).Recompute(ctx, employeeID, year, month)
	if err != nil {
		c.JSON(scanErrorStatus(err), web.NewErrorResponse(err.Error()))
		return
	}

	buf, err := report.BuildMonthWorkbook(emp.DisplayName(), ep.rules, records, summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	location := ""
	if ep.sender != nil {
		artifact := report.Artifact{
			Filename:   fmt.Sprintf("asistencia_%s_%s_%d.xlsx", employeeID, month, year),
			EmployeeID: employeeID,
			Month:      month,
			Year:       year,
			Content:    buf.Bytes(),
		}
		location, err = ep.sender.Deliver(ctx, artifact, dto.Recipients)
		if err != nil {
			c.JSON(http.StatusBadGateway, web.NewErrorResponse(err.Error()))
			return
		}
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{
		"summary":  summary,
		"location": location,
	}))
}
