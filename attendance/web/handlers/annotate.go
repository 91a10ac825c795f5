package handlers

import (
	"net/http"
	"strconv"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/model"
	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/core"
	web "atiempo.app/atiempo/web/common"
	"github.com/gin-gonic/gin"
)

func (ep *Endpoint) Justify(c *gin.Context) {
	employeeID, year, month, ok := monthParams(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	m, _ := model.MonthIndex(month)
	if err != nil || day < 1 || day > model.DaysIn(year, m) {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid day"))
		return
	}

	var dto JustificationDTO
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

	key := store.DayKey{EmployeeID: employeeID, Year: year, Month: month, Day: day}
	a := engine.NewAnnotator(store.New(db), core.NewDirectory(db))
	if err := a.Annotate(c.Request.Context(), key, dto.Explanation, dto.Observation); err != nil {
		c.JSON(scanErrorStatus(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
