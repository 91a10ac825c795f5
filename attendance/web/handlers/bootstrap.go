package handlers

import (
	"net/http"
	"strconv"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/store"
	web "atiempo.app/atiempo/web/common"
	"github.com/gin-gonic/gin"
)

func (ep *Endpoint) Bootstrap(c *gin.Context) {
	employeeID := c.Param("id")
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1000 || year > 9999 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid year"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	in := engine.NewInitializer(store.New(db))
	if err := in.EnsureYearStructure(c.Request.Context(), employeeID, year); err != nil {
		c.JSON(scanErrorStatus(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"employeeId": employeeID, "year": year}))
}
