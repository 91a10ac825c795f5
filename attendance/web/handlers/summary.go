package handlers

import (
	"net/http"

	engine "atiempo.app/atiempo/attendance/core"
	"atiempo.app/atiempo/attendance/store"
	web "atiempo.app/atiempo/web/common"
	"github.com/gin-gonic/gin"
)

func (ep *Endpoint) Summary(c *gin.Context) {
	employeeID, year, month, ok := monthParams(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	a := engine.NewAggregator(store.New(db), ep.rules)
	summary, err := a.Recompute(c.Request.Context(), employeeID, year, month)
	if err != nil {
		c.JSON(scanErrorStatus(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(summary))
}
