package handlers

import (
	"net/http"

	"atiempo.app/atiempo/attendance/store"
	"atiempo.app/atiempo/utils"
	web "atiempo.app/atiempo/web/common"
	"github.com/gin-gonic/gin"
)

func (ep *Endpoint) MonthRecords(c *gin.Context) {
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

	records, err := store.New(db).MonthRecords(c.Request.Context(), employeeID, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	dtos := utils.Map(records, toDayRecordDTO)
	c.JSON(http.StatusOK, web.NewSearchResponse(dtos, int64(len(dtos))))
}
