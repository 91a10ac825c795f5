package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"atiempo.app/atiempo/attendance/model"
	web "atiempo.app/atiempo/web/common"
	"github.com/gin-gonic/gin"
)

type ScanDTO struct {
	EmployeeCode string  `json:"employeeCode" binding:"required,numeric"`
	Timestamp    *string `json:"timestamp,omitempty"`
	Via          *string `json:"via,omitempty"`
}

type JustificationDTO struct {
	Explanation string `json:"explanation"`
	Observation string `json:"observation"`
}

type DayRecordDTO struct {
	Day           int    `json:"day"`
	EntryTime     string `json:"entryTime"`
	ExitTime      string `json:"exitTime"`
	Explanation   string `json:"explanation"`
	Observation   string `json:"observation"`
	RegisteredVia string `json:"registeredVia"`
	Status        string `json:"status"`
}

func toDayRecordDTO(rec model.DayRecord) DayRecordDTO {
	return DayRecordDTO{
		Day:           rec.Day,
		EntryTime:     rec.EntryTime,
		ExitTime:      rec.ExitTime,
		Explanation:   rec.Explanation,
		Observation:   rec.Observation,
		RegisteredVia: rec.RegisteredVia,
		Status:        rec.State().String(),
	}
}

// monthParams pulls and validates the :id/:year/:month path segments shared
// by the month-scoped routes.
func monthParams(c *gin.Context) (employeeID string, year int, month string, ok bool) {
	employeeID = c.Param("id")

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1000 || year > 9999 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid year"))
		return "", 0, "", false
	}

	month = c.Param("month")
	if _, known := model.MonthIndex(month); !known {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(fmt.Sprintf("Unknown month '%s'", month)))
		return "", 0, "", false
	}

	return employeeID, year, month, true
}
