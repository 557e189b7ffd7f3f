package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/documents"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func (rc *ReportController) dailyReport(c *gin.Context) (*services.DailyReport, bool) {
	day, err := rc.Reports.ParseDate(c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	report, err := rc.Reports.Daily(c.Request.Context(), day)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return report, true
}

// GetDailyReport -> ?date=YYYY-MM-DD, today when omitted
func (rc *ReportController) GetDailyReport(c *gin.Context) {
	report, ok := rc.dailyReport(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily report", report)
}

func (rc *ReportController) GetDailyReportPDF(c *gin.Context) {
	report, ok := rc.dailyReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := documents.WriteDailyReport(&buf, *report); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="report-%s.pdf"`, report.Date))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (rc *ReportController) GetTopDishesChart(c *gin.Context) {
	dishes, err := rc.Reports.TopDishes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := documents.WriteTopDishesChart(&buf, dishes); err != nil {
		if errors.Is(err, documents.ErrNoData) {
			utils.RespondError(c, http.StatusNotFound, errors.New("no dishes ordered yet"))
			return
		}
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GetFloorSummary -> table status counts and open work for the staff dashboard
func (rc *ReportController) GetFloorSummary(c *gin.Context) {
	summary, err := rc.Reports.Floor(c.Request.Context(), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Floor summary", summary)
}
