// internal/handlers/report/report_handler.go
package report

import (
	"net/http"

	"llamacrm-service/internal/pkg/response"
	reportsvc "llamacrm-service/internal/service/report"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *reportsvc.Service
}

func NewReportHandler(reportService *reportsvc.Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetStats returns the dashboard KPIs for the requested date window.
func (h *ReportHandler) GetStats(c *gin.Context) {
	rng := reportsvc.DateRange(c.Query("range"))
	stats := h.reportService.FilteredStats(rng, c.Query("start"), c.Query("end"))

	response.Success(c, http.StatusOK, "stats computed", stats)
}

// GetReport returns the full business-intelligence roll-up.
func (h *ReportHandler) GetReport(c *gin.Context) {
	rng := reportsvc.DateRange(c.Query("range"))
	result := h.reportService.Report(c.Request.Context(), rng, c.Query("start"), c.Query("end"))

	response.Success(c, http.StatusOK, "report computed", result)
}
