package handlers

import (
	"net/http"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for aggregated reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports", middleware.RequireCapability(domain.CapReportRead))
	{
		reports.GET("/sfds/:id/transaction-summary", h.getTransactionSummary)
		reports.GET("/subsidy-overview", h.getSubsidyOverview)
	}
}

// getTransactionSummary godoc
// @Summary Get an SFD's transaction summary
// @Description Aggregates ledger movements by transaction type over a period.
// @Tags reports
// @Produce json
// @Param id path string true "SFD ID"
// @Param from query string true "Start of window (RFC3339)"
// @Param to query string true "End of window (RFC3339)"
// @Success 200 {object} dto.TransactionSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/sfds/{id}/transaction-summary [get]
func (h *reportingHandler) getTransactionSummary(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.TransactionSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	from, err := time.Parse(time.RFC3339, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' timestamp, expected RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' timestamp, expected RFC3339"})
		return
	}

	summary, err := h.reportingService.GetTransactionSummary(c.Request.Context(), actor, c.Param("id"), from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to build transaction summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(summary))
}

// getSubsidyOverview godoc
// @Summary Get the platform subsidy overview
// @Description Aggregates subsidy totals across all SFDs. Supervision only.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SubsidyOverviewResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/subsidy-overview [get]
func (h *reportingHandler) getSubsidyOverview(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	overview, err := h.reportingService.GetSubsidyOverview(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to build subsidy overview")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubsidyOverviewResponse(overview))
}
