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

// auditHandler handles HTTP requests for the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers the audit trail read routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit-events", middleware.RequireCapability(domain.CapAuditRead))
	{
		audit.GET("", h.listEvents)
	}
}

// listEvents godoc
// @Summary List audit events
// @Description Returns the audit trail, newest first, with token pagination and optional filters.
// @Tags audit
// @Produce json
// @Param category query string false "Filter by category" Enums(ledger, credit, subsidy, kyc, user, sfd, system)
// @Param severity query string false "Filter by severity" Enums(info, warning, error, critical)
// @Param status query string false "Filter by status" Enums(success, failure)
// @Param sfdID query string false "Filter by SFD (super-admin only)"
// @Param from query string false "Start of window (RFC3339)"
// @Param to query string false "End of window (RFC3339)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAuditEventsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-events [get]
func (h *auditHandler) listEvents(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListAuditEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.AuditLogFilter{
		Category: domain.AuditCategory(params.Category),
		Severity: domain.AuditSeverity(params.Severity),
		Status:   domain.AuditStatus(params.Status),
		SFDID:    params.SFDID,
	}
	if params.From != "" {
		from, err := time.Parse(time.RFC3339, params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' timestamp, expected RFC3339"})
			return
		}
		filter.From = from
	}
	if params.To != "" {
		to, err := time.Parse(time.RFC3339, params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' timestamp, expected RFC3339"})
			return
		}
		filter.To = to
	}

	events, nextToken, err := h.auditService.ListEvents(c.Request.Context(), actor, filter, params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list audit events")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditEventsResponse(events, nextToken))
}
