package handlers

import (
	"context"
	"net/http"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/gin-gonic/gin"
)

// subsidyHandler handles HTTP requests for subsidy and fund requests.
type subsidyHandler struct {
	subsidyService portssvc.SubsidySvcFacade
}

func newSubsidyHandler(ss portssvc.SubsidySvcFacade) *subsidyHandler {
	return &subsidyHandler{subsidyService: ss}
}

// registerSubsidyRoutes registers subsidy request and fund request routes.
func registerSubsidyRoutes(rg *gin.RouterGroup, subsidyService portssvc.SubsidySvcFacade) {
	h := newSubsidyHandler(subsidyService)

	subsidies := rg.Group("/subsidy-requests")
	{
		subsidies.POST("", middleware.RequireCapability(domain.CapSubsidyRequest), h.submitSubsidyRequest)
		subsidies.GET("", h.listSubsidyRequests)
		subsidies.GET("/:id", h.getSubsidyRequest)
		subsidies.POST("/:id/approve", middleware.RequireCapability(domain.CapSubsidyDecide), h.approveSubsidyRequest)
		subsidies.POST("/:id/reject", middleware.RequireCapability(domain.CapSubsidyDecide), h.rejectSubsidyRequest)
	}

	funds := rg.Group("/fund-requests")
	{
		funds.POST("", middleware.RequireCapability(domain.CapSubsidyRequest), h.submitFundRequest)
		funds.GET("", h.listFundRequests)
		funds.GET("/:id", h.getFundRequest)
		funds.POST("/:id/approve", middleware.RequireCapability(domain.CapSubsidyDecide), h.approveFundRequest)
		funds.POST("/:id/reject", middleware.RequireCapability(domain.CapSubsidyDecide), h.rejectFundRequest)
		funds.POST("/:id/complete", middleware.RequireCapability(domain.CapSubsidyDecide), h.completeFundRequest)
	}
}

// submitSubsidyRequest godoc
// @Summary Submit a subsidy request
// @Description Records a request for MEREF subsidy capital in pending status.
// @Tags subsidies
// @Accept json
// @Produce json
// @Param request body dto.CreateSubsidyRequestRequest true "Request details"
// @Success 201 {object} dto.SubsidyRequestResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /subsidy-requests [post]
func (h *subsidyHandler) submitSubsidyRequest(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.CreateSubsidyRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.subsidyService.SubmitSubsidyRequest(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to submit subsidy request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubsidyRequestResponse(request))
}

// getSubsidyRequest godoc
// @Summary Get a subsidy request
// @Tags subsidies
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.SubsidyRequestResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /subsidy-requests/{id} [get]
func (h *subsidyHandler) getSubsidyRequest(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	request, err := h.subsidyService.GetSubsidyRequestByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve subsidy request")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubsidyRequestResponse(request))
}

// listSubsidyRequests godoc
// @Summary List subsidy requests
// @Tags subsidies
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected, completed)
// @Param sfdID query string false "SFD ID (super-admin only)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListSubsidyRequestsResponse
// @Security BearerAuth
// @Router /subsidy-requests [get]
func (h *subsidyHandler) listSubsidyRequests(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.subsidyService.ListSubsidyRequests(c.Request.Context(), actor, params.SFDID, requestStatusFilter(params.Status), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list subsidy requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSubsidyRequestsResponse(requests))
}

// approveSubsidyRequest godoc
// @Summary Approve a subsidy request
// @Description Approves a pending request and credits the SFD's subsidy balance atomically.
// @Tags subsidies
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body dto.DecideRequestRequest true "Decision comment"
// @Success 200 {object} dto.SubsidyRequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /subsidy-requests/{id}/approve [post]
func (h *subsidyHandler) approveSubsidyRequest(c *gin.Context) {
	h.decideSubsidyRequest(c, h.subsidyService.ApproveSubsidyRequest, "Failed to approve subsidy request")
}

// rejectSubsidyRequest godoc
// @Summary Reject a subsidy request
// @Tags subsidies
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body dto.DecideRequestRequest true "Decision comment"
// @Success 200 {object} dto.SubsidyRequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /subsidy-requests/{id}/reject [post]
func (h *subsidyHandler) rejectSubsidyRequest(c *gin.Context) {
	h.decideSubsidyRequest(c, h.subsidyService.RejectSubsidyRequest, "Failed to reject subsidy request")
}

func (h *subsidyHandler) decideSubsidyRequest(
	c *gin.Context,
	decide func(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.SubsidyRequest, error),
	failureMessage string,
) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.DecideRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	request, err := decide(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, failureMessage)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubsidyRequestResponse(request))
}

// submitFundRequest godoc
// @Summary Submit a fund request
// @Tags subsidies
// @Accept json
// @Produce json
// @Param request body dto.CreateFundRequestRequest true "Request details"
// @Success 201 {object} dto.FundRequestResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /fund-requests [post]
func (h *subsidyHandler) submitFundRequest(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.CreateFundRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.subsidyService.SubmitFundRequest(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to submit fund request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFundRequestResponse(request))
}

// getFundRequest godoc
// @Summary Get a fund request
// @Tags subsidies
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.FundRequestResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fund-requests/{id} [get]
func (h *subsidyHandler) getFundRequest(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	request, err := h.subsidyService.GetFundRequestByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve fund request")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundRequestResponse(request))
}

// listFundRequests godoc
// @Summary List fund requests
// @Tags subsidies
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected, completed)
// @Param sfdID query string false "SFD ID (super-admin only)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListFundRequestsResponse
// @Security BearerAuth
// @Router /fund-requests [get]
func (h *subsidyHandler) listFundRequests(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.subsidyService.ListFundRequests(c.Request.Context(), actor, params.SFDID, requestStatusFilter(params.Status), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list fund requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFundRequestsResponse(requests))
}

// approveFundRequest godoc
// @Summary Approve a fund request
// @Tags subsidies
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body dto.DecideRequestRequest true "Decision comment"
// @Success 200 {object} dto.FundRequestResponse
// @Failure 409 {object} ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /fund-requests/{id}/approve [post]
func (h *subsidyHandler) approveFundRequest(c *gin.Context) {
	h.decideFundRequest(c, h.subsidyService.ApproveFundRequest, "Failed to approve fund request")
}

// rejectFundRequest godoc
// @Summary Reject a fund request
// @Tags subsidies
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body dto.DecideRequestRequest true "Decision comment"
// @Success 200 {object} dto.FundRequestResponse
// @Failure 409 {object} ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /fund-requests/{id}/reject [post]
func (h *subsidyHandler) rejectFundRequest(c *gin.Context) {
	h.decideFundRequest(c, h.subsidyService.RejectFundRequest, "Failed to reject fund request")
}

func (h *subsidyHandler) decideFundRequest(
	c *gin.Context,
	decide func(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.FundRequest, error),
	failureMessage string,
) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.DecideRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	request, err := decide(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, failureMessage)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundRequestResponse(request))
}

// completeFundRequest godoc
// @Summary Complete a fund request
// @Description Marks an approved fund request as completed once the transfer is executed.
// @Tags subsidies
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.FundRequestResponse
// @Failure 409 {object} ErrorResponse "Not in approved state"
// @Security BearerAuth
// @Router /fund-requests/{id}/complete [post]
func (h *subsidyHandler) completeFundRequest(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	request, err := h.subsidyService.CompleteFundRequest(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to complete fund request")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundRequestResponse(request))
}

func requestStatusFilter(raw string) *domain.RequestStatus {
	if raw == "" {
		return nil
	}
	s := domain.RequestStatus(raw)
	return &s
}
