package handlers

import (
	"net/http"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/gin-gonic/gin"
)

// creditHandler handles HTTP requests for credit applications.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: cs}
}

// registerCreditRoutes registers all credit application routes.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credit-applications")
	{
		credits.POST("", middleware.RequireCapability(domain.CapCreditApply), h.submitApplication)
		credits.GET("", h.listApplications)
		credits.GET("/:id", h.getApplication)
		credits.POST("/:id/approve", middleware.RequireCapability(domain.CapCreditReview), h.approveApplication)
		credits.POST("/:id/reject", middleware.RequireCapability(domain.CapCreditReview), h.rejectApplication)
	}
}

// submitApplication godoc
// @Summary Submit a credit application
// @Description Records a new application in pending status for a KYC-verified client.
// @Tags credits
// @Accept json
// @Produce json
// @Param application body dto.CreateCreditApplicationRequest true "Application details"
// @Success 201 {object} dto.CreditApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Client not KYC verified"
// @Security BearerAuth
// @Router /credit-applications [post]
func (h *creditHandler) submitApplication(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.CreateCreditApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.creditService.SubmitApplication(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCreditApplicationResponse(app))
}

// getApplication godoc
// @Summary Get a credit application
// @Tags credits
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} dto.CreditApplicationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit-applications/{id} [get]
func (h *creditHandler) getApplication(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	app, err := h.creditService.GetApplicationByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve application")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditApplicationResponse(app))
}

// listApplications godoc
// @Summary List credit applications
// @Tags credits
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param sfdID query string false "SFD ID (super-admin only)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListCreditApplicationsResponse
// @Security BearerAuth
// @Router /credit-applications [get]
func (h *creditHandler) listApplications(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListCreditApplicationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	var status *domain.CreditStatus
	if params.Status != "" {
		s := domain.CreditStatus(params.Status)
		status = &s
	}

	apps, err := h.creditService.ListApplications(c.Request.Context(), actor, c.Query("sfdID"), status, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCreditApplicationsResponse(apps))
}

// approveApplication godoc
// @Summary Approve a credit application
// @Description Approves a pending application and disburses the loan to the client's account atomically.
// @Tags credits
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param decision body dto.DecideCreditRequest true "Reviewer comment"
// @Success 200 {object} dto.CreditApplicationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /credit-applications/{id}/approve [post]
func (h *creditHandler) approveApplication(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.DecideCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.creditService.ApproveApplication(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to approve application")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditApplicationResponse(app))
}

// rejectApplication godoc
// @Summary Reject a credit application
// @Tags credits
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param decision body dto.DecideCreditRequest true "Reviewer comment"
// @Success 200 {object} dto.CreditApplicationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /credit-applications/{id}/reject [post]
func (h *creditHandler) rejectApplication(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.DecideCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.creditService.RejectApplication(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to reject application")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditApplicationResponse(app))
}
