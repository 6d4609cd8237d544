package handlers

import (
	"net/http"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sfdHandler handles HTTP requests related to partner institutions.
type sfdHandler struct {
	sfdService portssvc.SFDSvcFacade
}

func newSFDHandler(ss portssvc.SFDSvcFacade) *sfdHandler {
	return &sfdHandler{sfdService: ss}
}

// registerSFDRoutes registers all SFD-related routes.
func registerSFDRoutes(rg *gin.RouterGroup, sfdService portssvc.SFDSvcFacade) {
	h := newSFDHandler(sfdService)

	sfds := rg.Group("/sfds")
	{
		sfds.POST("", middleware.RequireCapability(domain.CapSFDManage), h.createSFD)
		sfds.GET("", middleware.RequireCapability(domain.CapSFDManage), h.listSFDs)
		sfds.GET("/:id", h.getSFD)
		sfds.PUT("/:id", middleware.RequireCapability(domain.CapSFDManage), h.updateSFD)
		sfds.PUT("/:id/status", middleware.RequireCapability(domain.CapSFDManage), h.updateSFDStatus)
	}
}

// createSFD godoc
// @Summary Register an SFD
// @Description Registers a new partner institution with a zero subsidy balance.
// @Tags sfds
// @Accept json
// @Produce json
// @Param sfd body dto.CreateSFDRequest true "SFD details"
// @Success 201 {object} dto.SFDResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Code already registered"
// @Security BearerAuth
// @Router /sfds [post]
func (h *sfdHandler) createSFD(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.CreateSFDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	sfd, err := h.sfdService.CreateSFD(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create SFD")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSFDResponse(sfd))
}

// getSFD godoc
// @Summary Get an SFD
// @Tags sfds
// @Produce json
// @Param id path string true "SFD ID"
// @Success 200 {object} dto.SFDResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sfds/{id} [get]
func (h *sfdHandler) getSFD(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	sfd, err := h.sfdService.GetSFDByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve SFD")
		return
	}
	c.JSON(http.StatusOK, dto.ToSFDResponse(sfd))
}

// listSFDs godoc
// @Summary List SFDs
// @Tags sfds
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListSFDsResponse
// @Security BearerAuth
// @Router /sfds [get]
func (h *sfdHandler) listSFDs(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListSFDsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	sfds, err := h.sfdService.ListSFDs(c.Request.Context(), actor, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list SFDs")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSFDsResponse(sfds))
}

// updateSFD godoc
// @Summary Update an SFD
// @Tags sfds
// @Accept json
// @Produce json
// @Param id path string true "SFD ID"
// @Param sfd body dto.UpdateSFDRequest true "Fields to update"
// @Success 200 {object} dto.SFDResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sfds/{id} [put]
func (h *sfdHandler) updateSFD(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.UpdateSFDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	sfd, err := h.sfdService.UpdateSFD(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update SFD")
		return
	}
	c.JSON(http.StatusOK, dto.ToSFDResponse(sfd))
}

// updateSFDStatus godoc
// @Summary Suspend or reactivate an SFD
// @Tags sfds
// @Accept json
// @Produce json
// @Param id path string true "SFD ID"
// @Param status body dto.UpdateSFDStatusRequest true "New status"
// @Success 200 {object} dto.SFDResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sfds/{id}/status [put]
func (h *sfdHandler) updateSFDStatus(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.UpdateSFDStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	sfd, err := h.sfdService.UpdateSFDStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update SFD status")
		return
	}
	c.JSON(http.StatusOK, dto.ToSFDResponse(sfd))
}
