package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients and KYC.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers all client-related routes.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", middleware.RequireCapability(domain.CapClientManage), h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", middleware.RequireCapability(domain.CapClientManage), h.updateClient)
		clients.DELETE("/:id", middleware.RequireCapability(domain.CapClientManage), h.deactivateClient)
		clients.POST("/:id/kyc", middleware.RequireCapability(domain.CapKYCVerify), h.verifyKYC)
	}
}

// createClient godoc
// @Summary Enroll a client
// @Description Registers a new client with an SFD. KYC starts at none.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "SFD suspended"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create client request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClientByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Lists the actor's SFD's clients. Super-admins may name any SFD.
// @Tags clients
// @Produce json
// @Param sfdID query string false "SFD ID (super-admin only)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListClientsResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), actor, c.Query("sfdID"), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// updateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deactivateClient godoc
// @Summary Deactivate a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deactivateClient(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	if err := h.clientService.DeactivateClient(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to deactivate client")
		return
	}
	c.Status(http.StatusNoContent)
}

// verifyKYC godoc
// @Summary Record a KYC decision
// @Description Sets the client's verification status and level. The decision and its audit event commit together.
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param decision body dto.VerifyKYCRequest true "Verification decision"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/kyc [post]
func (h *clientHandler) verifyKYC(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.VerifyKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.VerifyKYC(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to record KYC decision")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}
