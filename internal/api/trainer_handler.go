package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ngx/coaching/internal/service"
)

// TrainerHandler serves the trainer's client roster.
type TrainerHandler struct {
	trainerService service.TrainerService
	logger         *slog.Logger
}

func NewTrainerHandler(trainerService service.TrainerService, logger *slog.Logger) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService, logger: logger}
}

type AddClientRequest struct {
	ClientEmail string `json:"clientEmail" binding:"required,email"`
}

// AddClientByEmail godoc
// @Summary Add a client to the trainer's roster by email
// @Tags Trainer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientRequest body AddClientRequest true "Client's email"
// @Success 200 {object} UserResponse
// @Failure 403 {object} gin.H "Not a client, or client already has a trainer"
// @Failure 404 {object} gin.H "Client not found"
// @Router /trainer/clients [post]
func (h *TrainerHandler) AddClientByEmail(c *gin.Context) {
	var req AddClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	client, err := h.trainerService.AddClientByEmail(c.Request.Context(), trainerID, req.ClientEmail)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// GetManagedClients lists the roster, filtered by the optional ?q= query on
// name or email.
func (h *TrainerHandler) GetManagedClients(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	clients, err := h.trainerService.SearchClients(c.Request.Context(), trainerID, c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, mapUsersToResponse(clients))
}

func (h *TrainerHandler) GetManagedClient(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := pathObjectID(c, "clientId")
	if !ok {
		return
	}
	client, err := h.trainerService.ManagedClient(c.Request.Context(), trainerID, clientID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(client))
}
