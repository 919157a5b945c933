package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ngx/coaching/internal/service"
)

// ClientHandler serves a coached client's read-only view of their programs.
type ClientHandler struct {
	clientService service.ClientService
	logger        *slog.Logger
}

func NewClientHandler(clientService service.ClientService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clientService: clientService, logger: logger}
}

// GetMyPrograms godoc
// @Summary Get my programs
// @Description Programs written for the authenticated client, newest first.
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Program
// @Router /client/programs [get]
func (h *ClientHandler) GetMyPrograms(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	programs, err := h.clientService.GetMyPrograms(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (h *ClientHandler) GetMyProgram(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	program, err := h.clientService.GetMyProgram(c.Request.Context(), clientID, programID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// GetMySchedule returns the program as consecutive weeks of workouts.
func (h *ClientHandler) GetMySchedule(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	schedule, err := h.clientService.GetMySchedule(c.Request.Context(), clientID, programID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
