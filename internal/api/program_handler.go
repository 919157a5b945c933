package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
	"ngx/coaching/internal/service"
)

// ProgramHandler serves the phase editor: whole programs plus node-level edits
// addressed by dotted index paths such as "0.1.2".
type ProgramHandler struct {
	programService service.ProgramService
	exportService  service.ExportService
	logger         *slog.Logger
}

func NewProgramHandler(programService service.ProgramService, exportService service.ExportService, logger *slog.Logger) *ProgramHandler {
	return &ProgramHandler{programService: programService, exportService: exportService, logger: logger}
}

// --- DTOs ---

type ProgramRequest struct {
	ClientID    string         `json:"clientId"`
	Name        string         `json:"name"`
	Goal        string         `json:"goal"`
	Description string         `json:"description"`
	ProgramType string         `json:"programType"`
	Phases      []domain.Phase `json:"phases"`
}

func (r ProgramRequest) input() (service.ProgramInput, error) {
	in := service.ProgramInput{
		Name:        r.Name,
		Goal:        r.Goal,
		Description: r.Description,
		ProgramType: r.ProgramType,
		Phases:      r.Phases,
	}
	if r.ClientID != "" {
		id, err := primitive.ObjectIDFromHex(r.ClientID)
		if err != nil {
			return in, err
		}
		in.ClientID = &id
	}
	return in, nil
}

type DraftRequest struct {
	Name string `json:"name"`
}

type AddNodeRequest struct {
	Parent string `json:"parent"` // container path, "" adds a phase
}

// UpdateNodeRequest carries the replacement for the node at the URL path; only
// the field matching the path depth is read.
type UpdateNodeRequest struct {
	Phase    *domain.Phase         `json:"phase"`
	Week     *domain.Week          `json:"week"`
	Day      *domain.Day           `json:"day"`
	Block    *domain.Block         `json:"block"`
	Exercise *domain.BlockExercise `json:"exercise"`
}

type MoveRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type EditResponse struct {
	Program *domain.Program `json:"program"`
	Path    string          `json:"path,omitempty"`
	Changed bool            `json:"changed"`
}

func editResponse(res *service.EditResult) EditResponse {
	resp := EditResponse{Program: res.Program, Changed: res.Changed}
	if res.Path != nil {
		resp.Path = res.Path.String()
	}
	return resp
}

// programIDs reads the authenticated trainer and the :id parameter.
func programIDs(c *gin.Context) (trainerID, programID primitive.ObjectID, ok bool) {
	if trainerID, ok = currentUserID(c); !ok {
		return
	}
	programID, ok = pathObjectID(c, "id")
	return
}

// --- Handler Methods ---

// CreateProgram godoc
// @Summary Create a validated program
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body ProgramRequest true "Program"
// @Success 201 {object} domain.Program
// @Failure 422 {object} gin.H "Validation failed"
// @Router /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	in, err := req.input()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid clientId format.")
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), trainerID, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

// CreateDraft starts a program from the default skeleton.
func (h *ProgramHandler) CreateDraft(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	program, err := h.programService.NewDraft(c.Request.Context(), trainerID, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

// ListPrograms lists the trainer's programs without their phase trees,
// optionally only those of ?clientId=.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	var clientID *primitive.ObjectID
	if raw := c.Query("clientId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid clientId format.")
			return
		}
		clientID = &id
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), trainerID, clientID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	trainerID, programID, ok := programIDs(c)
	if !ok {
		return
	}
	program, err := h.programService.GetProgram(c.Request.Context(), trainerID, programID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// SaveProgram replaces the whole program after validating it.
func (h *ProgramHandler) SaveProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, programID, ok := programIDs(c)
	if !ok {
		return
	}
	in, err := req.input()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid clientId format.")
		return
	}

	program, err := h.programService.SaveProgram(c.Request.Context(), trainerID, programID, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// UpdateDetails changes name, goal, description, type and client without
// touching the phase tree.
func (h *ProgramHandler) UpdateDetails(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, err := req.input()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid clientId format.")
		return
	}
	h.edit(c, service.ProgramEdit{Op: service.EditDetails, Details: &in}, http.StatusOK)
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	trainerID, programID, ok := programIDs(c)
	if !ok {
		return
	}
	if err := h.programService.DeleteProgram(c.Request.Context(), trainerID, programID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ValidateProgram runs the pre-save checks without saving.
func (h *ProgramHandler) ValidateProgram(c *gin.Context) {
	trainerID, programID, ok := programIDs(c)
	if !ok {
		return
	}
	if err := h.programService.ValidateProgram(c.Request.Context(), trainerID, programID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// --- node edits ---

func (h *ProgramHandler) edit(c *gin.Context, edit service.ProgramEdit, status int) {
	trainerID, programID, ok := programIDs(c)
	if !ok {
		return
	}
	res, err := h.programService.EditProgram(c.Request.Context(), trainerID, programID, edit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(status, editResponse(res))
}

// AddNode godoc
// @Summary Append a child with its minimum subtree
// @Description parent "" adds a phase, "0" a week to phase 1, "0.0" a day and so on.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param node body AddNodeRequest true "Container path"
// @Success 201 {object} EditResponse
// @Router /programs/{id}/nodes [post]
func (h *ProgramHandler) AddNode(c *gin.Context) {
	var req AddNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	parent, err := editor.ParsePath(req.Parent)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.edit(c, service.ProgramEdit{Op: service.EditAdd, Path: parent}, http.StatusCreated)
}

// nodePath parses the :path parameter, refusing the program root.
func (h *ProgramHandler) nodePath(c *gin.Context) (editor.Path, bool) {
	path, err := editor.ParsePath(c.Param("path"))
	if err == nil && len(path) == 0 {
		err = editor.ErrInvalidPath
	}
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return path, true
}

func (h *ProgramHandler) UpdateNode(c *gin.Context) {
	path, ok := h.nodePath(c)
	if !ok {
		return
	}
	var req UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.edit(c, service.ProgramEdit{
		Op:       service.EditUpdate,
		Path:     path,
		Phase:    req.Phase,
		Week:     req.Week,
		Day:      req.Day,
		Block:    req.Block,
		Exercise: req.Exercise,
	}, http.StatusOK)
}

func (h *ProgramHandler) RemoveNode(c *gin.Context) {
	path, ok := h.nodePath(c)
	if !ok {
		return
	}
	h.edit(c, service.ProgramEdit{Op: service.EditRemove, Path: path}, http.StatusOK)
}

// MoveNode reorders a node among its siblings. Moves between containers are
// answered with changed=false.
func (h *ProgramHandler) MoveNode(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	from, err := editor.ParsePath(req.From)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	to, err := editor.ParsePath(req.To)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.edit(c, service.ProgramEdit{Op: service.EditMove, Path: from, To: to}, http.StatusOK)
}

// --- exports ---

func (h *ProgramHandler) CreateExport(c *gin.Context) {
	formats, ok := bindFormats(c, h.logger)
	if !ok {
		return
	}
	trainerID, programID, ok := programIDs(c)
	if !ok {
		return
	}
	results, err := h.exportService.ExportProgram(c.Request.Context(), trainerID, programID, formats)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, results)
}

func (h *ProgramHandler) ListExports(c *gin.Context) {
	trainerID, programID, ok := programIDs(c)
	if !ok {
		return
	}
	if _, err := h.programService.GetProgram(c.Request.Context(), trainerID, programID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	records, err := h.exportService.ListExports(c.Request.Context(), trainerID, programID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
