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

// TemplateHandler serves templates and the week/workout/exercise editor.
type TemplateHandler struct {
	templateService service.TemplateService
	exportService   service.ExportService
	logger          *slog.Logger
}

func NewTemplateHandler(templateService service.TemplateService, exportService service.ExportService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, exportService: exportService, logger: logger}
}

// --- DTOs ---

type TemplateRequest struct {
	Name        string                   `json:"name" binding:"required"`
	ProgramType string                   `json:"programType"`
	Structure   *domain.ProgramStructure `json:"structure"`
}

type ReorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

type ExerciseFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// TemplateEditResponse is the template after an edit and, for additions, the
// node that was created.
type TemplateEditResponse struct {
	Template *domain.Template `json:"template"`
	Node     any              `json:"node,omitempty"`
}

func templateIDs(c *gin.Context) (trainerID, templateID primitive.ObjectID, ok bool) {
	if trainerID, ok = currentUserID(c); !ok {
		return
	}
	templateID, ok = pathObjectID(c, "id")
	return
}

// edit runs fn against the stored structure and answers with the result.
func (h *TemplateHandler) edit(c *gin.Context, status int, fn func(*editor.StructureEditor) (any, error)) {
	trainerID, templateID, ok := templateIDs(c)
	if !ok {
		return
	}
	var node any
	t, err := h.templateService.EditTemplate(c.Request.Context(), trainerID, templateID, func(ed *editor.StructureEditor) error {
		var err error
		node, err = fn(ed)
		return err
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(status, TemplateEditResponse{Template: t, Node: node})
}

func bindReorder(c *gin.Context) (from, to int, ok bool) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return 0, 0, false
	}
	return *req.From, *req.To, true
}

// --- templates ---

// CreateTemplate godoc
// @Summary Create a template
// @Description Without a structure the template starts with one empty week.
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body TemplateRequest true "Template"
// @Success 201 {object} domain.Template
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	t, err := h.templateService.CreateTemplate(c.Request.Context(), trainerID, req.Name, req.ProgramType, req.Structure)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	templates, err := h.templateService.ListTemplates(c.Request.Context(), trainerID, c.Query("programType"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	trainerID, templateID, ok := templateIDs(c)
	if !ok {
		return
	}
	t, err := h.templateService.GetTemplate(c.Request.Context(), trainerID, templateID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, templateID, ok := templateIDs(c)
	if !ok {
		return
	}
	var structure domain.ProgramStructure
	if req.Structure != nil {
		structure = *req.Structure
	}
	t, err := h.templateService.SaveTemplate(c.Request.Context(), trainerID, templateID, req.Name, req.ProgramType, structure)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	trainerID, templateID, ok := templateIDs(c)
	if !ok {
		return
	}
	if err := h.templateService.DeleteTemplate(c.Request.Context(), trainerID, templateID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- weeks ---

func (h *TemplateHandler) AddWeek(c *gin.Context) {
	h.edit(c, http.StatusCreated, func(ed *editor.StructureEditor) (any, error) {
		return ed.AddWeek(), nil
	})
}

func (h *TemplateHandler) UpdateWeek(c *gin.Context) {
	var week domain.TrainingWeek
	if err := c.ShouldBindJSON(&week); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.UpdateWeek(c.Param("weekId"), week)
	})
}

func (h *TemplateHandler) RemoveWeek(c *gin.Context) {
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.RemoveWeek(c.Param("weekId"))
	})
}

func (h *TemplateHandler) MoveWeek(c *gin.Context) {
	from, to, ok := bindReorder(c)
	if !ok {
		return
	}
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.MoveWeek(from, to)
	})
}

// --- workouts ---

func (h *TemplateHandler) AddWorkout(c *gin.Context) {
	h.edit(c, http.StatusCreated, func(ed *editor.StructureEditor) (any, error) {
		return ed.AddWorkout(c.Param("weekId"))
	})
}

func (h *TemplateHandler) UpdateWorkout(c *gin.Context) {
	var workout domain.WorkoutBlock
	if err := c.ShouldBindJSON(&workout); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.UpdateWorkout(c.Param("weekId"), c.Param("workoutId"), workout)
	})
}

func (h *TemplateHandler) RemoveWorkout(c *gin.Context) {
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.RemoveWorkout(c.Param("weekId"), c.Param("workoutId"))
	})
}

func (h *TemplateHandler) MoveWorkout(c *gin.Context) {
	from, to, ok := bindReorder(c)
	if !ok {
		return
	}
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.MoveWorkout(c.Param("weekId"), from, to)
	})
}

// --- exercises ---

func (h *TemplateHandler) AddExercise(c *gin.Context) {
	h.edit(c, http.StatusCreated, func(ed *editor.StructureEditor) (any, error) {
		return ed.AddExercise(c.Param("weekId"), c.Param("workoutId"))
	})
}

// EditExercise sets one column of an exercise row. Numeric columns must hold
// whole numbers.
func (h *TemplateHandler) EditExercise(c *gin.Context) {
	var req ExerciseFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.EditExercise(c.Param("weekId"), c.Param("workoutId"), c.Param("exerciseId"), editor.ExerciseField(req.Field), req.Value)
	})
}

func (h *TemplateHandler) RemoveExercise(c *gin.Context) {
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.RemoveExercise(c.Param("weekId"), c.Param("workoutId"), c.Param("exerciseId"))
	})
}

func (h *TemplateHandler) MoveExercise(c *gin.Context) {
	from, to, ok := bindReorder(c)
	if !ok {
		return
	}
	h.edit(c, http.StatusOK, func(ed *editor.StructureEditor) (any, error) {
		return nil, ed.MoveExercise(c.Param("weekId"), c.Param("workoutId"), from, to)
	})
}

// --- exports ---

func (h *TemplateHandler) CreateExport(c *gin.Context) {
	formats, ok := bindFormats(c, h.logger)
	if !ok {
		return
	}
	trainerID, templateID, ok := templateIDs(c)
	if !ok {
		return
	}
	results, err := h.exportService.ExportTemplate(c.Request.Context(), trainerID, templateID, formats)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, results)
}

func (h *TemplateHandler) ListExports(c *gin.Context) {
	trainerID, templateID, ok := templateIDs(c)
	if !ok {
		return
	}
	if _, err := h.templateService.GetTemplate(c.Request.Context(), trainerID, templateID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	records, err := h.exportService.ListExports(c.Request.Context(), trainerID, templateID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
