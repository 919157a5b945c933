package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	markdown        goldmark.Markdown
	logger          *slog.Logger
}

func NewExerciseHandler(exerciseService service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, markdown: goldmark.New(), logger: logger}
}

// --- DTOs ---

// ExerciseRequest is the body for creating or replacing an exercise.
type ExerciseRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	MuscleGroup      string `json:"muscleGroup"`
	Difficulty       string `json:"difficulty"`
	Equipment        string `json:"equipment"`
	ExecutionTechnic string `json:"executionTechnic"` // Markdown
	VideoURL         string `json:"videoUrl" binding:"omitempty,url"`
}

func (r ExerciseRequest) input() service.ExerciseInput {
	return service.ExerciseInput{
		Name:             r.Name,
		Description:      r.Description,
		Category:         r.Category,
		MuscleGroup:      r.MuscleGroup,
		Difficulty:       r.Difficulty,
		Equipment:        r.Equipment,
		ExecutionTechnic: r.ExecutionTechnic,
		VideoURL:         r.VideoURL,
	}
}

type ExerciseResponse struct {
	ID                   string    `json:"id"`
	TrainerID            string    `json:"trainerId"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Category             string    `json:"category,omitempty"`
	MuscleGroup          string    `json:"muscleGroup,omitempty"`
	Difficulty           string    `json:"difficulty,omitempty"`
	Equipment            string    `json:"equipment,omitempty"`
	ExecutionTechnic     string    `json:"executionTechnic,omitempty"`
	ExecutionTechnicHTML string    `json:"executionTechnicHtml,omitempty"`
	VideoURL             string    `json:"videoUrl,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type ExerciseListResponse struct {
	Exercises    []ExerciseResponse `json:"exercises"`
	Categories   []string           `json:"categories"`
	MuscleGroups []string           `json:"muscle_groups"`
}

// mapExercise converts a domain.Exercise to its response DTO, rendering the
// execution technique from Markdown to HTML.
func (h *ExerciseHandler) mapExercise(c *gin.Context, ex *domain.Exercise) ExerciseResponse {
	resp := ExerciseResponse{
		ID:               ex.ID.Hex(),
		TrainerID:        ex.TrainerID.Hex(),
		Name:             ex.Name,
		Description:      ex.Description,
		Category:         ex.Category,
		MuscleGroup:      ex.MuscleGroup,
		Difficulty:       ex.Difficulty,
		Equipment:        ex.Equipment,
		ExecutionTechnic: ex.ExecutionTechnic,
		VideoURL:         ex.VideoURL,
		CreatedAt:        ex.CreatedAt,
		UpdatedAt:        ex.UpdatedAt,
	}
	if ex.ExecutionTechnic != "" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(ex.ExecutionTechnic), &buf); err != nil {
			h.logger.WarnContext(c.Request.Context(), "Failed to render execution technique", slog.String("exercise_id", resp.ID), slog.Any("error", err))
		} else {
			resp.ExecutionTechnicHTML = buf.String()
		}
	}
	return resp
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), trainerID, req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, h.mapExercise(c, exercise))
}

// ListExercises godoc
// @Summary List the trainer's exercises
// @Description Filters by category, muscle_group, difficulty, equipment and q (name search).
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ExerciseListResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter := domain.ExerciseFilter{
		TrainerID:   trainerID,
		Category:    c.Query("category"),
		MuscleGroup: c.Query("muscle_group"),
		Difficulty:  c.Query("difficulty"),
		Equipment:   c.Query("equipment"),
		Search:      c.Query("q"),
	}

	lib, err := h.exerciseService.ListExercises(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := ExerciseListResponse{
		Exercises:    make([]ExerciseResponse, len(lib.Exercises)),
		Categories:   lib.Categories,
		MuscleGroups: lib.MuscleGroups,
	}
	for i := range lib.Exercises {
		resp.Exercises[i] = h.mapExercise(c, &lib.Exercises[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExerciseHandler) Categories(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	facets, err := h.exerciseService.Categories(c.Request.Context(), trainerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, facets)
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), trainerID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.mapExercise(c, exercise))
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), trainerID, id, req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.mapExercise(c, exercise))
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), trainerID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
