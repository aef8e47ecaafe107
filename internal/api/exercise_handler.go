package api

import (
	"net/http"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

// ExerciseRequest is the payload for both create and update. Any owner field
// a caller sneaks into the body is simply absent from this shape, so
// ownership can never be set or transferred through it.
type ExerciseRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	MuscleGroup domain.MuscleGroup `json:"muscleGroup" binding:"omitempty,oneof=pectoraux dos jambes epaules bras abdominaux cardio corps_entier"`
	Category    domain.Category    `json:"category" binding:"omitempty,oneof=musculation cardio souplesse equilibre"`
	Difficulty  domain.Difficulty  `json:"difficulty" binding:"omitempty,oneof=debutant intermediaire avance"`
}

type ExerciseResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	MuscleGroup domain.MuscleGroup `json:"muscleGroup,omitempty"`
	Category    domain.Category    `json:"category,omitempty"`
	Difficulty  domain.Difficulty  `json:"difficulty,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		UserID:      ex.UserID.Hex(),
		Name:        ex.Name,
		Description: ex.Description,
		MuscleGroup: ex.MuscleGroup,
		Category:    ex.Category,
		Difficulty:  ex.Difficulty,
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
}

func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// Create adds an exercise to the caller's catalog. The owner always comes
// from the token.
func (h *ExerciseHandler) Create(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), userID, service.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, MapExerciseToResponse(exercise))
}

// List returns the caller's catalog, optionally filtered by muscleGroup,
// category and difficulty. All supplied filters must match.
func (h *ExerciseHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	filter := domain.ExerciseFilter{
		MuscleGroup: domain.MuscleGroup(c.Query("muscleGroup")),
		Category:    domain.Category(c.Query("category")),
		Difficulty:  domain.Difficulty(c.Query("difficulty")),
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, http.StatusOK, MapExercisesToResponse(exercises), len(exercises))
}

// Get fetches one exercise. A cross-owner id answers 404, never revealing
// that the id exists under someone else.
func (h *ExerciseHandler) Get(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapExerciseToResponse(exercise))
}

// Update replaces the mutable fields of an exercise.
func (h *ExerciseHandler) Update(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), userID, exerciseID, service.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapExerciseToResponse(exercise))
}

// Delete removes an exercise from the caller's catalog.
func (h *ExerciseHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), userID, exerciseID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Exercise deleted")
}
