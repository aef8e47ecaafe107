package api

import (
	"net/http"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type WorkoutExerciseRequest struct {
	ExerciseID  string `json:"exerciseId" binding:"required"`
	Order       int    `json:"order" binding:"gte=0"`
	Sets        int    `json:"sets" binding:"required,gte=1,lte=20"`
	Reps        int    `json:"reps" binding:"required,gte=1,lte=100"`
	RestSeconds int    `json:"restSeconds" binding:"gte=0,lte=600"`
}

type WorkoutRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Exercises   []WorkoutExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

type WorkoutExerciseResponse struct {
	ExerciseID  string `json:"exerciseId"`
	Order       int    `json:"order"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"restSeconds"`
}

type WorkoutResponse struct {
	ID          string                    `json:"id"`
	UserID      string                    `json:"userId"`
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Exercises   []WorkoutExerciseResponse `json:"exercises"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	exercises := make([]WorkoutExerciseResponse, len(w.Exercises))
	for i, e := range w.Exercises {
		exercises[i] = WorkoutExerciseResponse{
			ExerciseID:  e.ExerciseID.Hex(),
			Order:       e.Order,
			Sets:        e.Sets,
			Reps:        e.Reps,
			RestSeconds: e.RestSeconds,
		}
	}
	return WorkoutResponse{
		ID:          w.ID.Hex(),
		UserID:      w.UserID.Hex(),
		Name:        w.Name,
		Description: w.Description,
		Exercises:   exercises,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// toInput converts the request to a service input, rejecting malformed
// exercise id references before any lookup.
func (r WorkoutRequest) toInput(c *gin.Context) (service.WorkoutInput, bool) {
	exercises := make([]domain.WorkoutExercise, len(r.Exercises))
	for i, e := range r.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Resource not found")
			return service.WorkoutInput{}, false
		}
		exercises[i] = domain.WorkoutExercise{
			ExerciseID:  exerciseID,
			Order:       e.Order,
			Sets:        e.Sets,
			Reps:        e.Reps,
			RestSeconds: e.RestSeconds,
		}
	}
	return service.WorkoutInput{
		Name:        r.Name,
		Description: r.Description,
		Exercises:   exercises,
	}, true
}

// --- Handler Methods ---

func (h *WorkoutHandler) Create(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, http.StatusOK, MapWorkoutsToResponse(workouts), len(workouts))
}

// Get fetches one workout program. An existing id owned by someone else
// answers 403; an unknown id answers 404.
func (h *WorkoutHandler) Get(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.Get(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) Update(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), userID, workoutID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), userID, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Workout deleted")
}
