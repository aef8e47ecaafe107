package api

import (
	"net/http"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLogHandler holds the session log service dependency.
type WorkoutLogHandler struct {
	logService service.WorkoutLogService
}

// NewWorkoutLogHandler creates a new WorkoutLogHandler.
func NewWorkoutLogHandler(logService service.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{logService: logService}
}

// --- DTOs ---

type LogSetRequest struct {
	Weight *float64 `json:"weight" binding:"omitempty,gte=0,lte=500"`
	Reps   int      `json:"reps" binding:"required,gte=1,lte=100"`
}

type LogExerciseRequest struct {
	ExerciseID string          `json:"exerciseId" binding:"required"`
	Sets       []LogSetRequest `json:"sets" binding:"required,min=1,dive"`
}

type WorkoutLogRequest struct {
	WorkoutID *string              `json:"workoutId"`
	Date      *time.Time           `json:"date"`
	Duration  int                  `json:"duration" binding:"required,gte=1,lte=600"`
	Exercises []LogExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
	Notes     string               `json:"notes"`
}

type LogExerciseResponse struct {
	ExerciseID   string          `json:"exerciseId"`
	ExerciseName string          `json:"exerciseName,omitempty"`
	Sets         []domain.LogSet `json:"sets"`
}

type WorkoutLogResponse struct {
	ID          string                `json:"id"`
	UserID      string                `json:"userId"`
	WorkoutID   string                `json:"workoutId,omitempty"`
	WorkoutName string                `json:"workoutName,omitempty"`
	Date        time.Time             `json:"date"`
	Duration    int                   `json:"duration"`
	Exercises   []LogExerciseResponse `json:"exercises"`
	Notes       string                `json:"notes,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func MapLogToResponse(l *domain.WorkoutLog) WorkoutLogResponse {
	if l == nil {
		return WorkoutLogResponse{}
	}
	exercises := make([]LogExerciseResponse, len(l.Exercises))
	for i, e := range l.Exercises {
		exercises[i] = LogExerciseResponse{
			ExerciseID:   e.ExerciseID.Hex(),
			ExerciseName: e.ExerciseName,
			Sets:         e.Sets,
		}
	}
	resp := WorkoutLogResponse{
		ID:          l.ID.Hex(),
		UserID:      l.UserID.Hex(),
		WorkoutName: l.WorkoutName,
		Date:        l.Date,
		Duration:    l.Duration,
		Exercises:   exercises,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.WorkoutID != nil {
		resp.WorkoutID = l.WorkoutID.Hex()
	}
	return resp
}

func MapLogsToResponse(logs []domain.WorkoutLog) []WorkoutLogResponse {
	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapLogToResponse(&logs[i])
	}
	return responses
}

func (r WorkoutLogRequest) toInput(c *gin.Context) (service.WorkoutLogInput, bool) {
	input := service.WorkoutLogInput{
		Duration: r.Duration,
		Notes:    r.Notes,
	}

	if r.WorkoutID != nil {
		workoutID, err := primitive.ObjectIDFromHex(*r.WorkoutID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Resource not found")
			return service.WorkoutLogInput{}, false
		}
		input.WorkoutID = &workoutID
	}
	if r.Date != nil {
		input.Date = *r.Date
	}

	input.Exercises = make([]domain.LogExercise, len(r.Exercises))
	for i, e := range r.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Resource not found")
			return service.WorkoutLogInput{}, false
		}
		sets := make([]domain.LogSet, len(e.Sets))
		for j, set := range e.Sets {
			weight := 0.0
			if set.Weight != nil {
				weight = *set.Weight
			}
			sets[j] = domain.LogSet{Weight: weight, Reps: set.Reps}
		}
		input.Exercises[i] = domain.LogExercise{ExerciseID: exerciseID, Sets: sets}
	}

	return input, true
}

// --- Handler Methods ---

func (h *WorkoutLogHandler) Create(c *gin.Context) {
	var req WorkoutLogRequest
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

	log, err := h.logService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, MapLogToResponse(log))
}

func (h *WorkoutLogHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	logs, err := h.logService.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, http.StatusOK, MapLogsToResponse(logs), len(logs))
}

func (h *WorkoutLogHandler) Get(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	logID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	log, err := h.logService.Get(c.Request.Context(), userID, logID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapLogToResponse(log))
}

func (h *WorkoutLogHandler) Update(c *gin.Context) {
	var req WorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	logID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	log, err := h.logService.Update(c.Request.Context(), userID, logID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapLogToResponse(log))
}

func (h *WorkoutLogHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	logID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.logService.Delete(c.Request.Context(), userID, logID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Workout log deleted")
}

// Stats aggregates the caller's session history.
func (h *WorkoutLogHandler) Stats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	stats, err := h.logService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}
