package api

import (
	"net/http"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

type MeasurementsRequest struct {
	Chest  *float64 `json:"chest" binding:"omitempty,gte=10,lte=300"`
	Waist  *float64 `json:"waist" binding:"omitempty,gte=10,lte=300"`
	Hips   *float64 `json:"hips" binding:"omitempty,gte=10,lte=300"`
	Arms   *float64 `json:"arms" binding:"omitempty,gte=10,lte=300"`
	Thighs *float64 `json:"thighs" binding:"omitempty,gte=10,lte=300"`
}

type ProgressRequest struct {
	Date         *time.Time           `json:"date"`
	Weight       *float64             `json:"weight" binding:"omitempty,gte=30,lte=300"`
	Measurements *MeasurementsRequest `json:"measurements"`
}

type PhotoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
}

type ProgressResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	Date         time.Time            `json:"date"`
	Weight       *float64             `json:"weight,omitempty"`
	IMC          *float64             `json:"imc,omitempty"`
	Measurements *domain.Measurements `json:"measurements,omitempty"`
	PhotoURL     string               `json:"photoUrl,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

func MapProgressToResponse(p *domain.Progress) ProgressResponse {
	if p == nil {
		return ProgressResponse{}
	}
	return ProgressResponse{
		ID:           p.ID.Hex(),
		UserID:       p.UserID.Hex(),
		Date:         p.Date,
		Weight:       p.Weight,
		IMC:          p.IMC,
		Measurements: p.Measurements,
		PhotoURL:     p.PhotoURL,
		CreatedAt:    p.CreatedAt,
	}
}

func MapProgressListToResponse(records []domain.Progress) []ProgressResponse {
	responses := make([]ProgressResponse, len(records))
	for i := range records {
		responses[i] = MapProgressToResponse(&records[i])
	}
	return responses
}

// --- Handler Methods ---

// Create stores a new body snapshot. Weight and measurements are both
// optional; the BMI is derived server-side when weight and the stored height
// are both known.
func (h *ProgressHandler) Create(c *gin.Context) {
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	input := service.ProgressInput{Weight: req.Weight}
	if req.Date != nil {
		input.Date = *req.Date
	}
	if req.Measurements != nil {
		input.Measurements = &domain.Measurements{
			Chest:  req.Measurements.Chest,
			Waist:  req.Measurements.Waist,
			Hips:   req.Measurements.Hips,
			Arms:   req.Measurements.Arms,
			Thighs: req.Measurements.Thighs,
		}
	}

	progress, err := h.progressService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, MapProgressToResponse(progress))
}

// List returns the caller's progress history, optionally bounded by from/to
// (RFC 3339), sorted by date descending.
func (h *ProgressHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid 'from' date")
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid 'to' date")
			return
		}
		to = &parsed
	}

	records, err := h.progressService.List(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, http.StatusOK, MapProgressListToResponse(records), len(records))
}

// Latest returns the single most recent record by date, 404 when the caller
// has none.
func (h *ProgressHandler) Latest(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	progress, err := h.progressService.Latest(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapProgressToResponse(progress))
}

func (h *ProgressHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	progressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.progressService.Delete(c.Request.Context(), userID, progressID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Progress record deleted")
}

// RequestPhotoUpload issues a presigned URL for attaching a photo to a
// progress record. The client PUTs the file directly to storage.
func (h *ProgressHandler) RequestPhotoUpload(c *gin.Context) {
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	progressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	uploadURL, err := h.progressService.RequestPhotoUpload(c.Request.Context(), userID, progressID, req.FileName, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, PhotoUploadResponse{UploadURL: uploadURL})
}
