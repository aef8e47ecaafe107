package api

import (
	"net/http"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Surname  string      `json:"surname" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Age      *int        `json:"age" binding:"omitempty,gte=13,lte=120"`
	Weight   *float64    `json:"weight" binding:"omitempty,gte=30,lte=300"`
	Height   *float64    `json:"height" binding:"omitempty,gte=100,lte=250"`
	Goal     domain.Goal `json:"goal" binding:"omitempty,oneof=perte_poids prise_masse maintien endurance"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Surname   string      `json:"surname"`
	Email     string      `json:"email"`
	Age       *int        `json:"age,omitempty"`
	Weight    *float64    `json:"weight,omitempty"`
	Height    *float64    `json:"height,omitempty"`
	Goal      domain.Goal `json:"goal,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Surname:   user.Surname,
		Email:     user.Email,
		Age:       user.Age,
		Weight:    user.Weight,
		Height:    user.Height,
		Goal:      user.Goal,
		CreatedAt: user.CreatedAt,
	}
}

// --- Handler Methods ---

// Register creates a new account and issues a credential for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Weight:   req.Weight,
		Height:   req.Height,
		Goal:     req.Goal,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, AuthResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidationError(c, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, AuthResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, MapUserToResponse(user))
}

// DeleteMe removes the caller's account together with every owned resource.
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to resolve user from context")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Account deleted")
}
