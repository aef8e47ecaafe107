package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrEmailTaken           = errors.New("email already in use")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrUserNotFound         = errors.New("user not found")
)

// RegisterInput carries the registration payload. Optional profile fields
// are pointers so "absent" and "zero" stay distinguishable.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Age      *int
	Weight   *float64
	Height   *float64
	Goal     domain.Goal
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (token string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	exerciseRepo  repository.ExerciseRepository
	workoutRepo   repository.WorkoutRepository
	logRepo       repository.WorkoutLogRepository
	progressRepo  repository.ProgressRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService. The resource repos
// are needed for the account-deletion cascade.
func NewAuthService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	logRepo repository.WorkoutLogRepository,
	progressRepo repository.ProgressRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		exerciseRepo:  exerciseRepo,
		workoutRepo:   workoutRepo,
		logRepo:       logRepo,
		progressRepo:  progressRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. Emails are normalized to lowercase
// so duplicate detection is case-insensitive.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, *domain.User, error) {
	if input.Name == "" || input.Surname == "" || input.Email == "" || input.Password == "" {
		return "", nil, errors.New("name, surname, email and password cannot be empty")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Age:          input.Age,
		Weight:       input.Weight,
		Height:       input.Height,
		Goal:         input.Goal,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index catches the race where two registrations slip
		// past the GetByEmail probe.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}
	user.ID = userID

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Login authenticates a user and issues a JWT. Unknown email and wrong
// password collapse into the same error so neither is leaked.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetUserByID fetches a user profile. Also used by the auth middleware to
// verify that a token still references a live account.
func (s *authService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// DeleteAccount removes the user and cascades over every owned collection.
// Owned resources go first so a failure midway cannot leave a live account
// referencing deleted data.
func (s *authService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.exerciseRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.workoutRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.logRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.progressRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// --- JWT Helper ---

// Claims is the JWT payload shared with the auth middleware.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &Claims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitness-tracker-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
