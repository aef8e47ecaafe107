package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/api"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "router-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Service stubs ---

type stubAuthService struct {
	users map[primitive.ObjectID]*domain.User
}

func (s *stubAuthService) Register(_ context.Context, _ service.RegisterInput) (string, *domain.User, error) {
	return "", nil, errors.New("not wired in this test")
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return "", nil, errors.New("not wired in this test")
}

func (s *stubAuthService) GetUserByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return user, nil
}

func (s *stubAuthService) DeleteAccount(_ context.Context, _ primitive.ObjectID) error { return nil }

type stubExerciseService struct {
	err       error
	exercises []domain.Exercise
}

func (s *stubExerciseService) Create(_ context.Context, _ primitive.ObjectID, _ service.ExerciseInput) (*domain.Exercise, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Exercise{ID: primitive.NewObjectID(), Name: "stub"}, nil
}

func (s *stubExerciseService) Get(_ context.Context, _, _ primitive.ObjectID) (*domain.Exercise, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.exercises) == 0 {
		return nil, service.ErrExerciseNotFound
	}
	return &s.exercises[0], nil
}

func (s *stubExerciseService) List(_ context.Context, _ primitive.ObjectID, _ domain.ExerciseFilter) ([]domain.Exercise, error) {
	return s.exercises, s.err
}

func (s *stubExerciseService) Update(_ context.Context, _, _ primitive.ObjectID, _ service.ExerciseInput) (*domain.Exercise, error) {
	return nil, service.ErrExerciseNotFound
}

func (s *stubExerciseService) Delete(_ context.Context, _, _ primitive.ObjectID) error {
	return service.ErrExerciseNotFound
}

type stubWorkoutService struct {
	err error
}

func (s *stubWorkoutService) Create(_ context.Context, _ primitive.ObjectID, _ service.WorkoutInput) (*domain.Workout, error) {
	return nil, s.err
}

func (s *stubWorkoutService) Get(_ context.Context, _, _ primitive.ObjectID) (*domain.Workout, error) {
	return nil, s.err
}

func (s *stubWorkoutService) List(_ context.Context, _ primitive.ObjectID) ([]domain.Workout, error) {
	return []domain.Workout{}, nil
}

func (s *stubWorkoutService) Update(_ context.Context, _, _ primitive.ObjectID, _ service.WorkoutInput) (*domain.Workout, error) {
	return nil, s.err
}

func (s *stubWorkoutService) Delete(_ context.Context, _, _ primitive.ObjectID) error { return s.err }

type stubWorkoutLogService struct{}

func (s *stubWorkoutLogService) Create(_ context.Context, _ primitive.ObjectID, _ service.WorkoutLogInput) (*domain.WorkoutLog, error) {
	return nil, service.ErrLogNotFound
}

func (s *stubWorkoutLogService) Get(_ context.Context, _, _ primitive.ObjectID) (*domain.WorkoutLog, error) {
	return nil, service.ErrLogNotFound
}

func (s *stubWorkoutLogService) List(_ context.Context, _ primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return []domain.WorkoutLog{}, nil
}

func (s *stubWorkoutLogService) Update(_ context.Context, _, _ primitive.ObjectID, _ service.WorkoutLogInput) (*domain.WorkoutLog, error) {
	return nil, service.ErrLogNotFound
}

func (s *stubWorkoutLogService) Delete(_ context.Context, _, _ primitive.ObjectID) error {
	return service.ErrLogNotFound
}

func (s *stubWorkoutLogService) Stats(_ context.Context, _ primitive.ObjectID) (*domain.LogStats, error) {
	return &domain.LogStats{}, nil
}

type stubProgressService struct{}

func (s *stubProgressService) Create(_ context.Context, _ primitive.ObjectID, _ service.ProgressInput) (*domain.Progress, error) {
	return nil, service.ErrProgressNotFound
}

func (s *stubProgressService) List(_ context.Context, _ primitive.ObjectID, _, _ *time.Time) ([]domain.Progress, error) {
	return []domain.Progress{}, nil
}

func (s *stubProgressService) Latest(_ context.Context, _ primitive.ObjectID) (*domain.Progress, error) {
	return nil, service.ErrProgressNotFound
}

func (s *stubProgressService) Delete(_ context.Context, _, _ primitive.ObjectID) error {
	return service.ErrProgressNotFound
}

func (s *stubProgressService) RequestPhotoUpload(_ context.Context, _, _ primitive.ObjectID, _, _ string) (string, error) {
	return "", service.ErrProgressNotFound
}

// --- Fixture ---

type routerFixture struct {
	router      *gin.Engine
	userID      primitive.ObjectID
	auth        *stubAuthService
	exerciseSvc *stubExerciseService
	workoutSvc  *stubWorkoutService
}

func newRouterFixture() *routerFixture {
	userID := primitive.NewObjectID()
	auth := &stubAuthService{users: map[primitive.ObjectID]*domain.User{
		userID: {ID: userID, Name: "Anas", Email: "anas@example.com"},
	}}
	exerciseSvc := &stubExerciseService{}
	workoutSvc := &stubWorkoutService{}

	router := gin.New()
	api.SetupRoutes(router, testSecret, auth, exerciseSvc, workoutSvc, &stubWorkoutLogService{}, &stubProgressService{})

	return &routerFixture{
		router:      router,
		userID:      userID,
		auth:        auth,
		exerciseSvc: exerciseSvc,
		workoutSvc:  workoutSvc,
	}
}

func signToken(t *testing.T, secret string, userID primitive.ObjectID, expiresAt time.Time) string {
	t.Helper()
	claims := &service.Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, target, authHeader, body string) (*httptest.ResponseRecorder, api.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var envelope api.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

// --- Tests ---

func TestPing(t *testing.T) {
	f := newRouterFixture()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestUnknownRoute(t *testing.T) {
	f := newRouterFixture()
	rec, envelope := f.do(t, http.MethodGet, "/api/definitely/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Route not found: GET /api/definitely/missing", envelope.Message)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	f := newRouterFixture()
	valid := signToken(t, testSecret, f.userID, time.Now().Add(time.Hour))
	wrongSecret := signToken(t, "another-secret", f.userID, time.Now().Add(time.Hour))
	expired := signToken(t, testSecret, f.userID, time.Now().Add(-time.Hour))
	deletedUser := signToken(t, testSecret, primitive.NewObjectID(), time.Now().Add(time.Hour))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic " + valid},
		{"malformed token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + wrongSecret},
		{"expired token", "Bearer " + expired},
		{"token for deleted account", "Bearer " + deletedUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, envelope := f.do(t, http.MethodGet, "/api/exercises", tc.header, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, envelope.Success)
			assert.Equal(t, "Not authorized to access this route", envelope.Message)
		})
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	f := newRouterFixture()
	token := signToken(t, testSecret, f.userID, time.Now().Add(time.Hour))

	rec, envelope := f.do(t, http.MethodGet, "/api/exercises", "Bearer "+token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Count)
	assert.Equal(t, 0, *envelope.Count)
}

func TestMalformedIDAnswers400(t *testing.T) {
	f := newRouterFixture()
	token := signToken(t, testSecret, f.userID, time.Now().Add(time.Hour))

	for _, target := range []string{
		"/api/exercises/not-a-hex-id",
		"/api/workouts/1234",
		"/api/logs/zzzzzzzzzzzzzzzzzzzzzzzz",
	} {
		rec, envelope := f.do(t, http.MethodGet, target, "Bearer "+token, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "Resource not found", envelope.Message, target)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	f := newRouterFixture()
	token := signToken(t, testSecret, f.userID, time.Now().Add(time.Hour))
	id := primitive.NewObjectID().Hex()

	f.exerciseSvc.err = service.ErrExerciseNotFound
	rec, envelope := f.do(t, http.MethodGet, "/api/exercises/"+id, "Bearer "+token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)

	f.workoutSvc.err = service.ErrWorkoutAccessDenied
	rec, envelope = f.do(t, http.MethodGet, "/api/workouts/"+id, "Bearer "+token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, envelope.Success)

	f.workoutSvc.err = service.ErrWorkoutNotFound
	rec, _ = f.do(t, http.MethodGet, "/api/workouts/"+id, "Bearer "+token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBindingFailureEnvelope(t *testing.T) {
	f := newRouterFixture()
	token := signToken(t, testSecret, f.userID, time.Now().Add(time.Hour))

	rec, envelope := f.do(t, http.MethodPost, "/api/exercises", "Bearer "+token, `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Validation error", envelope.Message)
	assert.NotEmpty(t, envelope.Errors)
}

func TestStatsRouteIsNotShadowedByID(t *testing.T) {
	f := newRouterFixture()
	token := signToken(t, testSecret, f.userID, time.Now().Add(time.Hour))

	rec, envelope := f.do(t, http.MethodGet, "/api/logs/stats/me", "Bearer "+token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
}
