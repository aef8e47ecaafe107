package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

func newAuthFixture() (service.AuthService, *fakeUserRepo, *fakeExerciseRepo, *fakeWorkoutRepo, *fakeWorkoutLogRepo, *fakeProgressRepo) {
	users := newFakeUserRepo()
	exercises := newFakeExerciseRepo()
	workouts := newFakeWorkoutRepo()
	logs := newFakeWorkoutLogRepo()
	progress := newFakeProgressRepo()
	svc := service.NewAuthService(users, exercises, workouts, logs, progress, testJWTSecret, time.Hour)
	return svc, users, exercises, workouts, logs, progress
}

func TestAuthService_Register(t *testing.T) {
	svc, users, _, _, _, _ := newAuthFixture()
	ctx := context.Background()

	height := 175.0
	token, user, err := svc.Register(ctx, service.RegisterInput{
		Name:     "Anas",
		Surname:  "Gabbadi",
		Email:    "A@Test.com",
		Password: "123456",
		Height:   &height,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@test.com", user.Email, "email must be normalized to lowercase")
	assert.Empty(t, user.PasswordHash, "password hash must never leave the service")
	assert.False(t, user.ID.IsZero())

	// The issued token must carry the new user id and be verifiable with
	// the configured secret.
	claims := &service.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	assert.Len(t, users.users, 1)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, users, _, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, service.RegisterInput{
		Name: "Anas", Surname: "Gabbadi", Email: "a@test.com", Password: "123456",
	})
	require.NoError(t, err)

	// Case-insensitive duplicate.
	_, _, err = svc.Register(ctx, service.RegisterInput{
		Name: "Other", Surname: "User", Email: "A@TEST.com", Password: "654321",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
	assert.Len(t, users.users, 1, "failed registration must not alter the user count")
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, service.RegisterInput{
		Name: "Anas", Surname: "Gabbadi", Email: "a@test.com", Password: "123456",
	})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// Wrong password and unknown email collapse into the same error.
	_, _, err = svc.Login(ctx, "a@test.com", "wrong-pass")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@test.com", "123456")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestAuthService_DeleteAccount_Cascades(t *testing.T) {
	svc, users, exercises, workouts, logs, progress := newAuthFixture()
	ctx := context.Background()

	_, user, err := svc.Register(ctx, service.RegisterInput{
		Name: "Anas", Surname: "Gabbadi", Email: "a@test.com", Password: "123456",
	})
	require.NoError(t, err)
	_, other, err := svc.Register(ctx, service.RegisterInput{
		Name: "Other", Surname: "User", Email: "b@test.com", Password: "123456",
	})
	require.NoError(t, err)

	exercise := &domain.Exercise{UserID: user.ID, Name: "Squat"}
	exerciseID, err := exercises.Create(ctx, exercise)
	require.NoError(t, err)
	_, err = workouts.Create(ctx, &domain.Workout{
		UserID: user.ID, Name: "Leg day",
		Exercises: []domain.WorkoutExercise{{ExerciseID: exerciseID, Sets: 3, Reps: 10}},
	})
	require.NoError(t, err)
	_, err = logs.Create(ctx, &domain.WorkoutLog{
		UserID: user.ID, Duration: 45,
		Exercises: []domain.LogExercise{{ExerciseID: exerciseID, Sets: []domain.LogSet{{Weight: 60, Reps: 10}}}},
	})
	require.NoError(t, err)
	_, err = progress.Create(ctx, &domain.Progress{UserID: user.ID})
	require.NoError(t, err)

	otherExerciseID, err := exercises.Create(ctx, &domain.Exercise{UserID: other.ID, Name: "Bench"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))

	_, err = svc.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.Empty(t, logsForUser(logs, user.ID))
	assert.Empty(t, workoutsForUser(workouts, user.ID))
	assert.Empty(t, progressForUser(progress, user.ID))
	ownedExercises, err := exercises.GetByUserID(ctx, user.ID, domain.ExerciseFilter{})
	require.NoError(t, err)
	assert.Empty(t, ownedExercises)

	// The other account is untouched.
	assert.Len(t, users.users, 1)
	stillThere, err := exercises.Exists(ctx, otherExerciseID)
	require.NoError(t, err)
	assert.True(t, stillThere)
}

func logsForUser(r *fakeWorkoutLogRepo, userID primitive.ObjectID) []domain.WorkoutLog {
	var out []domain.WorkoutLog
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

func workoutsForUser(r *fakeWorkoutRepo, userID primitive.ObjectID) []domain.Workout {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out
}

func progressForUser(r *fakeProgressRepo, userID primitive.ObjectID) []domain.Progress {
	var out []domain.Progress
	for _, p := range r.records {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}
