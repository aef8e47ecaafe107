package service_test

import (
	"context"
	"testing"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExerciseService_CreateAndGet(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := service.NewExerciseService(repo)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	exercise, err := svc.Create(ctx, owner, service.ExerciseInput{
		Name:        "Développé couché",
		MuscleGroup: domain.MusclePectoraux,
		Category:    domain.CategoryMusculation,
		Difficulty:  domain.DifficultyIntermediaire,
	})
	require.NoError(t, err)
	assert.Equal(t, owner, exercise.UserID, "owner always comes from the identity")

	got, err := svc.Get(ctx, owner, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, exercise.ID, got.ID)
}

func TestExerciseService_CreateRequiresName(t *testing.T) {
	svc := service.NewExerciseService(newFakeExerciseRepo())

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), service.ExerciseInput{})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

// Cross-owner access to an exercise must be indistinguishable from a missing
// id: not-found, never forbidden.
func TestExerciseService_CrossOwnerIsNotFound(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := service.NewExerciseService(repo)
	ctx := context.Background()
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	exercise, err := svc.Create(ctx, userA, service.ExerciseInput{Name: "Squat"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, userB, exercise.ID)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	_, err = svc.Update(ctx, userB, exercise.ID, service.ExerciseInput{Name: "Stolen"})
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	err = svc.Delete(ctx, userB, exercise.ID)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	// Untouched for the rightful owner.
	got, err := svc.Get(ctx, userA, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, "Squat", got.Name)
}

func TestExerciseService_ListFiltersAreConjunctive(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := service.NewExerciseService(repo)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	seed := []service.ExerciseInput{
		{Name: "Squat", MuscleGroup: domain.MuscleJambes, Difficulty: domain.DifficultyIntermediaire},
		{Name: "Fente", MuscleGroup: domain.MuscleJambes, Difficulty: domain.DifficultyDebutant},
		{Name: "Curl", MuscleGroup: domain.MuscleBras, Difficulty: domain.DifficultyDebutant},
	}
	for _, input := range seed {
		_, err := svc.Create(ctx, owner, input)
		require.NoError(t, err)
	}

	// Both filters must match.
	result, err := svc.List(ctx, owner, domain.ExerciseFilter{
		MuscleGroup: domain.MuscleJambes,
		Difficulty:  domain.DifficultyDebutant,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Fente", result[0].Name)

	// Unfiltered list is sorted by name ascending.
	all, err := svc.List(ctx, owner, domain.ExerciseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Curl", all[0].Name)
	assert.Equal(t, "Fente", all[1].Name)
	assert.Equal(t, "Squat", all[2].Name)
}

func TestExerciseService_DeleteThenGet(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := service.NewExerciseService(repo)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	exercise, err := svc.Create(ctx, owner, service.ExerciseInput{Name: "Squat"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, exercise.ID))

	_, err = svc.Get(ctx, owner, exercise.ID)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}
