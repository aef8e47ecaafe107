package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("access to this workout is forbidden")
)

// WorkoutInput carries the mutable fields of a workout program.
type WorkoutInput struct {
	Name        string
	Description string
	Exercises   []domain.WorkoutExercise
}

type WorkoutService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, userID, workoutID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error
}

// workoutService implements the WorkoutService interface. Per-id operations
// look the record up by id alone and compare the owner afterwards, so a
// missing id and a foreign id produce different errors (404 vs 403 at the
// API layer).
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// validateExerciseRefs checks that every referenced exercise exists in the
// catalog. Existence only: a program may legally reference another user's
// exercise.
func (s *workoutService) validateExerciseRefs(ctx context.Context, entries []domain.WorkoutExercise) error {
	for _, entry := range entries {
		exists, err := s.exerciseRepo.Exists(ctx, entry.ExerciseID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: exercise %s does not exist", ErrValidationFailed, entry.ExerciseID.Hex())
		}
	}
	return nil
}

func (s *workoutService) Create(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	if input.Name == "" || len(input.Exercises) == 0 {
		return nil, ErrValidationFailed
	}
	if err := s.validateExerciseRefs(ctx, input.Exercises); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Exercises:   input.Exercises,
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}

	return s.workoutRepo.GetByID(ctx, workoutID)
}

func (s *workoutService) Get(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

func (s *workoutService) Update(ctx context.Context, userID, workoutID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	if input.Name == "" || len(input.Exercises) == 0 {
		return nil, ErrValidationFailed
	}

	existing, err := s.Get(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	if err := s.validateExerciseRefs(ctx, input.Exercises); err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Exercises = input.Exercises

	if err := s.workoutRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes a program. Historical logs referencing it keep their
// dangling workoutId; that inconsistency is accepted.
func (s *workoutService) Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if _, err := s.Get(ctx, userID, workoutID); err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}
