package service

import (
	"context"
	"errors"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ExerciseInput carries the mutable fields of a catalog exercise. The owner
// always comes from the authenticated identity, never from the payload.
type ExerciseInput struct {
	Name        string
	Description string
	MuscleGroup domain.MuscleGroup
	Category    domain.Category
	Difficulty  domain.Difficulty
}

type ExerciseService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	Get(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context, userID primitive.ObjectID, filter domain.ExerciseFilter) ([]domain.Exercise, error)
	Update(ctx context.Context, userID, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, userID, exerciseID primitive.ObjectID) error
}

// exerciseService implements the ExerciseService interface. All per-id
// operations go through the repo's combined (id, owner) filter: an exercise
// belonging to someone else is reported as missing, never as forbidden.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) Create(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" {
		return nil, ErrValidationFailed
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}

	exercise := &domain.Exercise{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		MuscleGroup: input.MuscleGroup,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}

	return s.exerciseRepo.GetOwned(ctx, exerciseID, userID)
}

func (s *exerciseService) Get(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetOwned(ctx, exerciseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) List(ctx context.Context, userID primitive.ObjectID, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return exercises, nil
}

func (s *exerciseService) Update(ctx context.Context, userID, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.exerciseRepo.GetOwned(ctx, exerciseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.MuscleGroup = input.MuscleGroup
	existing.Category = input.Category
	existing.Difficulty = input.Difficulty

	if err := s.exerciseRepo.UpdateOwned(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *exerciseService) Delete(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	err := s.exerciseRepo.DeleteOwned(ctx, exerciseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
