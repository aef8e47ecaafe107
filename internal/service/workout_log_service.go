package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogNotFound     = errors.New("workout log not found")
	ErrLogAccessDenied = errors.New("access to this workout log is forbidden")
)

// Performed-set bounds for a session log.
const (
	maxLogDuration = 600 // minutes
	maxLogReps     = 100
	maxLogWeight   = 500 // kg
)

// WorkoutLogInput carries the mutable fields of a session log.
type WorkoutLogInput struct {
	WorkoutID *primitive.ObjectID
	Date      time.Time
	Duration  int
	Exercises []domain.LogExercise
	Notes     string
}

type WorkoutLogService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input WorkoutLogInput) (*domain.WorkoutLog, error)
	Get(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	Update(ctx context.Context, userID, logID primitive.ObjectID, input WorkoutLogInput) (*domain.WorkoutLog, error)
	Delete(ctx context.Context, userID, logID primitive.ObjectID) error
	Stats(ctx context.Context, userID primitive.ObjectID) (*domain.LogStats, error)
}

// workoutLogService implements the WorkoutLogService interface, with the
// same lookup-then-compare ownership rule as workoutService.
type workoutLogService struct {
	logRepo      repository.WorkoutLogRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutLogService creates a new instance of workoutLogService.
func NewWorkoutLogService(
	logRepo repository.WorkoutLogRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
) WorkoutLogService {
	return &workoutLogService{
		logRepo:      logRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// validate applies the session log rules: duration within 1-600 minutes, at
// least one exercise each carrying at least one set, reps 1-100, weight
// 0-500. A referenced workout must exist and be owned by the caller;
// referenced exercises only need to exist.
func (s *workoutLogService) validate(ctx context.Context, userID primitive.ObjectID, input WorkoutLogInput) error {
	if input.Duration < 1 || input.Duration > maxLogDuration {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrValidationFailed, maxLogDuration)
	}
	if len(input.Exercises) == 0 {
		return fmt.Errorf("%w: at least one exercise is required", ErrValidationFailed)
	}

	if input.WorkoutID != nil {
		workout, err := s.workoutRepo.GetByID(ctx, *input.WorkoutID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: workout %s does not exist", ErrValidationFailed, input.WorkoutID.Hex())
			}
			return err
		}
		if workout.UserID != userID {
			return fmt.Errorf("%w: workout %s does not belong to you", ErrValidationFailed, input.WorkoutID.Hex())
		}
	}

	for _, entry := range input.Exercises {
		exists, err := s.exerciseRepo.Exists(ctx, entry.ExerciseID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: exercise %s does not exist", ErrValidationFailed, entry.ExerciseID.Hex())
		}
		if len(entry.Sets) == 0 {
			return fmt.Errorf("%w: each exercise requires at least one set", ErrValidationFailed)
		}
		for _, set := range entry.Sets {
			if set.Reps < 1 || set.Reps > maxLogReps {
				return fmt.Errorf("%w: reps must be between 1 and %d", ErrValidationFailed, maxLogReps)
			}
			if set.Weight < 0 || set.Weight > maxLogWeight {
				return fmt.Errorf("%w: weight must be between 0 and %d", ErrValidationFailed, maxLogWeight)
			}
		}
	}

	return nil
}

// populate attaches exercise and workout names for display. Dangling
// references stay silent: the name is simply left empty.
func (s *workoutLogService) populate(ctx context.Context, logs []domain.WorkoutLog) error {
	var exerciseIDs []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool)
	for _, l := range logs {
		for _, e := range l.Exercises {
			if !seen[e.ExerciseID] {
				seen[e.ExerciseID] = true
				exerciseIDs = append(exerciseIDs, e.ExerciseID)
			}
		}
	}

	names, err := s.exerciseRepo.GetNamesByIDs(ctx, exerciseIDs)
	if err != nil {
		return err
	}

	for i := range logs {
		for j := range logs[i].Exercises {
			logs[i].Exercises[j].ExerciseName = names[logs[i].Exercises[j].ExerciseID]
		}
		if logs[i].WorkoutID != nil {
			workout, err := s.workoutRepo.GetByID(ctx, *logs[i].WorkoutID)
			if err == nil {
				logs[i].WorkoutName = workout.Name
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
	}
	return nil
}

func (s *workoutLogService) Create(ctx context.Context, userID primitive.ObjectID, input WorkoutLogInput) (*domain.WorkoutLog, error) {
	if err := s.validate(ctx, userID, input); err != nil {
		return nil, err
	}

	log := &domain.WorkoutLog{
		UserID:    userID,
		WorkoutID: input.WorkoutID,
		Date:      input.Date,
		Duration:  input.Duration,
		Exercises: input.Exercises,
		Notes:     input.Notes,
	}

	logID, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, logID)
}

func (s *workoutLogService) Get(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if log.UserID != userID {
		return nil, ErrLogAccessDenied
	}

	logs := []domain.WorkoutLog{*log}
	if err := s.populate(ctx, logs); err != nil {
		return nil, err
	}
	return &logs[0], nil
}

func (s *workoutLogService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	logs, err := s.logRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		return []domain.WorkoutLog{}, nil
	}
	if err := s.populate(ctx, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *workoutLogService) Update(ctx context.Context, userID, logID primitive.ObjectID, input WorkoutLogInput) (*domain.WorkoutLog, error) {
	existing, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrLogAccessDenied
	}

	if err := s.validate(ctx, userID, input); err != nil {
		return nil, err
	}

	existing.WorkoutID = input.WorkoutID
	if !input.Date.IsZero() {
		existing.Date = input.Date
	}
	existing.Duration = input.Duration
	existing.Exercises = input.Exercises
	existing.Notes = input.Notes

	if err := s.logRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}

	return s.Get(ctx, userID, logID)
}

func (s *workoutLogService) Delete(ctx context.Context, userID, logID primitive.ObjectID) error {
	existing, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrLogAccessDenied
	}

	if err := s.logRepo.Delete(ctx, logID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return nil
}

// Stats aggregates the caller's session history: count, summed duration,
// integer-rounded mean duration and the timestamp of the most recent
// session. The latest session is found by scanning stored dates, so it is
// correct even when records arrived out of order.
func (s *workoutLogService) Stats(ctx context.Context, userID primitive.ObjectID) (*domain.LogStats, error) {
	logs, err := s.logRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.LogStats{TotalSeances: len(logs)}
	if len(logs) == 0 {
		return stats, nil
	}

	var latest time.Time
	for _, l := range logs {
		stats.TotalDuree += l.Duration
		if l.Date.After(latest) {
			latest = l.Date
		}
	}
	stats.MoyenneDuree = int(math.Round(float64(stats.TotalDuree) / float64(len(logs))))
	stats.DerniereSeance = &latest

	return stats, nil
}
