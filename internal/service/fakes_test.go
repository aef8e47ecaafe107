package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes implementing the same interfaces the Mongo
// repos do, including their lookup semantics (combined owner filter for
// exercises, id-only lookups elsewhere).

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == strings.ToLower(email) {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetOwned(_ context.Context, id, userID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok || exercise.UserID != userID {
		return nil, repository.ErrNotFound
	}
	e := exercise
	return &e, nil
}

func (r *fakeExerciseRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, f domain.ExerciseFilter) ([]domain.Exercise, error) {
	var result []domain.Exercise
	for _, exercise := range r.exercises {
		if exercise.UserID != userID {
			continue
		}
		if f.MuscleGroup != "" && exercise.MuscleGroup != f.MuscleGroup {
			continue
		}
		if f.Category != "" && exercise.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && exercise.Difficulty != f.Difficulty {
			continue
		}
		result = append(result, exercise)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeExerciseRepo) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := r.exercises[id]
	return ok, nil
}

func (r *fakeExerciseRepo) GetNamesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	for _, id := range ids {
		if exercise, ok := r.exercises[id]; ok {
			names[id] = exercise.Name
		}
	}
	return names, nil
}

func (r *fakeExerciseRepo) UpdateOwned(_ context.Context, exercise *domain.Exercise) error {
	existing, ok := r.exercises[exercise.ID]
	if !ok || existing.UserID != exercise.UserID {
		return repository.ErrNotFound
	}
	exercise.UpdatedAt = time.Now().UTC()
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *fakeExerciseRepo) DeleteOwned(_ context.Context, id, userID primitive.ObjectID) error {
	existing, ok := r.exercises[id]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *fakeExerciseRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	for id, exercise := range r.exercises {
		if exercise.UserID == userID {
			delete(r.exercises, id)
		}
	}
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]domain.Workout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	r.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w := workout
	return &w, nil
}

func (r *fakeWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	var result []domain.Workout
	for _, workout := range r.workouts {
		if workout.UserID == userID {
			result = append(result, workout)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	workout.UpdatedAt = time.Now().UTC()
	r.workouts[workout.ID] = *workout
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *fakeWorkoutRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	for id, workout := range r.workouts {
		if workout.UserID == userID {
			delete(r.workouts, id)
		}
	}
	return nil
}

type fakeWorkoutLogRepo struct {
	logs map[primitive.ObjectID]domain.WorkoutLog
}

func newFakeWorkoutLogRepo() *fakeWorkoutLogRepo {
	return &fakeWorkoutLogRepo{logs: make(map[primitive.ObjectID]domain.WorkoutLog)}
}

func (r *fakeWorkoutLogRepo) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if log.Date.IsZero() {
		log.Date = now
	}
	log.CreatedAt = now
	log.UpdatedAt = now
	r.logs[log.ID] = *log
	return log.ID, nil
}

func (r *fakeWorkoutLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l := log
	return &l, nil
}

func (r *fakeWorkoutLogRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	var result []domain.WorkoutLog
	for _, log := range r.logs {
		if log.UserID == userID {
			result = append(result, log)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *fakeWorkoutLogRepo) Update(_ context.Context, log *domain.WorkoutLog) error {
	if _, ok := r.logs[log.ID]; !ok {
		return repository.ErrNotFound
	}
	log.UpdatedAt = time.Now().UTC()
	r.logs[log.ID] = *log
	return nil
}

func (r *fakeWorkoutLogRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

func (r *fakeWorkoutLogRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	for id, log := range r.logs {
		if log.UserID == userID {
			delete(r.logs, id)
		}
	}
	return nil
}

type fakeProgressRepo struct {
	records map[primitive.ObjectID]domain.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[primitive.ObjectID]domain.Progress)}
}

func (r *fakeProgressRepo) Create(_ context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	progress.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if progress.Date.IsZero() {
		progress.Date = now
	}
	progress.CreatedAt = now
	progress.UpdatedAt = now
	r.records[progress.ID] = *progress
	return progress.ID, nil
}

func (r *fakeProgressRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Progress, error) {
	progress, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := progress
	return &p, nil
}

func (r *fakeProgressRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, from, to *time.Time) ([]domain.Progress, error) {
	var result []domain.Progress
	for _, progress := range r.records {
		if progress.UserID != userID {
			continue
		}
		if from != nil && progress.Date.Before(*from) {
			continue
		}
		if to != nil && progress.Date.After(*to) {
			continue
		}
		result = append(result, progress)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *fakeProgressRepo) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error) {
	records, err := r.GetByUserID(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, repository.ErrNotFound
	}
	return &records[0], nil
}

func (r *fakeProgressRepo) Update(_ context.Context, progress *domain.Progress) error {
	if _, ok := r.records[progress.ID]; !ok {
		return repository.ErrNotFound
	}
	progress.UpdatedAt = time.Now().UTC()
	r.records[progress.ID] = *progress
	return nil
}

func (r *fakeProgressRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeProgressRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	for id, progress := range r.records {
		if progress.UserID == userID {
			delete(r.records, id)
		}
	}
	return nil
}

// fakePhotoStorage records issued keys and deletions.
type fakePhotoStorage struct {
	uploads []string
	deleted []string
}

func (s *fakePhotoStorage) PresignUpload(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	s.uploads = append(s.uploads, objectKey)
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *fakePhotoStorage) PresignDownload(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakePhotoStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}
