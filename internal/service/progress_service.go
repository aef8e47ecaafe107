package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgressNotFound     = errors.New("progress record not found")
	ErrProgressAccessDenied = errors.New("access to this progress record is forbidden")
)

// ProgressInput carries a new body snapshot. Weight and Measurements are
// both optional; a measurement-only entry is valid.
type ProgressInput struct {
	Date         time.Time
	Weight       *float64
	Measurements *domain.Measurements
}

type ProgressService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.Progress, error)
	List(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]domain.Progress, error)
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error)
	Delete(ctx context.Context, userID, progressID primitive.ObjectID) error
	RequestPhotoUpload(ctx context.Context, userID, progressID primitive.ObjectID, fileName, contentType string) (uploadURL string, err error)
}

// progressService implements the ProgressService interface, with the same
// lookup-then-compare ownership rule as workoutService.
type progressService struct {
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
	photos       storage.PhotoStorage
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(progressRepo repository.ProgressRepository, userRepo repository.UserRepository, photos storage.PhotoStorage) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		userRepo:     userRepo,
		photos:       photos,
	}
}

// Create stores a snapshot and derives the BMI from the weight being
// recorded and the owner's height as stored right now. A later height change
// never rewrites past records.
func (s *progressService) Create(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.Progress, error) {
	progress := &domain.Progress{
		UserID:       userID,
		Date:         input.Date,
		Weight:       input.Weight,
		Measurements: input.Measurements,
	}

	if input.Weight != nil {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user.Height != nil {
			progress.IMC = domain.ComputeBMI(*input.Weight, *user.Height)
		}
	}

	progressID, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return nil, err
	}

	created, err := s.progressRepo.GetByID(ctx, progressID)
	if err != nil {
		return nil, err
	}
	s.attachPhotoURL(ctx, created)
	return created, nil
}

func (s *progressService) List(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]domain.Progress, error) {
	records, err := s.progressRepo.GetByUserID(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Progress{}
	}
	for i := range records {
		s.attachPhotoURL(ctx, &records[i])
	}
	return records, nil
}

func (s *progressService) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error) {
	progress, err := s.progressRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	s.attachPhotoURL(ctx, progress)
	return progress, nil
}

func (s *progressService) Delete(ctx context.Context, userID, progressID primitive.ObjectID) error {
	existing, err := s.progressRepo.GetByID(ctx, progressID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgressNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrProgressAccessDenied
	}

	if err := s.progressRepo.Delete(ctx, progressID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgressNotFound
		}
		return err
	}

	if existing.PhotoKey != "" {
		// Best effort: the record is already gone, an orphaned object is
		// only a storage leak.
		if err := s.photos.DeleteObject(ctx, existing.PhotoKey); err != nil {
			logrus.WithError(err).WithField("key", existing.PhotoKey).Warn("failed to delete progress photo")
		}
	}
	return nil
}

// RequestPhotoUpload issues a presigned PUT URL for attaching a photo to a
// progress record and stores the object key on the record.
func (s *progressService) RequestPhotoUpload(ctx context.Context, userID, progressID primitive.ObjectID, fileName, contentType string) (string, error) {
	if contentType == "" {
		return "", fmt.Errorf("%w: content type is required", ErrValidationFailed)
	}

	existing, err := s.progressRepo.GetByID(ctx, progressID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProgressNotFound
		}
		return "", err
	}
	if existing.UserID != userID {
		return "", ErrProgressAccessDenied
	}

	objectKey := fmt.Sprintf("progress/%s/%s%s", userID.Hex(), uuid.NewString(), path.Ext(fileName))

	uploadURL, err := s.photos.PresignUpload(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	if existing.PhotoKey != "" && existing.PhotoKey != objectKey {
		if err := s.photos.DeleteObject(ctx, existing.PhotoKey); err != nil {
			logrus.WithError(err).WithField("key", existing.PhotoKey).Warn("failed to delete replaced progress photo")
		}
	}

	existing.PhotoKey = objectKey
	existing.PhotoContentType = contentType
	if err := s.progressRepo.Update(ctx, existing); err != nil {
		return "", err
	}

	return uploadURL, nil
}

// attachPhotoURL fills the transient PhotoURL field with a presigned GET
// URL. Presign failures only cost the link, not the read.
func (s *progressService) attachPhotoURL(ctx context.Context, progress *domain.Progress) {
	if progress.PhotoKey == "" {
		return
	}
	url, err := s.photos.PresignDownload(ctx, progress.PhotoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		logrus.WithError(err).WithField("key", progress.PhotoKey).Warn("failed to presign progress photo")
		return
	}
	progress.PhotoURL = url
}
