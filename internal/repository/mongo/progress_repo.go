package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "progress"

// mongoProgressRepository implements repository.ProgressRepository.
// Same id-only lookup contract as the workout repo.
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new progress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a new progress record.
func (r *mongoProgressRepository) Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	if progress.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress user ID is required")
	}

	progress.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if progress.Date.IsZero() {
		progress.Date = now
	}
	progress.CreatedAt = now
	progress.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, progress)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a progress record by its ID, regardless of owner.
func (r *mongoProgressRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Progress, error) {
	var progress domain.Progress
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// GetByUserID retrieves a user's progress records, optionally limited to a
// date range, always sorted by date descending.
func (r *mongoProgressRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]domain.Progress, error) {
	filter := bson.M{"userId": userID}
	if from != nil || to != nil {
		dateFilter := bson.M{}
		if from != nil {
			dateFilter["$gte"] = *from
		}
		if to != nil {
			dateFilter["$lte"] = *to
		}
		filter["date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.Progress
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetLatestByUserID returns the single most recent record by stored date.
func (r *mongoProgressRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var progress domain.Progress
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, findOptions).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// Update replaces the mutable fields of a progress record. Used to attach a
// photo key after a presigned upload is issued.
func (r *mongoProgressRepository) Update(ctx context.Context, progress *domain.Progress) error {
	if progress.ID == primitive.NilObjectID {
		return errors.New("progress ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"date":             progress.Date,
			"weight":           progress.Weight,
			"imc":              progress.IMC,
			"measurements":     progress.Measurements,
			"photoKey":         progress.PhotoKey,
			"photoContentType": progress.PhotoContentType,
			"updatedAt":        time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": progress.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a progress record by id. Ownership must be checked by the caller.
func (r *mongoProgressRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes all progress records of a user.
func (r *mongoProgressRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// EnsureProgressIndexes creates necessary indexes for the progress collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
