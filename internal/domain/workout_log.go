package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogSet is one performed set: a weight (kg) moved for a number of reps.
type LogSet struct {
	Weight float64 `bson:"weight" json:"weight"`
	Reps   int     `bson:"reps" json:"reps"`
}

// LogExercise groups the sets performed for one exercise during a session.
// ExerciseName is populated on reads from the catalog, never stored.
type LogExercise struct {
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string             `bson:"-" json:"exerciseName,omitempty"`
	Sets         []LogSet           `bson:"sets" json:"sets"`
}

// WorkoutLog records one completed workout session. WorkoutID optionally
// points at the program the session followed; the reference may dangle if
// that program is later deleted.
type WorkoutLog struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	WorkoutID   *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	WorkoutName string              `bson:"-" json:"workoutName,omitempty"`
	Date        time.Time           `bson:"date" json:"date"`
	Duration    int                 `bson:"duration" json:"duration"` // minutes
	Exercises   []LogExercise       `bson:"exercises" json:"exercises"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// LogStats aggregates a user's session history.
type LogStats struct {
	TotalSeances   int        `json:"totalSeances"`
	TotalDuree     int        `json:"totalDuree"`
	MoyenneDuree   int        `json:"moyenneDuree"`
	DerniereSeance *time.Time `json:"derniereSeance,omitempty"`
}
