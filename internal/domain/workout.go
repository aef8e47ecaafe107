package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutExercise is one entry of a workout program: a reference to an
// exercise plus the planned targets for it.
type WorkoutExercise struct {
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Order       int                `bson:"order" json:"order"`
	Sets        int                `bson:"sets" json:"sets"`
	Reps        int                `bson:"reps" json:"reps"`
	RestSeconds int                `bson:"restSeconds" json:"restSeconds"`
}

// Workout is a reusable, user-owned workout program: an ordered list of
// exercise references with target sets/reps/rest. It is the template a
// WorkoutLog may later record an instance of.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
