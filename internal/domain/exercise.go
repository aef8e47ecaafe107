package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroup classifies which part of the body an exercise targets.
type MuscleGroup string

const (
	MusclePectoraux   MuscleGroup = "pectoraux"
	MuscleDos         MuscleGroup = "dos"
	MuscleJambes      MuscleGroup = "jambes"
	MuscleEpaules     MuscleGroup = "epaules"
	MuscleBras        MuscleGroup = "bras"
	MuscleAbdominaux  MuscleGroup = "abdominaux"
	MuscleCardio      MuscleGroup = "cardio"
	MuscleCorpsEntier MuscleGroup = "corps_entier"
)

// Category classifies the kind of training an exercise belongs to.
type Category string

const (
	CategoryMusculation Category = "musculation"
	CategoryCardio      Category = "cardio"
	CategorySouplesse   Category = "souplesse"
	CategoryEquilibre   Category = "equilibre"
)

// Difficulty grades an exercise.
type Difficulty string

const (
	DifficultyDebutant      Difficulty = "debutant"
	DifficultyIntermediaire Difficulty = "intermediaire"
	DifficultyAvance        Difficulty = "avance"
)

// Exercise is a user-owned exercise definition in the personal catalog.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup MuscleGroup        `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	Category    Category           `bson:"category,omitempty" json:"category,omitempty"`
	Difficulty  Difficulty         `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseFilter narrows a catalog listing. All supplied fields must match.
type ExerciseFilter struct {
	MuscleGroup MuscleGroup
	Category    Category
	Difficulty  Difficulty
}
