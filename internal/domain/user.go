package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is the training objective a user declares on their profile.
type Goal string

const (
	GoalPertePoids Goal = "perte_poids"
	GoalPriseMasse Goal = "prise_masse"
	GoalMaintien   Goal = "maintien"
	GoalEndurance  Goal = "endurance"
)

// User represents an account. Weight (kg) and Height (cm) form the body
// profile; Height feeds the BMI derivation on progress records.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Surname      string             `bson:"surname" json:"surname"`
	Email        string             `bson:"email" json:"email"` // stored lowercase, unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Age          *int               `bson:"age,omitempty" json:"age,omitempty"`
	Weight       *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	Height       *float64           `bson:"height,omitempty" json:"height,omitempty"`
	Goal         Goal               `bson:"goal,omitempty" json:"goal,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
