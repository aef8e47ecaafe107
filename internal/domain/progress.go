package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Measurements are optional body measurements in centimeters.
type Measurements struct {
	Chest  *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist  *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips   *float64 `bson:"hips,omitempty" json:"hips,omitempty"`
	Arms   *float64 `bson:"arms,omitempty" json:"arms,omitempty"`
	Thighs *float64 `bson:"thighs,omitempty" json:"thighs,omitempty"`
}

// Progress is a timestamped body snapshot. IMC is derived at write time from
// the weight being recorded and the owner's height at that moment; it is
// never recomputed afterwards. PhotoKey references an object in the photo
// bucket and is never serialized directly.
type Progress struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Date             time.Time          `bson:"date" json:"date"`
	Weight           *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	IMC              *float64           `bson:"imc,omitempty" json:"imc,omitempty"`
	Measurements     *Measurements      `bson:"measurements,omitempty" json:"measurements,omitempty"`
	PhotoKey         string             `bson:"photoKey,omitempty" json:"-"`
	PhotoContentType string             `bson:"photoContentType,omitempty" json:"-"`
	PhotoURL         string             `bson:"-" json:"photoUrl,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputeBMI derives a body-mass index from a weight in kilograms and a
// height in centimeters, rounded to two decimals. It returns nil unless both
// inputs are positive.
func ComputeBMI(weightKg, heightCm float64) *float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return nil
	}
	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*100) / 100
	return &bmi
}
