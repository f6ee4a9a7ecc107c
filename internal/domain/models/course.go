// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course catalog statuses.
const (
	CourseActive   = "active"
	CourseInactive = "inactive"
)

// Duration is how long a course runs, e.g. {6, "months"}.
type Duration struct {
	Value int    `bson:"value,omitempty" json:"value,omitempty"`
	Unit  string `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Fees is the canonical fee structure for a course. Handlers may accept a
// flat totalFee shortcut on update, but it is normalized into this shape
// at the boundary.
type Fees struct {
	Total        float64 `bson:"total" json:"total"`
	Currency     string  `bson:"currency,omitempty" json:"currency,omitempty"`
	Installments bool    `bson:"installments" json:"installments"`
}

// Course is a catalog entry. Code is globally unique (unique index).
type Course struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code             string             `bson:"code" json:"courseCode"`
	Name             string             `bson:"name" json:"name"`
	NameCI           string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Category         string             `bson:"category,omitempty" json:"category,omitempty"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	ShortDescription string             `bson:"short_description,omitempty" json:"shortDescription,omitempty"`
	Duration         Duration           `bson:"duration,omitempty" json:"duration"`
	Fees             Fees               `bson:"fees" json:"fees"`
	Curriculum       []string           `bson:"curriculum,omitempty" json:"curriculum,omitempty"`
	Prerequisites    []string           `bson:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	LearningOutcomes []string           `bson:"learning_outcomes,omitempty" json:"learningOutcomes,omitempty"`
	Status           string             `bson:"status" json:"status"` // active | inactive

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
