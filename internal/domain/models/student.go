// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Engagement statuses for a lead. A record keeps its status after
// admission, but the funnel views only group non-admitted records.
const (
	StatusInterested    = "Interested"
	StatusNotInterested = "Not Interested"
	StatusReminder      = "Reminder"
	StatusFollowUp      = "Follow-up"
	StatusEnrolled      = "Enrolled"
)

// ValidStatus reports whether s is one of the engagement statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusInterested, StatusNotInterested, StatusReminder, StatusFollowUp, StatusEnrolled:
		return true
	}
	return false
}

// Student represents both leads and admitted students. The Admitted flag
// is the only lifecycle distinction: false means lead, true means student.
//
// NOTE:
//   - Course holds the catalog course's display name as free text. There
//     is no foreign key; distribution views match on the string.
type Student struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Phone  string             `bson:"phone" json:"phone"`
	Email  string             `bson:"email" json:"email"`
	Course string             `bson:"course" json:"course"`
	Status string             `bson:"status" json:"status"` // one of the Status* constants
	Notes  string             `bson:"notes,omitempty" json:"notes,omitempty"`

	ReminderDate *time.Time `bson:"reminder_date,omitempty" json:"reminderDate,omitempty"`
	Remind       bool       `bson:"remind" json:"remind"`

	Admitted      bool       `bson:"admitted" json:"admitted"`
	JoiningDate   *time.Time `bson:"joining_date,omitempty" json:"joiningDate,omitempty"`
	Fee           float64    `bson:"fee,omitempty" json:"fee,omitempty"`
	ReferralBonus float64    `bson:"referral_bonus,omitempty" json:"referralBonus,omitempty"`
	ReferredBy    string     `bson:"referred_by,omitempty" json:"referredBy,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
