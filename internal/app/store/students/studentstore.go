package studentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/enrollhub/internal/app/system/normalize"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("students")}
}

var errBadStatus = errors.New(`status must be "Interested"|"Not Interested"|"Reminder"|"Follow-up"|"Enrolled"`)

// ListFilter narrows the list query. Zero values mean "no filter".
type ListFilter struct {
	Status   string
	Admitted *bool
}

// List returns records matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Student, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Admitted != nil {
		filter["admitted"] = *f.Admitted
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	students := []models.Student{}
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetByID loads a record by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Create inserts a new record after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, st models.Student) (models.Student, error) {
	st.ID = primitive.NewObjectID()
	st.Name = normalize.Name(st.Name)
	st.NameCI = text.Fold(st.Name)
	st.Email = normalize.Email(st.Email)
	st.Phone = normalize.Phone(st.Phone)
	st.Notes = htmlsanitize.Text(st.Notes)
	if st.Status == "" {
		st.Status = models.StatusInterested
	}
	if !models.ValidStatus(st.Status) {
		return models.Student{}, errBadStatus
	}

	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, st); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// Update holds the fields that can be changed on an existing record.
// Nil pointers leave the stored value untouched (partial merge).
type Update struct {
	Name         *string
	Phone        *string
	Email        *string
	Course       *string
	Status       *string
	Notes        *string
	ReminderDate *time.Time
	Remind       *bool
}

// Apply merges the update into a record. Returns the updated record, or
// mongo.ErrNoDocuments when the id is unknown.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Student, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Phone != nil {
		set["phone"] = normalize.Phone(*upd.Phone)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Course != nil {
		set["course"] = normalize.Name(*upd.Course)
	}
	if upd.Status != nil {
		if !models.ValidStatus(*upd.Status) {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.Notes != nil {
		set["notes"] = htmlsanitize.Text(*upd.Notes)
	}
	if upd.ReminderDate != nil {
		set["reminder_date"] = *upd.ReminderDate
	}
	if upd.Remind != nil {
		set["remind"] = *upd.Remind
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var st models.Student
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&st)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Admission carries the enrollment fields attached when a lead converts.
type Admission struct {
	JoiningDate   *time.Time
	Fee           *float64
	ReferralBonus *float64
	ReferredBy    *string
}

// Admit flips a record to admitted and merges the admission fields in one
// step. Returns the updated record, or mongo.ErrNoDocuments when the id is
// unknown.
func (s *Store) Admit(ctx context.Context, id primitive.ObjectID, adm Admission) (*models.Student, error) {
	set := bson.M{
		"admitted":   true,
		"updated_at": time.Now(),
	}
	if adm.JoiningDate != nil {
		set["joining_date"] = *adm.JoiningDate
	}
	if adm.Fee != nil {
		set["fee"] = *adm.Fee
	}
	if adm.ReferralBonus != nil {
		set["referral_bonus"] = *adm.ReferralBonus
	}
	if adm.ReferredBy != nil {
		set["referred_by"] = normalize.Name(*adm.ReferredBy)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var st models.Student
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&st)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Delete removes a record by ID. Returns the number of documents deleted
// (0 or 1). No cascade: course links are by name string only.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
