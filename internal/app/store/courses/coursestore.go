package coursestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/enrollhub/internal/app/system/normalize"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("courses")}
}

var (
	// ErrDuplicateCode is returned when creating a course whose code is
	// already in the catalog.
	ErrDuplicateCode = errors.New("a course with this code already exists")
	errBadStatus     = errors.New(`status must be "active"|"inactive"`)
)

// List returns catalog entries with the given status, sorted by name.
// An empty status lists everything.
func (s *Store) List(ctx context.Context, status string) ([]models.Course, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Names returns every catalog course name, for selectors and the
// dashboard distribution join.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		Name string `bson:"name"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}

// GetByCode loads a catalog entry by its natural key.
func (s *Store) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	var c models.Course
	if err := s.c.FindOne(ctx, bson.M{"code": normalize.Code(code)}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID loads a catalog entry by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var c models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a catalog entry after normalizing fields. Returns
// ErrDuplicateCode when the code is taken; nothing is persisted in that
// case.
func (s *Store) Create(ctx context.Context, c models.Course) (models.Course, error) {
	c.ID = primitive.NewObjectID()
	c.Code = normalize.Code(c.Code)
	c.Name = normalize.Name(c.Name)
	c.NameCI = text.Fold(c.Name)
	c.Description = htmlsanitize.Sanitize(c.Description)
	if c.Status == "" {
		c.Status = models.CourseActive
	}
	if c.Status != models.CourseActive && c.Status != models.CourseInactive {
		return models.Course{}, errBadStatus
	}
	if c.Fees.Currency == "" {
		c.Fees.Currency = "INR"
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Course{}, ErrDuplicateCode
		}
		return models.Course{}, err
	}
	return c, nil
}

// Update holds the fields that can be changed on a catalog entry.
// Nil pointers leave the stored value untouched.
type Update struct {
	Name             *string
	Category         *string
	Description      *string
	ShortDescription *string
	Duration         *models.Duration
	Fees             *models.Fees
	Curriculum       *[]string
	Prerequisites    *[]string
	LearningOutcomes *[]string
	Status           *string
}

// Apply merges the update into a catalog entry. Returns the updated
// entry, or mongo.ErrNoDocuments when the id is unknown.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Course, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*upd.Description)
	}
	if upd.ShortDescription != nil {
		set["short_description"] = htmlsanitize.Text(*upd.ShortDescription)
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	if upd.Fees != nil {
		set["fees"] = *upd.Fees
	}
	if upd.Curriculum != nil {
		set["curriculum"] = *upd.Curriculum
	}
	if upd.Prerequisites != nil {
		set["prerequisites"] = *upd.Prerequisites
	}
	if upd.LearningOutcomes != nil {
		set["learning_outcomes"] = *upd.LearningOutcomes
	}
	if upd.Status != nil {
		if *upd.Status != models.CourseActive && *upd.Status != models.CourseInactive {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Course
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a catalog entry by ID. Returns the number of documents
// deleted (0 or 1). Lead records referencing the course by name are left
// alone.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
