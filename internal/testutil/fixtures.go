package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateLead inserts a non-admitted student record with the given name,
// course, and engagement status.
func (f *Fixtures) CreateLead(ctx context.Context, name, course, status string) models.Student {
	return f.insertStudent(ctx, models.Student{
		Name:   name,
		Course: course,
		Status: status,
	})
}

// CreateLeadWithFee inserts a non-admitted record carrying a hypothetical fee.
func (f *Fixtures) CreateLeadWithFee(ctx context.Context, name, course string, fee float64) models.Student {
	return f.insertStudent(ctx, models.Student{
		Name:   name,
		Course: course,
		Status: models.StatusInterested,
		Fee:    fee,
	})
}

// CreateAdmitted inserts an admitted student with a fee and referral bonus.
func (f *Fixtures) CreateAdmitted(ctx context.Context, name, course string, fee, referralBonus float64) models.Student {
	now := time.Now().UTC()
	return f.insertStudent(ctx, models.Student{
		Name:          name,
		Course:        course,
		Status:        models.StatusEnrolled,
		Admitted:      true,
		JoiningDate:   &now,
		Fee:           fee,
		ReferralBonus: referralBonus,
	})
}

// CreateReminder inserts a lead with the remind flag set and the given
// reminder date.
func (f *Fixtures) CreateReminder(ctx context.Context, name string, remindAt time.Time) models.Student {
	return f.insertStudent(ctx, models.Student{
		Name:         name,
		Course:       "Test Course",
		Status:       models.StatusReminder,
		Remind:       true,
		ReminderDate: &remindAt,
	})
}

// CreateStudentAt inserts a record with an explicit creation timestamp,
// for trend-window tests.
func (f *Fixtures) CreateStudentAt(ctx context.Context, name string, createdAt time.Time) models.Student {
	f.t.Helper()

	s := models.Student{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Phone:     "5550100",
		Email:     "test@example.com",
		Course:    "Test Course",
		Status:    models.StatusInterested,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if _, err := f.db.Collection("students").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return s
}

func (f *Fixtures) insertStudent(ctx context.Context, s models.Student) models.Student {
	f.t.Helper()

	now := time.Now().UTC()
	s.ID = primitive.NewObjectID()
	s.NameCI = text.Fold(s.Name)
	if s.Phone == "" {
		s.Phone = "5550100"
	}
	if s.Email == "" {
		s.Email = "test@example.com"
	}
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := f.db.Collection("students").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return s
}

// CreateCourse inserts an active catalog course with the given code and name.
func (f *Fixtures) CreateCourse(ctx context.Context, code, name string) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Course{
		ID:       primitive.NewObjectID(),
		Code:     code,
		Name:     name,
		NameCI:   text.Fold(name),
		Category: "technology",
		Duration: models.Duration{Value: 6, Unit: "months"},
		Fees:     models.Fees{Total: 25000, Currency: "INR"},
		Status:   models.CourseActive,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("courses").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return c
}

// CreatePost inserts a feed post.
func (f *Fixtures) CreatePost(ctx context.Context, title, details string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Details:   details,
		Type:      models.PostText,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}

// CreateUser inserts an account storing the given pre-computed password hash.
func (f *Fixtures) CreateUser(ctx context.Context, username, email, passwordHash string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "employee",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
