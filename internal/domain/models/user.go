// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile carries display details for an account.
type Profile struct {
	FirstName string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// ModulePermission is a per-module view/create/edit/delete grant. The SPA
// uses these to decide which screens and actions to show; the API does not
// enforce them per route.
type ModulePermission struct {
	Module    string `bson:"module" json:"module"`
	CanView   bool   `bson:"can_view" json:"canView"`
	CanCreate bool   `bson:"can_create" json:"canCreate"`
	CanEdit   bool   `bson:"can_edit" json:"canEdit"`
	CanDelete bool   `bson:"can_delete" json:"canDelete"`
}

// User is an admin-panel account. Username and Email are unique.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | employee
	Profile      Profile            `bson:"profile,omitempty" json:"profile"`
	Permissions  []ModulePermission `bson:"permissions,omitempty" json:"permissions,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// AdminModules lists every module an admin account is granted on seed.
var AdminModules = []string{
	"dashboard", "leads", "students", "courses", "posts", "users", "reports",
}

// FullPermissions returns a grant of every action on each named module.
func FullPermissions(modules []string) []ModulePermission {
	out := make([]ModulePermission, 0, len(modules))
	for _, m := range modules {
		out = append(out, ModulePermission{
			Module:    m,
			CanView:   true,
			CanCreate: true,
			CanEdit:   true,
			CanDelete: true,
		})
	}
	return out
}
