package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservedUsername cannot be registered: /users/me routes to the caller's
// own profile.
const ReservedUsername = "me"

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Role        Role      `gorm:"type:varchar(30);default:'user';not null" json:"role"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds admin powers. Superusers count as
// admins regardless of their stored role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

func (u *User) IsUser() bool {
	return u.Role == RoleUser
}

// CanModify is the single object-level write check for user-generated
// content: the author, a moderator or an admin may change it.
func (u *User) CanModify(authorID string) bool {
	return u.ID == authorID || u.IsModerator() || u.IsAdmin()
}

// ValidUsername reports whether s is an acceptable username. The reserved
// name "me" is checked separately so callers can report it distinctly.
func ValidUsername(s string) bool {
	return s != "" && len(s) <= 150 && usernameRe.MatchString(s)
}
