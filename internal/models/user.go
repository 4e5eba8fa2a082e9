// Package models contains data structures for the JoinWork domain.
package models

import "time"

// User roles. Ministry users exist for the portal login only; they own no
// profile record.
const (
	RoleGraduate = "graduate"
	RoleCompany  = "company"
	RoleMinistry = "ministry"
)

// User represents an account in the JoinWork platform. IDs are issued by the
// counter allocator, never by the database.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the trimmed view returned by auth endpoints.
type PublicUser struct {
	ID       int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Public returns the auth-endpoint view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}
