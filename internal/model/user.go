package model

import "time"

// Role names stored on the user record and embedded in tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a member of the swap marketplace. PasswordHash is nullable:
// accounts created through an external identity provider carry ExternalID
// instead of a local password.
type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName      string     `json:"first_name" gorm:"size:255"`
	LastName       string     `json:"last_name" gorm:"size:255"`
	PhoneNumber    string     `json:"phone_number" gorm:"size:50"`
	PasswordHash   *string    `json:"-" gorm:"size:255"` // Never expose in JSON
	ExternalID     *string    `json:"-" gorm:"size:255"`
	Role           string     `json:"role" gorm:"size:50;not null;default:'user';index"`
	Points         int        `json:"points" gorm:"not null;default:0"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
	IsBanned       bool       `json:"is_banned" gorm:"not null;default:false"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSuspended reports whether the user is suspended at the given instant.
func (u *User) IsSuspended(now time.Time) bool {
	return u.SuspendedUntil != nil && now.Before(*u.SuspendedUntil)
}

// FullName joins first and last name for contact payloads.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
