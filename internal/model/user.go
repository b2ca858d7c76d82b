package model

import "time"

// User represents a dashboard account holder.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the table name compatible with the original schema.
func (User) TableName() string {
	return "users"
}

// Identity is the public projection of a user returned by the auth endpoints.
// The password hash never leaves the service layer.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Identity strips everything but id and email.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
