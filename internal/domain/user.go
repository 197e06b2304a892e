package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user of the finances application.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	// Password is kept in plaintext because the application does not hash
	// credentials yet. This is a known security gap, not a design choice.
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates an unsaved User. The store assigns the ID on create.
func NewUser(name, email, password string) *User {
	return &User{
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
}

// IsSaved reports whether the store has assigned an ID to the user.
func (u *User) IsSaved() bool {
	return u != nil && u.ID != uuid.Nil
}
