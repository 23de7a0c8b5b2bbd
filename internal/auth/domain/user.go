package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string // normalised, unique
	PasswordHash string // bcrypt or argon2id encoded
	CreatedAt    time.Time
}

// NewUser is what the store needs to create a user. The driver assigns the
// id and creation time.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
}

// PublicUser is the projection of a User that may leave the service.
type PublicUser struct {
	ID    string `json:"id" example:"01JBQ8Y3G6W4V5X2K7N9R0T1ZC"`
	Name  string `json:"name" example:"Ana"`
	Email string `json:"email" example:"ana@x.io"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NormalizeEmail trims and lower-cases an address so lookups and the unique
// index agree on what "the same email" means.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
