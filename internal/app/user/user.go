/*
Package user contains the account record and its public projection.

The User struct is what the credential store holds; Public is the only shape that
ever leaves the server, so the password hash cannot be serialized by accident.
*/
package user

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by stores when no user matches.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by stores when the unique email constraint rejects an insert.
	ErrEmailTaken = errors.New("email already registered")
)

// User represents an account in the credential store.
type User struct {
	ID            string
	FullName      string
	Email         string
	PasswordHash  string
	ProfilePicURL string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Public is the client-facing view of a User.
type Public struct {
	ID            string  `json:"id"`
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	ProfilePicURL *string `json:"profilePicUrl"`
}

// Public returns the client-facing view of u; an unset picture is rendered as null.
func (u *User) Public() Public {
	p := Public{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
	if u.ProfilePicURL != "" {
		pic := u.ProfilePicURL
		p.ProfilePicURL = &pic
	}
	return p
}

// PublicList projects a slice of users.
func PublicList(users []User) []Public {
	out := make([]Public, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
