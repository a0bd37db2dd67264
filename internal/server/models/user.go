// Package models holds the persistent domain types shared by repositories,
// services, and the REST layer. JSON tags follow the public API field names.
package models

import "time"

// User is an identity record. PasswordHash is never serialized; the API only
// ever sees the summary fields.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRef is the populated author/commenter reference embedded in resource
// payloads.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Ref returns the embeddable reference for u.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
}
