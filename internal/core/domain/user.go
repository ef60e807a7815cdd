package domain

import "time"

// Identity is the authenticated actor attached to a request. It is carried
// inside tokens and never persisted alongside them.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Actor is the reference to an identity stamped on the records it creates.
type Actor struct {
	ID       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
}

// ActorOf returns the record stamp for id.
func ActorOf(id Identity) Actor {
	return Actor{ID: id.ID, Username: id.Username}
}

// User models a stored account. PasswordHash never leaves the service.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Contact      string    `json:"contact,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity returns the token identity for u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// NewUser carries the fields needed to create an account. Password is raw.
type NewUser struct {
	Username string
	Email    string
	Password string
	Role     Role
	Contact  string
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	Password     *string
	PasswordHash *string
	Role         *Role
	Contact      *string
}
