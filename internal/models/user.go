package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AnonymousID is the identifier carried by the anonymous sentinel. User ids
// are assigned by AUTO_INCREMENT starting at 1, so 0 never names a real user.
const AnonymousID = 0

// Anonymous returns the sentinel identity used when no session is bound.
func Anonymous() *User {
	return &User{ID: AnonymousID}
}

// IsAnonymous reports whether the user is the anonymous sentinel.
func (u *User) IsAnonymous() bool {
	return u == nil || u.ID == AnonymousID
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
