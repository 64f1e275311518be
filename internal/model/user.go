package model

import "time"

// Role is the closed set of authorization tags embedded in tokens and
// checked by the role middleware. Adding a role means adding a constant
// here and extending Valid.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User mirrors the 'users' table. Login is the unique authentication
// identifier; Username is the display name shown to other staff.
type User struct {
	ID           uint64
	Username     string
	Login        string
	PasswordHash string
	Speciality   string
	Role         Role
	IsOnline     bool
	CreatedAt    time.Time
}

// Public is the sanitized projection returned by the API. The password
// hash never leaves the repository layer.
type Public struct {
	ID         uint64 `json:"id"`
	Username   string `json:"username"`
	Login      string `json:"login"`
	Speciality string `json:"speciality"`
	Role       Role   `json:"role"`
	IsOnline   bool   `json:"is_online"`
}

// Sanitized returns the public projection of u.
func (u User) Sanitized() Public {
	return Public{
		ID:         u.ID,
		Username:   u.Username,
		Login:      u.Login,
		Speciality: u.Speciality,
		Role:       u.Role,
		IsOnline:   u.IsOnline,
	}
}
