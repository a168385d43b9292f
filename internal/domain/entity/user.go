package entity

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Role     string `json:"role" firestore:"role"`
	Status   string `json:"status" firestore:"status"`

	Name     string `json:"name,omitempty" firestore:"name,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Location string `json:"location,omitempty" firestore:"location,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role. The role field is
// the single source of truth; legacy boolean admin flags were folded into it.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHost reports whether the user may act on host-gated operations.
// Admins pass host checks.
func (u *User) IsHost() bool {
	return u.Role == RoleHost || u.Role == RoleAdmin
}
