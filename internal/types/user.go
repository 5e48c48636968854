package types

import "time"

// User is an identity record. The password hash never leaves the service
// layer and is excluded from every response shape.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the wire shape returned by register, login and /me.
type PublicUser struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Public returns the response view of the user. Register includes createdAt;
// login omits it, matching the original wire shapes.
func (u *User) Public(withCreatedAt bool) PublicUser {
	pu := PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
	if withCreatedAt {
		createdAt := u.CreatedAt
		pu.CreatedAt = &createdAt
	}
	return pu
}
