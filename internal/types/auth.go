package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the signed claim set embedded in access tokens.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login. Both identifier keys are
// accepted; clients in the wild send either.
type LoginRequest struct {
	Identifier      string `json:"identifier"`
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// LoginIdentifier returns whichever identifier field the client supplied.
func (r *LoginRequest) LoginIdentifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.EmailOrUsername
}

// AuthResponse is the success body of register and login.
type AuthResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
}
