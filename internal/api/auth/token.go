package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finsight-app/finsight/config"
	"github.com/finsight-app/finsight/internal/types"
)

// TokenService issues and verifies signed, expiring identity assertions.
// There is no rotation or revocation: a compromised token stays valid until
// natural expiry.
type TokenService struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		cfg: cfg,
		now: time.Now,
	}
}

// Issue signs the user's claim set with an expiry of now + configured TTL.
// Pure function of claims, signing key and clock.
func (s *TokenService) Issue(user *types.User) (string, error) {
	now := s.now()
	claims := &types.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign token: %v", types.ErrInternal, err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the exact claim set that was
// signed. Bad signature, malformed payload and expiry all surface as
// ErrUnauthenticated with a short reason.
func (s *TokenService) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: Token has expired", types.ErrUnauthenticated)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: Malformed token", types.ErrUnauthenticated)
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, fmt.Errorf("%w: Invalid token signature", types.ErrUnauthenticated)
		default:
			return nil, fmt.Errorf("%w: Invalid or expired token", types.ErrUnauthenticated)
		}
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: Invalid token", types.ErrUnauthenticated)
	}
	return claims, nil
}
