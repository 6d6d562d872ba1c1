package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/usermanager/user-management-api/internal/core/domain"
)

// ErrInvalidToken is returned for any bearer token that fails verification:
// bad signature, wrong algorithm, expired, or missing required claims. No
// partial claims are ever returned alongside it.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the typed payload embedded in a bearer token. Role is validated
// once at verification time; downstream code never re-parses raw claim maps.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserRole returns the validated role carried by the claims.
func (c *Claims) UserRole() domain.Role {
	r, _ := domain.ParseRole(c.Role)
	return r
}

// TokenIssuer mints and verifies HS256-signed bearer tokens. The signing key
// is fixed at construction and never mutated afterwards.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user's id and role.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature and expiry and returns the decoded claims. It is
// the sole gate between a bearer string and a trusted identity, and it fails
// closed.
func (t *TokenIssuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if _, ok := domain.ParseRole(claims.Role); !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
