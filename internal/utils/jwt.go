package utils // package utils provides helper functions for token creation

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/targihasta/fair-lottery/internal/model"
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are encoded in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a session.  It takes
// the signing secret, the session (role, display name and optional
// exhibitor id) and a TTL in minutes.  The JWT includes the subject
// (sub, the exhibitor id or the role tag for admin sessions), role,
// name, expiration (exp) and issued at (iat) claims.
func NewAccessToken(secret string, sess model.Session, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	sub := sess.ExhibitorID
	if sub == "" {
		sub = string(sess.Role)
	}
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": string(sess.Role),
		"name": sess.Name,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
