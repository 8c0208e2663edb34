package utils // package utils provides helper functions for token creation

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// OwnerToken represents a signed JWT owner token along with its expiry.
// In production these tokens are minted by the hosted auth provider;
// this helper exists for tests and operational tooling that need a
// token signed with the same secret.
type OwnerToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewOwnerToken builds and signs an HS256 JWT for a facility owner.  It
// takes the signing secret, the owner identifier and a TTL in minutes.
// The JWT carries standard claims: subject (sub), role, expiration
// (exp) and issued at (iat).
func NewOwnerToken(secret, ownerID string, ttlMin int) (OwnerToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  ownerID,
		"role": "owner",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return OwnerToken{}, err
	}
	return OwnerToken{Token: signed, Exp: exp}, nil
}
