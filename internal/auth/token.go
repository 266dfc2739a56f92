package auth // package auth implements the credential and token core of the API

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Verification failures are distinguishable for server-side logging, but the
// HTTP layer collapses all of them into a generic 401 so clients never learn
// why a token was rejected.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenService issues and verifies HS256 access tokens. The signing secret
// and TTL are fixed at construction from process configuration; issuer and
// verifier are the same process, so a single shared symmetric secret is
// enough and no key rotation scheme exists. Tokens carry only the standard
// claims sub (decimal user id), exp and iat, and are never stored server
// side: a token remains valid until its natural expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService from the signing secret and the
// access token TTL in minutes.
func NewTokenService(secret string, ttlMin int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMin) * time.Minute,
	}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue builds and signs an HS256 JWT for the given user valid from now
// until now+TTL. The subject claim is the decimal form of the user id so it
// round-trips through Verify unchanged.
func (s *TokenService) Issue(userID uint64, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses raw, checks the signature against the service secret and
// the expiry against now, and returns the encoded user id. The expiry bound
// is exclusive: a token is rejected from the exact expiry instant onward.
// Failures map to exactly one of ErrTokenExpired, ErrTokenSignature or
// ErrTokenMalformed.
func (s *TokenService) Verify(raw string, now time.Time) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// Pin HMAC; a token claiming any other algorithm is rejected
		// before its signature is even considered.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}
	if !tok.Valid || claims.ExpiresAt == nil {
		return 0, ErrTokenMalformed
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return 0, ErrTokenExpired
	}
	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || uid == 0 {
		return 0, ErrTokenMalformed
	}
	return uid, nil
}
