package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// GenerateSecretKey creates a random 32-byte signing secret. Tokens signed
// with a generated secret do not survive a restart.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// TokenIssuer mints and verifies the self-contained access tokens. The
// subject carried in a token is the account's email.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

// NewTokenIssuer creates a token issuer for the given symmetric secret and
// algorithm name (e.g. "HS256"). Unknown algorithm names are rejected.
func NewTokenIssuer(secret string, algorithm string, expiry time.Duration) (*TokenIssuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	return &TokenIssuer{
		secret: []byte(secret),
		method: method,
		expiry: expiry,
	}, nil
}

// Issue signs a token embedding the subject and an absolute expiry of
// now + the configured lifetime.
func (ti *TokenIssuer) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ti.expiry)),
	}

	token := jwt.NewWithClaims(ti.method, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Subject verifies a token and returns the subject it embeds. It returns
// ErrTokenExpired for a well-formed token past its expiry and
// ErrTokenMalformed for everything else, including a signature produced by
// a different secret or algorithm.
func (ti *TokenIssuer) Subject(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != ti.method.Alg() {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return ti.secret, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
