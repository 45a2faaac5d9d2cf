package jwtutil

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "passkit"

var ErrMinSecret = errors.New("jwt secret must be at least 32 bytes")

type Signer struct {
	secret    []byte
	clockSkew time.Duration
	now       func() time.Time
}

func NewSigner(secret string, clockSkew time.Duration) (*Signer, error) {
	if len(secret) < 32 {
		return nil, ErrMinSecret
	}
	return &Signer{secret: []byte(secret), clockSkew: clockSkew, now: time.Now}, nil
}

// SignAdmin returns (tokenString, jti) for an operator.
func (s *Signer) SignAdmin(subject string, ttl time.Duration) (string, string, error) {
	return s.sign(subject, RoleAdmin, ttl)
}

func (s *Signer) sign(subject, role string, ttl time.Duration) (string, string, error) {
	jti, err := randJTI()
	if err != nil {
		return "", "", err
	}
	claims := NewAccessClaims(subject, role, jti, ttl, s.now())
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	str, err := t.SignedString(s.secret)
	return str, jti, err
}

// ParseAccess verifies HS256 signature, issuer and leeway, returning claims.
func (s *Signer) ParseAccess(tokenStr string) (*AccessClaims, error) {
	parser := jwt.NewParser(
		jwt.WithLeeway(s.clockSkew),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func randJTI() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
