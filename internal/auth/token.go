package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

const AccessTokenExpiry = 30 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer creates and parses HS256 bearer tokens. The subject claim
// carries the user_name.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	clock  clockwork.Clock
}

func NewTokenIssuer(secret string, clock clockwork.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: AccessTokenExpiry,
		clock:  clock,
	}
}

func (t *TokenIssuer) CreateAccessToken(userName string) (string, error) {
	now := t.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userName,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ParseAccessToken validates the token and returns its subject.
func (t *TokenIssuer) ParseAccessToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return t.secret, nil
		},
		jwt.WithTimeFunc(t.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
