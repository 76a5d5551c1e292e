// Package sessiontoken is the only place session tokens are minted or
// parsed. The token is a signed JWT carried in the session cookie.
package sessiontoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Lifetime = 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session")

type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func Generate(signingKey []byte, userID uint, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(signingKey)
}

func Parse(signingKey []byte, tokenString string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidSession
	}
	if claims.UserID == 0 {
		return Claims{}, ErrInvalidSession
	}

	return claims, nil
}
