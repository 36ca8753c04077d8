package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims carries the acting user plus the id of the server-side token
// record. The record id is what makes a signed token revocable: logout
// deletes the record and the middleware rejects the token afterwards even
// though its signature is still valid.
type Claims struct {
	UserID  int64  `json:"user_id"`
	TokenID string `json:"token_id"`
	jwtlib.RegisteredClaims
}

func Generate(userID int64, tokenID string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

func Parse(tokenString string, secret []byte) (*Claims, error) {
	tok, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if t.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
