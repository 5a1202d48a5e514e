package utils

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// ParseJWTSubject verifies an HS256 token and returns its "sub" claim.
func ParseJWTSubject(tokenString, secret string) (string, error) {
	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	if claims.Subject == "" {
		return "", exceptions.ErrTokenSubjectMissing(nil)
	}

	return claims.Subject, nil
}
