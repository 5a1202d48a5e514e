package utils

import (
	"chart-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateAccessJWT signs a token for subject. It backs the local dev tooling and tests;
// production tokens are issued by the identity provider with the same shared secret.
func GenerateAccessJWT(subject, secret string, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
	return token.SignedString([]byte(secret))
}

func GenerateExportObjectName(patientID string, now time.Time) string {
	return fmt.Sprintf(constvars.ExportObjectNameFormat, patientID, now.UTC().Format("20060102T150405")+"_"+uuid.NewString()[:8])
}
