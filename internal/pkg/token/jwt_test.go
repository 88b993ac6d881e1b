package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "testsecret"

func TestServiceIssueAndValidateToken(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	signed, err := svc.IssueToken("alex@gmail.com", []string{"ROLE_USER"})

	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := svc.ValidateToken(signed)

	assert.NoError(t, err)
	assert.Equal(t, "alex@gmail.com", claims.Subject)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
	assert.Equal(t, "customer-api", claims.Issuer)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	signed, err := NewService("another-secret", time.Hour).IssueToken("alex@gmail.com", nil)
	assert.NoError(t, err)

	_, err = NewService(testSecret, time.Hour).ValidateToken(signed)

	assert.Error(t, err)
}

func TestServiceValidateTokenRejectsExpiredToken(t *testing.T) {
	svc := NewService(testSecret, -time.Minute)

	signed, err := svc.IssueToken("alex@gmail.com", nil)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.Error(t, err)
}

func TestServiceValidateTokenRejectsUnexpectedSigningMethod(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "alex@gmail.com"})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = NewService(testSecret, time.Hour).ValidateToken(signed)

	assert.Error(t, err)
}

func TestServiceValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewService(testSecret, time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}
