package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edutech-cl/platform/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "edutech-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 7, Email: "maria@edutech.cl", Role: models.RoleAdmin}

	token, expiresIn, err := svc.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "maria@edutech.cl", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "edutech-test", claims.Issuer)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateToken(&models.User{ID: 1})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateToken(&models.User{ID: 1})
	assert.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "another-secret", AccessTokenExp: time.Hour})
	claims, err := other.ValidateToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.True(t, CheckPassword(hash, "s3cretpass"))
	assert.False(t, CheckPassword(hash, "wrongpass"))
}
