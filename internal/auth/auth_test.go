package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func staffUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Elira",
		Email: "elira@agency.test",
		Role:  models.RoleEditor,
	}
}

func TestNewService(t *testing.T) {
	service := NewService("", 0)
	assert.Equal(t, []byte(defaultSecret), service.jwtSecret)
	assert.Equal(t, 24*time.Hour, service.tokenExp)

	service = NewService("s3cret", time.Hour)
	assert.Equal(t, []byte("s3cret"), service.jwtSecret)
	assert.Equal(t, time.Hour, service.tokenExp)
}

func TestService_HashPassword(t *testing.T) {
	service := NewService("test", time.Hour)

	hash, err := service.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, service.CheckPassword("secret1", hash))
	assert.False(t, service.CheckPassword("secret2", hash))
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService("test", time.Hour)
	user := staffUser()

	token, err := service.GenerateToken(user)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, models.RoleEditor, claims.Role)

	_, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)

	_, err = service.ValidateToken("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)

	other := NewService("other", time.Hour)
	_, err = other.ValidateToken(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	service := NewService("test", time.Minute)
	service.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := service.GenerateToken(staffUser())
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := NewService("test", time.Hour)

	extracted, err := service.ExtractTokenFromHeader("Bearer valid-token")
	assert.NoError(t, err)
	assert.Equal(t, "valid-token", extracted)

	for _, header := range []string{"", "InvalidFormat", "Bearer ", "Basic abc"} {
		_, err = service.ExtractTokenFromHeader(header)
		assert.Equal(t, ErrInvalidToken, err, header)
	}
}

func TestService_ValidatePassword(t *testing.T) {
	service := NewService("test", time.Hour)

	assert.NoError(t, service.ValidatePassword("123456"))

	err := service.ValidatePassword("12345")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
}

func TestService_ValidateEmail(t *testing.T) {
	service := NewService("test", time.Hour)

	assert.NoError(t, service.ValidateEmail("test@example.com"))

	for _, email := range []string{"", "testexample.com", "test@", "test", "Ana <ana@example.com>"} {
		err := service.ValidateEmail(email)
		assert.Error(t, err, email)
	}
}

func TestService_ValidateName(t *testing.T) {
	service := NewService("test", time.Hour)

	assert.NoError(t, service.ValidateName("Al"))
	assert.Error(t, service.ValidateName(" A "))
	assert.Error(t, service.ValidateName(string(make([]byte, 101))))
}
