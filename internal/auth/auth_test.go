package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	service, err := NewService("secret", 0)
	assert.NoError(t, err)
	assert.NotNil(t, service)
	assert.Equal(t, 24*time.Hour, service.tokenExp)

	_, err = NewService("", time.Hour)
	assert.Error(t, err)
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := NewService("secret", time.Hour)

	token, err := service.GenerateToken("user-1", "ops@example.com", "admin")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Greater(t, claims.Exp, time.Now().Unix())

	// Bearer prefix is accepted
	_, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)

	_, err = service.ValidateToken("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ValidateToken_WrongSecret(t *testing.T) {
	issuer, _ := NewService("other-secret", time.Hour)
	verifier, _ := NewService("secret", time.Hour)

	token, err := issuer.GenerateToken("user-1", "", "")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	service, _ := NewService("secret", time.Hour)

	claims := tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestService_ValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	service, _ := NewService("secret", time.Hour)

	claims := tokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ValidateToken_RequiresSubject(t *testing.T) {
	service, _ := NewService("secret", time.Hour)

	token, err := service.GenerateToken("", "ops@example.com", "admin")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service, _ := NewService("secret", time.Hour)

	tests := []struct {
		name     string
		header   string
		expected string
		err      error
	}{
		{"valid bearer token", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"empty header", "", "", ErrMissingToken},
		{"wrong scheme", "Basic abc", "", ErrInvalidToken},
		{"missing token", "Bearer ", "", ErrInvalidToken},
		{"extra parts", "Bearer a b", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.ExtractTokenFromHeader(tt.header)
			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
