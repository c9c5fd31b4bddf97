package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour*24)

	access, refresh, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTService_RejectsForeignToken(t *testing.T) {
	svc := NewJWTService("secret-one", time.Hour, time.Hour)
	other := NewJWTService("secret-two", time.Hour, time.Hour)

	access, _, err := other.GenerateTokens(1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}
