package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	svc := NewTokenService("test_secret_key", "resourceshub", time.Hour, 24*time.Hour)

	pair, err := svc.GeneratePair("user-1")
	require.NoError(t, err)

	claims, err := svc.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	refresh, err := svc.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refresh.UserID)

	_, err = svc.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsExpiredAndForeign(t *testing.T) {
	svc := NewTokenService("test_secret_key", "resourceshub", time.Minute, time.Hour)
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	pair, err := svc.GeneratePair("user-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	exp, err := svc.ExpiresAt(pair.AccessToken)
	require.NoError(t, err)
	assert.WithinDuration(t, issued.Add(time.Minute), exp, time.Second)

	other := NewTokenService("another_secret", "resourceshub", time.Hour, time.Hour)
	foreign, err := other.GeneratePair("user-1")
	require.NoError(t, err)
	svc.now = time.Now
	_, err = svc.ParseAccess(foreign.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenService("test_secret_key", "someone-else", time.Hour, time.Hour)
	pair, err = wrongIssuer.GeneratePair("user-1")
	require.NoError(t, err)
	_, err = svc.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
