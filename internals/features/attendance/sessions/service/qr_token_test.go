package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	gymID := uuid.New()
	memberID := uuid.New()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	tok, exp, err := IssueQRToken(secret, gymID, memberID, 0, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultQRTokenTTL), exp)

	gotGym, gotMember, err := ParseQRToken(secret, tok, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, gymID, gotGym)
	assert.Equal(t, memberID, gotMember)
}

func TestQRTokenExpired(t *testing.T) {
	secret := "test-secret"
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	tok, _, err := IssueQRToken(secret, uuid.New(), uuid.New(), 5*time.Minute, now)
	require.NoError(t, err)

	_, _, err = ParseQRToken(secret, tok, now.Add(6*time.Minute))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestQRTokenWrongSecret(t *testing.T) {
	now := time.Now()
	tok, _, err := IssueQRToken("secret-a", uuid.New(), uuid.New(), time.Minute, now)
	require.NoError(t, err)

	_, _, err = ParseQRToken("secret-b", tok, now)
	require.Error(t, err)
}

func TestQRTokenGarbage(t *testing.T) {
	_, _, err := ParseQRToken("secret", "bukan.jwt.valid", time.Now())
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestSweepDuration(t *testing.T) {
	// 8 jam → checkout tercatat dengan durasi 480 menit
	assert.Equal(t, 480, SweepDuration(8))
	assert.Equal(t, 360, SweepDuration(6))
}
