package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMethods(t *testing.T) {
	got, err := NormalizeMethods([]string{" QR ", "manual", "qr", "biometric"})
	require.NoError(t, err)
	// dedupe + urutan kanonik
	assert.Equal(t, []string{"manual", "qr", "biometric"}, got)

	_, err = NormalizeMethods([]string{"manual", "retina-scan"})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestValidateMethodSets_EmptyActiveWhileEnabled(t *testing.T) {
	err := ValidateMethodSets(true, nil, []string{"manual", "qr"})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestValidateMethodSets_EmptyActiveWhileDisabled(t *testing.T) {
	// saat disabled, active boleh kosong
	assert.NoError(t, ValidateMethodSets(false, nil, []string{"manual"}))
}

func TestValidateMethodSets_ActiveMustBeSubset(t *testing.T) {
	err := ValidateMethodSets(true, []string{"manual", "nfc"}, []string{"manual", "qr"})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	assert.NoError(t, ValidateMethodSets(true, []string{"manual"}, []string{"manual", "qr"}))
}
