package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDefaultForGym(t *testing.T) {
	gymID := uuid.New()
	def := DefaultForGym(gymID)

	assert.Equal(t, gymID, def.AttendanceSettingGymID)
	assert.True(t, def.AttendanceSettingIsEnabled)
	assert.Equal(t, []string{"manual"}, []string(def.AttendanceSettingActiveMethods))
	assert.Equal(t, AllMethodStrings(), []string(def.AttendanceSettingAvailableMethods))
	assert.Equal(t, QRTypeDynamic, def.AttendanceSettingQRType)
	assert.False(t, def.AttendanceSettingQRAllowMultipleCheckins)
}

func TestMethodActive(t *testing.T) {
	m := DefaultForGym(uuid.New())
	assert.True(t, m.MethodActive(MethodManual))
	assert.False(t, m.MethodActive(MethodQR))
}

func TestAllowsConcurrent(t *testing.T) {
	m := DefaultForGym(uuid.New())
	assert.False(t, m.AllowsConcurrent(MethodQR))

	m.AttendanceSettingQRAllowMultipleCheckins = true
	assert.True(t, m.AllowsConcurrent(MethodQR))
	// exception hanya berlaku untuk QR
	assert.False(t, m.AllowsConcurrent(MethodManual))
	assert.False(t, m.AllowsConcurrent(MethodBiometric))
}

func TestAuthenticityTiers(t *testing.T) {
	assert.Equal(t, "low", MethodManual.AuthenticityTier())
	assert.Equal(t, "medium", MethodQR.AuthenticityTier())
	assert.Equal(t, "medium_high", MethodNFC.AuthenticityTier())
	assert.Equal(t, "high", MethodBiometric.AuthenticityTier())
}
