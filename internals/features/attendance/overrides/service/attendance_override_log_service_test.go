package service

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymtrack_backend/internals/features/attendance/overrides/model"
)

func TestValidateReason(t *testing.T) {
	// reason kosong / terlalu pendek ditolak sebelum ada write apapun
	for _, bad := range []string{"", "   ", "short", strings.Repeat(" ", 3) + "abc    "} {
		err := ValidateReason(bad)
		require.Error(t, err, "reason=%q", bad)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
	}

	assert.NoError(t, ValidateReason("member lupa tap keluar"))
	// tepat di batas minimum
	assert.NoError(t, ValidateReason(strings.Repeat("x", MinReasonLength)))
	assert.Error(t, ValidateReason(strings.Repeat("x", MinReasonLength-1)))

	// batas dihitung per rune, bukan per byte
	assert.NoError(t, ValidateReason(strings.Repeat("é", MinReasonLength)))
	assert.Error(t, ValidateReason(strings.Repeat("é", MinReasonLength-1)))
}

func TestOverrideActionValid(t *testing.T) {
	for _, a := range model.AllActions {
		assert.True(t, a.Valid(), string(a))
	}
	assert.False(t, model.OverrideAction("promote").Valid())
	assert.False(t, model.OverrideAction("").Valid())
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	dur := 42
	s := model.SessionSnapshot{Status: "completed", Duration: &dur}

	raw, err := s.ToJSON()
	require.NoError(t, err)

	back, err := model.SnapshotFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "completed", back.Status)
	require.NotNil(t, back.Duration)
	assert.Equal(t, 42, *back.Duration)
	assert.Nil(t, back.CheckIn)
}
