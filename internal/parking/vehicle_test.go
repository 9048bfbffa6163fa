package parking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVehicle_NormalizesPlate(t *testing.T) {
	v, err := NewVehicle("  abc1234 ")
	require.NoError(t, err)
	require.Equal(t, "ABC1234", v.LicensePlate())
	require.True(t, v.IsOldFormat())
	require.False(t, v.IsMercosulFormat())
	require.Equal(t, "ABC-1234", v.FormattedPlate())
}

func TestNewVehicle_MercosulFormat(t *testing.T) {
	v, err := NewVehicle("ABC1D23")
	require.NoError(t, err)
	require.True(t, v.IsMercosulFormat())
	require.False(t, v.IsOldFormat())
	require.Equal(t, "ABC-1D23", v.FormattedPlate())
}

func TestNewVehicle_RejectsInvalidPlates(t *testing.T) {
	for _, plate := range []string{"", "   ", "AB1234", "ABCD123", "ABC12345", "1231234", "ABC1DE3"} {
		_, err := NewVehicle(plate)
		require.ErrorIs(t, err, ErrInvalidArgument, "plate %q", plate)
	}
}

func TestVehicleCanPark(t *testing.T) {
	v, err := NewVehicle("XYZ9876")
	require.NoError(t, err)
	require.True(t, v.CanPark())
}
