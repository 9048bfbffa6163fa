package parking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSector(t *testing.T, maxCapacity int) *Sector {
	t.Helper()
	sector, err := NewSector("A", mustMoney(t, "10.00", "BRL"), maxCapacity, "08:00", "22:00", 240)
	require.NoError(t, err)
	return sector
}

func TestNewSector(t *testing.T) {
	sector, err := NewSector("  a  ", mustMoney(t, "10.00", "BRL"), 4, "08:00", "22:00", 240)
	require.NoError(t, err)
	require.Equal(t, "A", sector.ID())
	require.Equal(t, 4, sector.MaxCapacity())
	require.Equal(t, 0, sector.CurrentOccupancy())
	require.True(t, sector.IsOpen())
}

func TestNewSector_Validation(t *testing.T) {
	price := mustMoney(t, "10.00", "BRL")

	_, err := NewSector("", price, 4, "08:00", "22:00", 240)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSector("A", Money{}, 4, "08:00", "22:00", 240)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSector("A", price, 0, "08:00", "22:00", 240)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSector("A", price, 4, "25:00", "22:00", 240)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSector("A", price, 4, "08:00", "8pm", 240)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSector("A", price, 4, "08:00", "22:00", 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSector("A", price, 4, "08:00", "22:00", 1441)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSectorOccupancyLifecycle(t *testing.T) {
	sector := newTestSector(t, 2)

	require.NoError(t, sector.IncrementOccupancy())
	require.Equal(t, 1, sector.CurrentOccupancy())
	require.True(t, sector.IsOpen())

	require.NoError(t, sector.IncrementOccupancy())
	require.True(t, sector.IsFull())
	require.False(t, sector.IsOpen())
	require.False(t, sector.CanAcceptVehicle())

	require.ErrorIs(t, sector.IncrementOccupancy(), ErrInvalidArgument)

	require.NoError(t, sector.DecrementOccupancy())
	require.Equal(t, 1, sector.CurrentOccupancy())
	require.True(t, sector.IsOpen())
	require.True(t, sector.CanAcceptVehicle())
}

func TestSectorDecrement_AtZero(t *testing.T) {
	sector := newTestSector(t, 2)
	require.ErrorIs(t, sector.DecrementOccupancy(), ErrInvalidArgument)
}

func TestSectorOccupancyPercentage(t *testing.T) {
	sector := newTestSector(t, 4)
	require.Equal(t, 0.0, sector.OccupancyPercentage())

	require.NoError(t, sector.IncrementOccupancy())
	require.Equal(t, 25.0, sector.OccupancyPercentage())
}

// Tier boundaries are inclusive below, exclusive above: exactly 25% already
// leaves the discount tier.
func TestSectorDynamicPrice_Tiers(t *testing.T) {
	sector := newTestSector(t, 4)

	price, err := sector.DynamicPrice()
	require.NoError(t, err)
	require.True(t, price.Equal(mustMoney(t, "9.00", "BRL")), "0%% occupancy should discount, got %s", price)

	require.NoError(t, sector.IncrementOccupancy()) // 25%
	price, err = sector.DynamicPrice()
	require.NoError(t, err)
	require.True(t, price.Equal(mustMoney(t, "10.00", "BRL")), "25%% occupancy should be base price, got %s", price)

	require.NoError(t, sector.IncrementOccupancy()) // 50%
	price, err = sector.DynamicPrice()
	require.NoError(t, err)
	require.True(t, price.Equal(mustMoney(t, "11.00", "BRL")), "50%% occupancy should add 10%%, got %s", price)

	require.NoError(t, sector.IncrementOccupancy()) // 75%
	price, err = sector.DynamicPrice()
	require.NoError(t, err)
	require.True(t, price.Equal(mustMoney(t, "12.50", "BRL")), "75%% occupancy should add 25%%, got %s", price)
}
