package parking

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount, currency string) Money {
	t.Helper()
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney_RoundsHalfUp(t *testing.T) {
	m := mustMoney(t, "10.005", "BRL")
	require.Equal(t, "10.01", m.Amount().StringFixed(2))
	require.Equal(t, "BRL", m.Currency())
}

func TestNewMoney_RejectsNegativeAmount(t *testing.T) {
	_, err := NewMoney(decimal.RequireFromString("-0.01"), "BRL")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewMoney_RejectsBadCurrency(t *testing.T) {
	for _, currency := range []string{"", "br", "BRLX", "br l", "brl"} {
		_, err := NewMoney(decimal.NewFromInt(1), currency)
		require.ErrorIs(t, err, ErrInvalidArgument, "currency %q", currency)
	}
}

func TestMoneyAdd(t *testing.T) {
	a := mustMoney(t, "10.50", "BRL")
	b := mustMoney(t, "2.25", "BRL")

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.True(t, sum.Equal(mustMoney(t, "12.75", "BRL")))
}

func TestMoneyAdd_CurrencyMismatch(t *testing.T) {
	a := mustMoney(t, "10.00", "BRL")
	b := mustMoney(t, "10.00", "USD")

	_, err := a.Add(b)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMoneySubtract(t *testing.T) {
	a := mustMoney(t, "10.00", "BRL")
	b := mustMoney(t, "2.50", "BRL")

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	require.True(t, diff.Equal(mustMoney(t, "7.50", "BRL")))
}

func TestMoneySubtract_NegativeResult(t *testing.T) {
	a := mustMoney(t, "2.50", "BRL")
	b := mustMoney(t, "10.00", "BRL")

	_, err := a.Subtract(b)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMoneyMultiply(t *testing.T) {
	m := mustMoney(t, "10.00", "BRL")

	product, err := m.Multiply(decimal.NewFromInt(3))
	require.NoError(t, err)
	require.True(t, product.Equal(mustMoney(t, "30.00", "BRL")))

	_, err = m.Multiply(decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestApplyIncrease(t *testing.T) {
	m := mustMoney(t, "10.00", "BRL")

	increased, err := m.ApplyIncrease(decimal.NewFromInt(10))
	require.NoError(t, err)
	require.True(t, increased.Equal(mustMoney(t, "11.00", "BRL")))

	_, err = m.ApplyIncrease(decimal.NewFromInt(-5))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestApplyDiscount(t *testing.T) {
	m := mustMoney(t, "10.00", "BRL")

	discounted, err := m.ApplyDiscount(decimal.NewFromInt(10))
	require.NoError(t, err)
	require.True(t, discounted.Equal(mustMoney(t, "9.00", "BRL")))

	_, err = m.ApplyDiscount(decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = m.ApplyDiscount(decimal.NewFromInt(101))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// The percentage-to-factor division rounds at four decimal places before the
// product's final two-decimal rounding: 12.345% -> factor 1.1235, not 1.12345.
func TestApplyIncrease_TwoStageRounding(t *testing.T) {
	m := mustMoney(t, "100.00", "BRL")

	increased, err := m.ApplyIncrease(decimal.RequireFromString("12.345"))
	require.NoError(t, err)
	require.Equal(t, "112.35", increased.Amount().StringFixed(2))
}

func TestMoneyImmutability(t *testing.T) {
	m := mustMoney(t, "10.00", "BRL")

	_, err := m.ApplyIncrease(decimal.NewFromInt(50))
	require.NoError(t, err)
	require.Equal(t, "10.00", m.Amount().StringFixed(2))
}

func TestMoneyString(t *testing.T) {
	require.Equal(t, "10.00 BRL", mustMoney(t, "10", "BRL").String())
}

func TestInvalidArgumentIsSingleKind(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(-1), "BRL")
	require.True(t, errors.Is(err, ErrInvalidArgument))
	require.False(t, errors.Is(err, ErrNotFound))
}
