package parking

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is an immutable amount plus ISO currency code. The amount is always
// stored at exactly two decimal places, rounded half-up, and is never
// negative. Every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, invalidArgf("money amount must not be negative, got %s", amount)
	}
	if !isCurrencyCode(currency) {
		return Money{}, invalidArgf("invalid currency code %q", currency)
	}
	return Money{amount: amount.Round(2), currency: currency}, nil
}

func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() string { return m.currency }

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, invalidArgf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract fails if the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, invalidArgf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, invalidArgf("subtraction would produce a negative amount")
	}
	return NewMoney(result, m.currency)
}

func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, invalidArgf("multiplication factor must not be negative, got %s", factor)
	}
	return NewMoney(m.amount.Mul(factor), m.currency)
}

// ApplyDiscount reduces the amount by pct percent. The percentage-to-factor
// division is carried at four decimal places before the product's final
// two-decimal rounding; totals depend on that two-stage rounding.
func (m Money) ApplyDiscount(pct decimal.Decimal) (Money, error) {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return Money{}, invalidArgf("discount percentage must be between 0 and 100, got %s", pct)
	}
	factor := decimal.NewFromInt(1).Sub(pct.DivRound(hundred, 4))
	return m.Multiply(factor)
}

// ApplyIncrease raises the amount by pct percent, with the same two-stage
// rounding as ApplyDiscount.
func (m Money) ApplyIncrease(pct decimal.Decimal) (Money, error) {
	if pct.IsNegative() {
		return Money{}, invalidArgf("increase percentage must not be negative, got %s", pct)
	}
	factor := decimal.NewFromInt(1).Add(pct.DivRound(hundred, 4))
	return m.Multiply(factor)
}
