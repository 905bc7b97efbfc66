package investwise

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency amounts are expressed in when none is given.
const DefaultCurrency = "INR"

// Money represents a monetary value.
//
// An empty currency is weak: it adopts the currency of the other operand.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	}
	return decimal.Zero
}

// currency returns the money's currency, DefaultCurrency if it has none.
func (m Money) currency() money.Currency {
	code := m.cur
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// String returns the string representation of the money value, e.g. "₹24,000.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Simple wrapper around decimal.Decimal

func (m Money) Currency() string                { return m.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) AsFloat() float64                { return m.value.InexactFloat64() }

// Equal reports whether m and n hold the same amount in compatible currencies.
func (m Money) Equal(n Money) bool {
	return m.value.Equal(n.value) && (m.cur == n.cur || m.cur == "" || n.cur == "")
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Scale multiplies the amount by a factor.
func (m Money) Scale(f float64) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(f)), cur: m.cur}
}

// Round rounds to the nearest major unit, halves away from zero.
func (m Money) Round() Money { return Money{value: m.value.Round(0), cur: m.cur} }

// In returns the same amount expressed in currency. It is meant to give a
// currency to a currency-less amount.
func (m Money) In(currency string) Money {
	if m.cur != "" && currency != "" && m.cur != currency {
		panic("currency mismatch " + m.cur + " != " + currency)
	}
	return Money{value: m.value, cur: currency}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// MaxMoney returns the greatest of a and b.
func MaxMoney(a, b Money) Money {
	if a.LessThan(b) {
		return b
	}
	return a
}

// MarshalJSON encodes the amount as a plain JSON number, the currency is
// carried by the enclosing structure.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money{value: d}
	return nil
}
