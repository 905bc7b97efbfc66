package investwise

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Percent is a percentage value, 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// round rounds v to places decimals, halves away from zero.
//
// The exact binary value of v is rounded, not its shortest decimal form:
// 1.005 is stored as 1.00499999999999989... and rounds to 1.00.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact := decimal.NewFromBigRat(new(big.Rat).SetFloat64(v), 30)
	f, _ := exact.Round(places).Float64()
	return f
}
