package investwise

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AssetClass identifies one of the five buckets a plan invests in.
type AssetClass int

const (
	Equity AssetClass = iota
	Bonds
	Gold
	Crypto
	Cash
)

// AssetClasses lists every asset class in canonical order.
var AssetClasses = []AssetClass{Equity, Bonds, Gold, Crypto, Cash}

var assetClassNames = [...]string{"equity", "bonds", "gold", "crypto", "cash"}

func (c AssetClass) String() string {
	if c < 0 || int(c) >= len(assetClassNames) {
		return fmt.Sprintf("AssetClass(%d)", int(c))
	}
	return assetClassNames[c]
}

// ParseAssetClass returns the asset class named s (case insensitive).
func ParseAssetClass(s string) (AssetClass, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range assetClassNames {
		if name == s {
			return AssetClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown asset class %q", s)
}

// ErrAllocation is returned when an allocation does not split exactly 100%.
var ErrAllocation = errors.New("invalid allocation")

// Allocation is the percentage split of investable funds across asset classes.
//
// A valid allocation has every percentage in [0,100] and sums to exactly 100.
type Allocation struct {
	Equity int `json:"equity" yaml:"equity"`
	Bonds  int `json:"bonds" yaml:"bonds"`
	Gold   int `json:"gold" yaml:"gold"`
	Crypto int `json:"crypto" yaml:"crypto"`
	Cash   int `json:"cash" yaml:"cash"`
}

// Get returns the percentage allocated to c.
func (a Allocation) Get(c AssetClass) int {
	switch c {
	case Equity:
		return a.Equity
	case Bonds:
		return a.Bonds
	case Gold:
		return a.Gold
	case Crypto:
		return a.Crypto
	case Cash:
		return a.Cash
	}
	panic(fmt.Sprintf("unknown asset class %d", int(c)))
}

// Sum returns the total of all percentages.
func (a Allocation) Sum() int {
	return a.Equity + a.Bonds + a.Gold + a.Crypto + a.Cash
}

// Validate checks the allocation invariants.
func (a Allocation) Validate() error {
	for _, c := range AssetClasses {
		if p := a.Get(c); p < 0 || p > 100 {
			return fmt.Errorf("%w: %s is %d%%, must be within [0,100]", ErrAllocation, c, p)
		}
	}
	if sum := a.Sum(); sum != 100 {
		return fmt.Errorf("%w: percentages sum to %d, want 100", ErrAllocation, sum)
	}
	return nil
}

func (a Allocation) String() string {
	return fmt.Sprintf("E: %d%% | B: %d%% | G: %d%% | C: %d%% | Cash: %d%%", a.Equity, a.Bonds, a.Gold, a.Crypto, a.Cash)
}

// ParseAllocation parses "equity/bonds/gold/crypto/cash", e.g. "50/30/10/5/5".
// The result is validated.
func ParseAllocation(s string) (Allocation, error) {
	fields := strings.Split(s, "/")
	if len(fields) != len(AssetClasses) {
		return Allocation{}, fmt.Errorf("%w: %q must have %d fields separated by '/'", ErrAllocation, s, len(AssetClasses))
	}
	var v [5]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Allocation{}, fmt.Errorf("%w: invalid %s percentage %q", ErrAllocation, AssetClasses[i], f)
		}
		v[i] = n
	}
	a := Allocation{Equity: v[0], Bonds: v[1], Gold: v[2], Crypto: v[3], Cash: v[4]}
	return a, a.Validate()
}
