package investwise

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CashReturn is the constant yearly return of cash, in percent.
const CashReturn = 3.5

// YearlyReturn is the return of an asset class over one year, in percent.
type YearlyReturn struct {
	Year   string  `json:"year" yaml:"year"`
	Return float64 `json:"return" yaml:"return"`
}

// History holds the yearly return series of every table-driven asset class.
// Cash is not table-driven, see CashReturn.
//
// All series must cover the same years in the same order.
type History struct {
	Equity []YearlyReturn `json:"equity" yaml:"equity"`
	Bonds  []YearlyReturn `json:"bonds" yaml:"bonds"`
	Gold   []YearlyReturn `json:"gold" yaml:"gold"`
	Crypto []YearlyReturn `json:"crypto" yaml:"crypto"`
}

// ErrHistoryMismatch is returned when the series of a History are not aligned.
var ErrHistoryMismatch = errors.New("historical tables mismatch")

// DefaultHistory returns the reference 2018-2023 return tables.
func DefaultHistory() *History {
	return &History{
		Equity: []YearlyReturn{
			{"2018", -5.0}, {"2019", 12.5}, {"2020", 15.0}, {"2021", 22.3}, {"2022", -12.1}, {"2023", 14.2},
		},
		Bonds: []YearlyReturn{
			{"2018", 6.2}, {"2019", 5.8}, {"2020", 7.2}, {"2021", 4.2}, {"2022", 3.5}, {"2023", 6.8},
		},
		Gold: []YearlyReturn{
			{"2018", 3.5}, {"2019", 18.0}, {"2020", 24.5}, {"2021", -3.6}, {"2022", 0.7}, {"2023", 8.5},
		},
		Crypto: []YearlyReturn{
			{"2018", -73.0}, {"2019", 87.0}, {"2020", 302.0}, {"2021", 58.0}, {"2022", -65.0}, {"2023", 95.0},
		},
	}
}

// Series returns the return series of c. Cash has no series.
func (h *History) Series(c AssetClass) []YearlyReturn {
	switch c {
	case Equity:
		return h.Equity
	case Bonds:
		return h.Bonds
	case Gold:
		return h.Gold
	case Crypto:
		return h.Crypto
	}
	return nil
}

// Years returns the covered years, in order.
func (h *History) Years() []string {
	years := make([]string, len(h.Equity))
	for i, r := range h.Equity {
		years[i] = r.Year
	}
	return years
}

// Len returns the number of covered years.
func (h *History) Len() int { return len(h.Equity) }

// Validate checks that every series is non-empty and covers the same years in
// the same order.
func (h *History) Validate() error {
	if h == nil || len(h.Equity) == 0 {
		return fmt.Errorf("%w: no equity returns", ErrHistoryMismatch)
	}
	years := h.Years()
	for _, c := range AssetClasses {
		if c == Cash {
			continue
		}
		s := h.Series(c)
		if len(s) != len(years) {
			return fmt.Errorf("%w: %s has %d years, equity has %d", ErrHistoryMismatch, c, len(s), len(years))
		}
		for i, r := range s {
			if r.Year != years[i] {
				return fmt.Errorf("%w: %s year #%d is %q, want %q", ErrHistoryMismatch, c, i+1, r.Year, years[i])
			}
		}
	}
	return nil
}

// LoadHistory reads return tables from a YAML file shaped like:
//
//	equity:
//	  - {year: "2018", return: -5.0}
//	bonds:
//	  - ...
func LoadHistory(path string) (*History, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h := new(History)
	if err := yaml.Unmarshal(content, h); err != nil {
		return nil, fmt.Errorf("cannot parse returns file %q: %w", path, err)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("invalid returns file %q: %w", path, err)
	}
	return h, nil
}
