package investwise

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// InitialValue is the index value a simulated portfolio starts from.
const InitialValue = 100.0

// YearResult is the simulated performance of an allocation over one year.
type YearResult struct {
	Year string `json:"year"`
	// Contributions of each asset class to the total, indexed by AssetClass,
	// each rounded to 2 decimals.
	Contributions [5]float64 `json:"contributions"`
	// Total weighted return, rounded to 2 decimals.
	Total float64 `json:"totalReturn"`
}

// Contribution returns the share of the yearly return brought by c.
func (y YearResult) Contribution(c AssetClass) float64 { return y.Contributions[c] }

// Point is a value of the cumulative portfolio index.
type Point struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// Simulation is the replay of an allocation over the historical tables.
//
// It is a derived value, Simulate always builds a new one.
type Simulation struct {
	Allocation  Allocation   `json:"allocation"`
	Years       []YearResult `json:"years"`
	Cumulative  []Point      `json:"cumulative"`
	AvgReturn   Percent      `json:"avgReturn"`
	BestReturn  Percent      `json:"bestReturn"`
	BestYear    string       `json:"bestYear"`
	WorstReturn Percent      `json:"worstReturn"`
	WorstYear   string       `json:"worstYear"`
	Volatility  Percent      `json:"volatility"`
	TotalGrowth Percent      `json:"totalGrowth"`
	CAGR        Percent      `json:"cagr"`
}

// AnnualReturns returns the yearly weighted returns in year order.
func (s *Simulation) AnnualReturns() []float64 {
	r := make([]float64, len(s.Years))
	for i, y := range s.Years {
		r[i] = y.Total
	}
	return r
}

// FinalValue returns the last value of the cumulative index.
func (s *Simulation) FinalValue() float64 {
	if len(s.Cumulative) == 0 {
		return InitialValue
	}
	return s.Cumulative[len(s.Cumulative)-1].Value
}

// AverageContribution returns the mean yearly contribution of c, in percent.
func (s *Simulation) AverageContribution(c AssetClass) Percent {
	if len(s.Years) == 0 {
		return 0
	}
	var sum float64
	for _, y := range s.Years {
		sum += y.Contributions[c]
	}
	return Percent(sum / float64(len(s.Years)))
}

// ContributionShare returns the part of the average return brought by c,
// clamped to [0,100].
func (s *Simulation) ContributionShare(c AssetClass) Percent {
	avg := stat.Mean(s.AnnualReturns(), nil)
	if avg == 0 || len(s.Years) == 0 {
		return 0
	}
	share := float64(s.AverageContribution(c)) / avg * 100
	return Percent(math.Min(100, math.Max(0, share)))
}

// Simulate replays an allocation over the historical tables.
//
// Each yearly return is the allocation weighted sum of the asset class returns,
// in AssetClasses order, cash yielding CashReturn. Yearly totals are rounded
// to 2 decimals before any statistic is computed. The cumulative index starts
// at InitialValue and compounds the yearly totals. A CAGR that is not positive
// is reported as 0.
func Simulate(a Allocation, h *History) (*Simulation, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	years := h.Years()
	sim := &Simulation{
		Allocation: a,
		Years:      make([]YearResult, len(years)),
		Cumulative: make([]Point, len(years)),
	}
	totals := make([]float64, len(years))

	for i, year := range years {
		yr := YearResult{Year: year}
		var total float64
		for _, c := range AssetClasses {
			ret := CashReturn
			if c != Cash {
				ret = h.Series(c)[i].Return
			}
			contrib := ret * (float64(a.Get(c)) / 100)
			total += contrib
			yr.Contributions[c] = round(contrib, 2)
		}
		yr.Total = round(total, 2)
		sim.Years[i] = yr
		totals[i] = yr.Total
	}

	value := InitialValue
	for i, r := range totals {
		value *= 1 + r/100
		sim.Cumulative[i] = Point{Year: years[i], Value: round(value, 2)}
	}

	best, worst := floats.MaxIdx(totals), floats.MinIdx(totals)
	var sum float64
	for _, r := range totals {
		sum += r
	}
	avg := round(sum/float64(len(totals)), 2)
	sim.AvgReturn = Percent(avg)
	sim.BestReturn, sim.BestYear = Percent(round(totals[best], 2)), years[best]
	sim.WorstReturn, sim.WorstYear = Percent(round(totals[worst], 2)), years[worst]
	// deviations are taken from the reported, rounded, average.
	sim.Volatility = Percent(round(math.Sqrt(stat.MomentAbout(2, totals, avg, nil)), 2))
	sim.TotalGrowth = Percent(round(value-InitialValue, 2))

	cagr := (math.Pow(value/InitialValue, 1/float64(len(totals))) - 1) * 100
	if !(cagr > 0) { // also catches NaN
		cagr = 0
	}
	sim.CAGR = Percent(round(cagr, 2))
	return sim, nil
}

// MustSimulate is like Simulate but panics on invalid input.
func MustSimulate(a Allocation, h *History) *Simulation {
	sim, err := Simulate(a, h)
	if err != nil {
		panic(fmt.Sprintf("simulate %v: %v", a, err))
	}
	return sim
}
