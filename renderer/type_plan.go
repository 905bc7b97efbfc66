package renderer

import (
	"github.com/etnz/investwise"
)

// Plan is the view of a user's state used by the plan reports.
type Plan struct {
	Currency    string
	Snapshot    investwise.FinancialSnapshot
	Profile     investwise.RiskProfile
	Monthly     investwise.Money
	Split       []SplitRow
	Suggestions []investwise.Suggestion
}

// SplitRow is the monthly amount invested in one asset class.
type SplitRow struct {
	Class   string
	Percent int
	Amount  investwise.Money
}

// NewPlan builds the view of a state.
func NewPlan(s investwise.State) *Plan {
	p := &Plan{
		Currency: s.Financial.Currency,
		Snapshot: s.Snapshot(),
		Profile: investwise.RiskProfile{
			Score:       s.Plan.RiskScore,
			Tier:        s.Plan.RiskProfile,
			Description: s.Plan.RiskDescription,
			Allocation:  s.Plan.Allocation,
		},
		Monthly:     s.Plan.MonthlyInvestment,
		Suggestions: s.Plan.Suggestions,
	}
	p.Split = NewSplit(s.Plan.Allocation, s.Plan.MonthlyInvestment)
	return p
}

// NewSplit divides a monthly amount according to an allocation. Amounts are
// rounded to the unit.
func NewSplit(a investwise.Allocation, monthly investwise.Money) []SplitRow {
	rows := make([]SplitRow, 0, len(investwise.AssetClasses))
	for _, c := range investwise.AssetClasses {
		pct := a.Get(c)
		rows = append(rows, SplitRow{
			Class:   className(c),
			Percent: pct,
			Amount:  monthly.Scale(float64(pct) / 100).Round(),
		})
	}
	return rows
}

var classNames = map[investwise.AssetClass]string{
	investwise.Equity: "Equity",
	investwise.Bonds:  "Bonds",
	investwise.Gold:   "Gold",
	investwise.Crypto: "Crypto",
	investwise.Cash:   "Cash",
}

func className(c investwise.AssetClass) string { return classNames[c] }
