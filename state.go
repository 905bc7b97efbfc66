package investwise

// Suggestion is a category of investment options proposed to the user. The
// options are opaque display text.
type Suggestion struct {
	Category string   `json:"category"`
	Options  []string `json:"options"`
}

// InvestmentPlan is the plan derived from the user's risk profile.
type InvestmentPlan struct {
	RiskScore         float64      `json:"riskScore"`
	RiskProfile       Tier         `json:"riskProfile"`
	RiskDescription   string       `json:"riskDescription"`
	Allocation        Allocation   `json:"allocation"`
	MonthlyInvestment Money        `json:"monthlyInvestmentAmount"`
	Suggestions       []Suggestion `json:"suggestedInvestments"`
}

// SuggestionRequest is the payload handed to the suggestion collaborator.
type SuggestionRequest struct {
	MonthlyAmount    Money `json:"monthlyAmount"`
	RiskProfile      Tier  `json:"riskProfile"`
	EquityAllocation int   `json:"equityAllocation"`
	BondsAllocation  int   `json:"bondsAllocation"`
	GoldAllocation   int   `json:"goldAllocation"`
	CryptoAllocation int   `json:"cryptoAllocation"`
	CashAllocation   int   `json:"cashAllocation"`
}

// Allocation returns the allocation part of the request.
func (r SuggestionRequest) Allocation() Allocation {
	return Allocation{
		Equity: r.EquityAllocation,
		Bonds:  r.BondsAllocation,
		Gold:   r.GoldAllocation,
		Crypto: r.CryptoAllocation,
		Cash:   r.CashAllocation,
	}
}

// SuggestionRequest builds the suggestion payload of the plan.
func (p InvestmentPlan) SuggestionRequest() SuggestionRequest {
	return SuggestionRequest{
		MonthlyAmount:    p.MonthlyInvestment,
		RiskProfile:      p.RiskProfile,
		EquityAllocation: p.Allocation.Equity,
		BondsAllocation:  p.Allocation.Bonds,
		GoldAllocation:   p.Allocation.Gold,
		CryptoAllocation: p.Allocation.Crypto,
		CashAllocation:   p.Allocation.Cash,
	}
}

// State is everything the application knows about the user.
//
// It is an immutable value: the Update functions return a new State and never
// modify their argument.
type State struct {
	Financial                  FinancialData  `json:"financialData"`
	Plan                       InvestmentPlan `json:"investmentPlan"`
	HasCompletedRiskAssessment bool           `json:"hasCompletedRiskAssessment"`
}

// InitialState returns the state of a new user.
func InitialState() State { return NewState(DefaultCurrency) }

// NewState returns the state of a new user whose amounts are in cur.
func NewState(cur string) State {
	return State{
		Financial: FinancialData{
			Currency: cur,
			Income: Income{
				Salary:   M(80000, cur),
				Business: M(0, cur),
				Other:    M(5000, cur),
			},
			Expenses: Expenses{
				Housing:        M(25000, cur),
				Utilities:      M(5000, cur),
				Groceries:      M(10000, cur),
				Transportation: M(5000, cur),
				Other:          M(10000, cur),
			},
		},
		Plan: InvestmentPlan{
			Allocation:        Allocation{Equity: 40, Bonds: 30, Gold: 15, Crypto: 5, Cash: 10},
			MonthlyInvestment: M(0, cur),
		},
	}
}

// Snapshot returns the financial snapshot of the state.
func (s State) Snapshot() FinancialSnapshot { return s.Financial.Snapshot() }

// UpdateIncome replaces the income.
func UpdateIncome(s State, income Income) State {
	s.Financial.Income = income
	return s
}

// UpdateExpenses replaces the expenses.
func UpdateExpenses(s State, expenses Expenses) State {
	s.Financial.Expenses = expenses
	return s
}

// UpdateRiskProfile applies a completed risk assessment: the plan takes the
// profile and its allocation, and the monthly investment is recomputed from
// the current income and expenses.
func UpdateRiskProfile(s State, p RiskProfile) State {
	s.Plan.RiskScore = p.Score
	s.Plan.RiskProfile = p.Tier
	s.Plan.RiskDescription = p.Description
	s.Plan.Allocation = p.Allocation
	s.Plan.MonthlyInvestment = s.Snapshot().SuggestedMonthlyInvestment
	s.HasCompletedRiskAssessment = true
	return s
}

// UpdateSuggestions replaces the suggested investments.
func UpdateSuggestions(s State, suggestions []Suggestion) State {
	s.Plan.Suggestions = append([]Suggestion(nil), suggestions...)
	return s
}
