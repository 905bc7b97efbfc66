package investwise

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// InvestableShare is the part of the disposable income suggested for investment.
const InvestableShare = 0.8

// Income lists the monthly income sources.
type Income struct {
	Salary   Money `json:"salary"`
	Business Money `json:"business"`
	Other    Money `json:"other"`
}

// Total returns the sum of all income sources.
func (i Income) Total() Money {
	return i.Salary.Add(i.Business).Add(i.Other)
}

func (i Income) in(currency string) Income {
	return Income{Salary: i.Salary.In(currency), Business: i.Business.In(currency), Other: i.Other.In(currency)}
}

// Expenses lists the tracked monthly expenses.
type Expenses struct {
	Housing        Money `json:"housing"`
	Utilities      Money `json:"utilities"`
	Groceries      Money `json:"groceries"`
	Transportation Money `json:"transportation"`
	Other          Money `json:"other"`
}

// Total returns the sum of all expenses.
func (e Expenses) Total() Money {
	return e.Housing.Add(e.Utilities).Add(e.Groceries).Add(e.Transportation).Add(e.Other)
}

func (e Expenses) in(currency string) Expenses {
	return Expenses{
		Housing:        e.Housing.In(currency),
		Utilities:      e.Utilities.In(currency),
		Groceries:      e.Groceries.In(currency),
		Transportation: e.Transportation.In(currency),
		Other:          e.Other.In(currency),
	}
}

// FinancialData is the user's declared income and expenses.
type FinancialData struct {
	Currency string   `json:"currency"`
	Income   Income   `json:"income"`
	Expenses Expenses `json:"expenses"`
}

// UnmarshalJSON restores the currency of every amount from the Currency field.
func (f *FinancialData) UnmarshalJSON(b []byte) error {
	type raw FinancialData
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*f = FinancialData{
		Currency: r.Currency,
		Income:   r.Income.in(r.Currency),
		Expenses: r.Expenses.in(r.Currency),
	}
	return nil
}

// Snapshot computes the financial snapshot of the data.
func (f FinancialData) Snapshot() FinancialSnapshot {
	return NewFinancialSnapshot(f.Income, f.Expenses)
}

// FinancialSnapshot is derived from income and expenses.
type FinancialSnapshot struct {
	TotalIncome      Money `json:"totalIncome"`
	TotalExpenses    Money `json:"totalExpenses"`
	DisposableIncome Money `json:"disposableIncome"` // may be negative
	// SuggestedMonthlyInvestment is InvestableShare of the disposable income,
	// rounded to a major unit, never negative.
	SuggestedMonthlyInvestment Money `json:"suggestedMonthlyInvestment"`
}

// NewFinancialSnapshot computes the snapshot of income and expenses.
func NewFinancialSnapshot(income Income, expenses Expenses) FinancialSnapshot {
	ti, te := income.Total(), expenses.Total()
	disposable := ti.Sub(te)
	return FinancialSnapshot{
		TotalIncome:                ti,
		TotalExpenses:              te,
		DisposableIncome:           disposable,
		SuggestedMonthlyInvestment: SuggestedInvestment(disposable),
	}
}

// SuggestedInvestment returns max(0, round(disposable*InvestableShare)).
func SuggestedInvestment(disposable Money) Money {
	return MaxMoney(M(0, disposable.Currency()), disposable.Scale(InvestableShare).Round())
}

// ParseMoney parses a decimal amount like "25000" or "1234.50".
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("invalid amount %q: must not be negative", s)
	}
	return M(d, currency), nil
}
