package investwise

import (
	"encoding/json"
	"testing"
)

// INR is a helper for test to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

func TestNewFinancialSnapshot(t *testing.T) {
	testCases := []struct {
		name          string
		income        Income
		expenses      Expenses
		totalIncome   Money
		totalExpenses Money
		disposable    Money
		suggested     Money
	}{
		{
			name:          "reference",
			income:        Income{Salary: INR(80000), Business: INR(0), Other: INR(5000)},
			expenses:      Expenses{Housing: INR(25000), Utilities: INR(5000), Groceries: INR(10000), Transportation: INR(5000), Other: INR(10000)},
			totalIncome:   INR(85000),
			totalExpenses: INR(55000),
			disposable:    INR(30000),
			suggested:     INR(24000),
		},
		{
			name:          "negative disposable is not clamped",
			income:        Income{Salary: INR(10000)},
			expenses:      Expenses{Housing: INR(12000)},
			totalIncome:   INR(10000),
			totalExpenses: INR(12000),
			disposable:    INR(-2000),
			suggested:     INR(0),
		},
		{
			// 0.8 * 1001 = 800.8
			name:          "rounds to the nearest unit",
			income:        Income{Salary: INR(1001)},
			totalIncome:   INR(1001),
			totalExpenses: INR(0),
			disposable:    INR(1001),
			suggested:     INR(801),
		},
		{
			// 0.8 * 1000.625 = 800.5
			name:          "rounds half up",
			income:        Income{Salary: INR(1000.625)},
			totalIncome:   INR(1000.625),
			totalExpenses: INR(0),
			disposable:    INR(1000.625),
			suggested:     INR(801),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewFinancialSnapshot(tc.income, tc.expenses)
			checks := []struct {
				name      string
				got, want Money
			}{
				{"TotalIncome", s.TotalIncome, tc.totalIncome},
				{"TotalExpenses", s.TotalExpenses, tc.totalExpenses},
				{"DisposableIncome", s.DisposableIncome, tc.disposable},
				{"SuggestedMonthlyInvestment", s.SuggestedMonthlyInvestment, tc.suggested},
			}
			for _, c := range checks {
				if !c.got.Equal(c.want) {
					t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
				}
			}
		})
	}
}

func TestFinancialData_JSONRoundTrip(t *testing.T) {
	f := InitialState().Financial
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var got FinancialData
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.Currency != f.Currency {
		t.Errorf("Currency = %q, want %q", got.Currency, f.Currency)
	}
	if got.Income.Salary.Currency() != "INR" || !got.Income.Salary.Equal(f.Income.Salary) {
		t.Errorf("Income.Salary = %v (%s), want %v", got.Income.Salary, got.Income.Salary.Currency(), f.Income.Salary)
	}
	if !got.Snapshot().SuggestedMonthlyInvestment.Equal(f.Snapshot().SuggestedMonthlyInvestment) {
		t.Errorf("round trip changed the snapshot: %v != %v", got.Snapshot(), f.Snapshot())
	}
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("1234.50", "INR")
	if err != nil {
		t.Fatalf("ParseMoney() error = %v", err)
	}
	if !m.Equal(INR(1234.5)) {
		t.Errorf("ParseMoney() = %v, want 1234.50", m)
	}
	for _, s := range []string{"", "abc", "-5"} {
		if _, err := ParseMoney(s, "INR"); err == nil {
			t.Errorf("ParseMoney(%q) should fail", s)
		}
	}
}
