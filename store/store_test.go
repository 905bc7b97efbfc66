package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/etnz/investwise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func assessedState(t *testing.T) investwise.State {
	t.Helper()
	p, err := investwise.Score([]investwise.Answer{4, 4, 3, 4, 4, 3, 4, 4})
	require.NoError(t, err)
	s := investwise.UpdateIncome(investwise.InitialState(), investwise.Income{
		Salary:   investwise.M(120000, "INR"),
		Business: investwise.M(15000.5, "INR"),
		Other:    investwise.M(0, "INR"),
	})
	s = investwise.UpdateRiskProfile(s, p)
	return investwise.UpdateSuggestions(s, []investwise.Suggestion{
		{Category: "Gold Investment", Options: []string{"SBI Gold ETF - Direct gold price tracking"}},
	})
}

func TestLoad_Empty(t *testing.T) {
	s := setupStore(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err)

	want := investwise.InitialState()
	assert.False(t, got.HasCompletedRiskAssessment)
	assert.Equal(t, want.Plan.Allocation, got.Plan.Allocation)
	assert.True(t, got.Snapshot().SuggestedMonthlyInvestment.Equal(want.Snapshot().SuggestedMonthlyInvestment))
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	want := assessedState(t)

	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)

	assert.True(t, got.HasCompletedRiskAssessment)
	assert.Equal(t, want.Plan.RiskProfile, got.Plan.RiskProfile)
	assert.Equal(t, want.Plan.RiskScore, got.Plan.RiskScore)
	assert.Equal(t, want.Plan.RiskDescription, got.Plan.RiskDescription)
	assert.Equal(t, want.Plan.Allocation, got.Plan.Allocation)
	assert.Equal(t, want.Plan.Suggestions, got.Plan.Suggestions)
	assert.Equal(t, "INR", got.Plan.MonthlyInvestment.Currency())
	assert.True(t, want.Plan.MonthlyInvestment.Equal(got.Plan.MonthlyInvestment), "MonthlyInvestment = %v, want %v", got.Plan.MonthlyInvestment, want.Plan.MonthlyInvestment)
	assert.True(t, want.Financial.Income.Business.Equal(got.Financial.Income.Business))
	assert.Equal(t, "INR", got.Financial.Income.Business.Currency())
}

func TestSave_Overwrites(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.Save(ctx, assessedState(t)))
	require.NoError(t, s.Save(ctx, investwise.InitialState()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.HasCompletedRiskAssessment)
	assert.Empty(t, got.Plan.Suggestions)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	require.NoError(t, s.Save(ctx, assessedState(t)))

	require.NoError(t, s.Reset(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.HasCompletedRiskAssessment)
	assert.Equal(t, investwise.InitialState().Plan.Allocation, got.Plan.Allocation)
}

func TestLoad_PartialDocuments(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, KeyHasCompletedRiskAssessment, "true")
	require.NoError(t, err)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.HasCompletedRiskAssessment)
	assert.Equal(t, investwise.InitialState().Financial.Currency, got.Financial.Currency)
}

func TestLoad_InvalidDocument(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, KeyInvestmentPlan, "{not json")
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.ErrorContains(t, err, KeyInvestmentPlan)
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "investwise.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, assessedState(t)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.HasCompletedRiskAssessment)
}

func TestLoadOr(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	got, err := s.LoadOr(ctx, investwise.NewState("EUR"))
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Financial.Currency)
	assert.Equal(t, "EUR", got.Financial.Income.Salary.Currency())

	// stored financial data wins over the initial state
	require.NoError(t, s.Save(ctx, investwise.InitialState()))
	_, err = s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, KeyInvestmentPlan)
	require.NoError(t, err)

	got, err = s.LoadOr(ctx, investwise.NewState("EUR"))
	require.NoError(t, err)
	assert.Equal(t, "INR", got.Financial.Currency)
	assert.Equal(t, "INR", got.Plan.MonthlyInvestment.Currency())
}
