package investwise

import "fmt"

// StrategyID identifies an entry of a strategy comparison.
type StrategyID string

const (
	AIRecommended StrategyID = "aiRecommended"
	// Reference strategies.
	ConservativeStrategy StrategyID = "conservative"
	BalancedStrategy     StrategyID = "balanced"
	GrowthStrategy       StrategyID = "growth"
	AggressiveStrategy   StrategyID = "aggressive"
)

// StrategyIDs lists every compared strategy in display order.
var StrategyIDs = []StrategyID{AIRecommended, ConservativeStrategy, BalancedStrategy, GrowthStrategy, AggressiveStrategy}

// Strategy is a named allocation.
type Strategy struct {
	ID          StrategyID `json:"id"`
	Name        string     `json:"name"`
	Allocation  Allocation `json:"allocation"`
	Description string     `json:"description,omitempty"`
}

// ReferenceStrategies are the fixed allocations a plan is compared to.
//
// They are not the tier allocations used by Score, both tables are kept as is.
var ReferenceStrategies = []Strategy{
	{
		ID:          ConservativeStrategy,
		Name:        "Conservative",
		Allocation:  Allocation{Equity: 20, Bonds: 60, Gold: 15, Crypto: 0, Cash: 5},
		Description: "Low-risk strategy focused on capital preservation with minimal volatility. Ideal for short-term goals or risk-averse investors.",
	},
	{
		ID:          BalancedStrategy,
		Name:        "Balanced",
		Allocation:  Allocation{Equity: 50, Bonds: 30, Gold: 10, Crypto: 0, Cash: 10},
		Description: "Moderate-risk strategy balancing growth and income. Suitable for medium-term goals with some tolerance for market fluctuations.",
	},
	{
		ID:          GrowthStrategy,
		Name:        "Growth",
		Allocation:  Allocation{Equity: 70, Bonds: 20, Gold: 5, Crypto: 0, Cash: 5},
		Description: "Higher-risk strategy prioritizing long-term growth. Designed for investors with longer time horizons who can withstand market volatility.",
	},
	{
		ID:          AggressiveStrategy,
		Name:        "Aggressive",
		Allocation:  Allocation{Equity: 80, Bonds: 5, Gold: 5, Crypto: 10, Cash: 0},
		Description: "Highest-risk strategy targeting maximum growth. For experienced investors with very long time horizons and high risk tolerance.",
	},
}

// StrategyResult is a strategy with its simulated metrics.
type StrategyResult struct {
	Strategy
	Metrics *Simulation `json:"metrics"`
}

// Comparison maps every strategy to its simulation.
type Comparison map[StrategyID]StrategyResult

// Ordered returns the results in StrategyIDs order.
func (c Comparison) Ordered() []StrategyResult {
	res := make([]StrategyResult, 0, len(c))
	for _, id := range StrategyIDs {
		if r, ok := c[id]; ok {
			res = append(res, r)
		}
	}
	return res
}

// Compare simulates the AI recommended allocation side by side with the
// reference strategies. Every strategy is simulated independently.
func Compare(ai Allocation, h *History) (Comparison, error) {
	strategies := append([]Strategy{{ID: AIRecommended, Name: "AI Recommended", Allocation: ai}}, ReferenceStrategies...)

	cmp := make(Comparison, len(strategies))
	for _, s := range strategies {
		sim, err := Simulate(s.Allocation, h)
		if err != nil {
			return nil, fmt.Errorf("cannot simulate %s strategy: %w", s.ID, err)
		}
		cmp[s.ID] = StrategyResult{Strategy: s, Metrics: sim}
	}
	return cmp, nil
}
