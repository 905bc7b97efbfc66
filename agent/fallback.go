package agent

import (
	"slices"

	"github.com/etnz/investwise"
)

// Options proposed when the model cannot be reached.
var (
	largeCapFunds = []string{
		"HDFC Top 100 Fund - Large-cap fund with stable returns",
		"SBI Bluechip Fund - Diversified large-cap exposure",
		"Axis Bluechip Fund - Quality large-cap stocks",
	}
	flexiCapFunds = []string{
		"Parag Parikh Flexi Cap Fund - Multi-cap with international exposure",
		"Axis Midcap Fund - Growth-oriented midcap fund",
		"HDFC Balanced Advantage Fund - Dynamic asset allocation",
		"Kotak Equity Opportunities Fund - Flexible investment approach",
	}
	smallCapFunds = []string{
		"Nippon India Small Cap Fund - High growth potential",
		"Axis Small Cap Fund - Aggressive small-cap exposure",
		"SBI Small Cap Fund - Long-term wealth creation",
		"Kotak Emerging Equity Fund - Mid and small-cap focus",
	}
	debtInstruments = investwise.Suggestion{
		Category: "Debt Instruments",
		Options: []string{
			"HDFC Corporate Bond Fund - High-quality corporate bonds",
			"SBI Magnum Gilt Fund - Government securities for stability",
			"Axis Liquid Fund - Short-term liquidity management",
			"ICICI Prudential All Seasons Bond Fund - Duration management",
		},
	}
	goldInvestment = investwise.Suggestion{
		Category: "Gold Investment",
		Options: []string{
			"SBI Gold ETF - Direct gold price tracking",
			"HDFC Gold Fund - Gold fund of fund",
			"Nippon India Gold Savings Fund - Systematic gold investment",
			"Digital Gold - Convenient online gold purchase",
		},
	}
	cryptocurrency = investwise.Suggestion{
		Category: "Cryptocurrency (High Risk)",
		Options: []string{
			"Bitcoin (BTC) - Leading cryptocurrency",
			"Ethereum (ETH) - Smart contract platform",
			"Note: Crypto investments are highly volatile and speculative",
			"Consider only 5-10% allocation maximum",
		},
	}
	liquidFunds = investwise.Suggestion{
		Category: "Cash & Liquid Funds",
		Options: []string{
			"ICICI Prudential Liquid Fund - Short-term liquid investment",
			"Axis Liquid Fund - High liquidity with low risk",
		},
	}
	basicSuggestions = []investwise.Suggestion{
		{
			Category: "Equity Mutual Funds",
			Options: []string{
				"Nifty 50 Index Fund - Tracks the Nifty 50 index",
				"SBI Bluechip Fund - Large cap equity fund",
				"Axis Midcap Fund - Midcap opportunities",
			},
		},
		{
			Category: "Debt Instruments",
			Options: []string{
				"SBI Magnum Gilt Fund - Government securities",
				"HDFC Corporate Bond Fund - High quality corporate bonds",
			},
		},
		{
			Category: "Gold",
			Options: []string{
				"SBI Gold ETF - Physical gold investment",
				"HDFC Gold Fund - Fund of funds investing in gold ETFs",
			},
		},
		liquidFunds,
	}
)

// equityFunds returns the equity options matching a risk tier.
func equityFunds(t investwise.Tier) []string {
	switch t {
	case investwise.Conservative, investwise.ModeratelyConservative:
		return largeCapFunds
	case investwise.Moderate:
		return flexiCapFunds
	default:
		return smallCapFunds
	}
}

// FallbackSuggestions returns rule based suggestions for a request, one
// category per asset class with a non zero allocation.
//
// The returned slices are never shared with another call.
func FallbackSuggestions(req investwise.SuggestionRequest) []investwise.Suggestion {
	var result []investwise.Suggestion
	if req.EquityAllocation > 0 {
		result = append(result, investwise.Suggestion{Category: "Equity Mutual Funds", Options: equityFunds(req.RiskProfile)})
	}
	if req.BondsAllocation > 0 {
		result = append(result, debtInstruments)
	}
	if req.GoldAllocation > 0 {
		result = append(result, goldInvestment)
	}
	if req.CryptoAllocation > 0 {
		result = append(result, cryptocurrency)
	}
	if req.CashAllocation > 0 {
		result = append(result, liquidFunds)
	}
	if len(result) == 0 {
		result = slices.Clone(basicSuggestions)
	}
	for i := range result {
		result[i].Options = slices.Clone(result[i].Options)
	}
	return result
}
