package agent

import (
	"context"
	"fmt"
	"math"

	"github.com/etnz/investwise"
	"github.com/etnz/investwise/renderer"
	"google.golang.org/genai"
)

// NewTools returns the functions the chat model can call to inspect the
// user's plan. They work on a snapshot of the state.
func NewTools(state investwise.State, h *investwise.History) []Function {
	return []Function{
		currentPlan(state),
		simulateAllocation(h),
		compareStrategies(state, h),
	}
}

func currentPlan(state investwise.State) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "current_plan",
			Description: `current_plan describes the user's finances and investment plan: income, expenses,
			suggested monthly investment, risk score and profile, asset allocation and suggested investments.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the user's plan.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			return renderer.PlanMarkdown(state), nil
		},
	}
}

func simulateAllocation(h *investwise.History) *Func {
	properties := make(map[string]*genai.Schema)
	var required []string
	for _, c := range investwise.AssetClasses {
		properties[c.String()] = &genai.Schema{
			Type:        genai.TypeInteger,
			Description: fmt.Sprintf("Percentage of the portfolio invested in %s, from 0 to 100.", c),
		}
		required = append(required, c.String())
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "simulate_allocation",
			Description: `simulate_allocation back-tests an asset allocation on historical yearly returns,
			starting from a value of 100. Percentages must sum to 100.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with yearly returns, growth, volatility and CAGR.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			a, err := parseAllocation(args)
			if err != nil {
				return "", err
			}
			sim, err := investwise.Simulate(a, h)
			if err != nil {
				return "", err
			}
			return renderer.SimulationMarkdown(sim), nil
		},
	}
}

func compareStrategies(state investwise.State, h *investwise.History) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "compare_strategies",
			Description: `compare_strategies back-tests the user's allocation next to four reference strategies: conservative, balanced, growth and aggressive.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table comparing the strategies.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			cmp, err := investwise.Compare(state.Plan.Allocation, h)
			if err != nil {
				return "", err
			}
			return renderer.ComparisonMarkdown(cmp), nil
		},
	}
}

// parseAllocation reads an allocation from function call arguments.
func parseAllocation(args map[string]any) (investwise.Allocation, error) {
	var values [5]int
	for i, c := range investwise.AssetClasses {
		v, ok := args[c.String()]
		if !ok {
			return investwise.Allocation{}, fmt.Errorf("argument %q is missing", c)
		}
		f, ok := v.(float64)
		if !ok {
			return investwise.Allocation{}, fmt.Errorf("argument %q is not a number but %T", c, v)
		}
		if f != math.Trunc(f) {
			return investwise.Allocation{}, fmt.Errorf("argument %q must be a whole percentage, got %v", c, f)
		}
		values[i] = int(f)
	}
	a := investwise.Allocation{Equity: values[0], Bonds: values[1], Gold: values[2], Crypto: values[3], Cash: values[4]}
	return a, a.Validate()
}
