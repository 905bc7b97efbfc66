package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investwise"
	"github.com/etnz/investwise/renderer"
	"github.com/google/subcommands"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	allocation string
	json       bool
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "replay an allocation over the historical returns" }
func (*simulateCmd) Usage() string {
	return `iw simulate [-allocation <equity/bonds/gold/crypto/cash>] [-json]

  Replays an allocation over the historical yearly returns and prints the
  yearly and cumulative performance. The plan allocation is used by default.

  See 'iw topic simulation'.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.allocation, "allocation", "", "allocation in percent, e.g. 50/30/10/5/5")
	f.BoolVar(&c.json, "json", false, "print the simulation as JSON")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, h, status := loadAnalysis(ctx, c.allocation)
	if status != subcommands.ExitSuccess {
		return status
	}

	sim, err := investwise.Simulate(a, h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating allocation: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := printJSON(sim); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding simulation: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SimulationMarkdown(sim))
	return subcommands.ExitSuccess
}

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	allocation string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare an allocation with the reference strategies" }
func (*compareCmd) Usage() string {
	return `iw compare [-allocation <equity/bonds/gold/crypto/cash>]

  Simulates the allocation and the four reference strategies over the
  historical returns. The plan allocation is used by default.

  See 'iw topic strategies'.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.allocation, "allocation", "", "allocation in percent, e.g. 50/30/10/5/5")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, h, status := loadAnalysis(ctx, c.allocation)
	if status != subcommands.ExitSuccess {
		return status
	}

	cmp, err := investwise.Compare(a, h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing strategies: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ComparisonMarkdown(cmp))
	return subcommands.ExitSuccess
}

// loadAnalysis returns the allocation to analyse and the historical returns.
func loadAnalysis(ctx context.Context, allocation string) (investwise.Allocation, *investwise.History, subcommands.ExitStatus) {
	var a investwise.Allocation
	if allocation != "" {
		var err error
		if a, err = investwise.ParseAllocation(allocation); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing allocation: %v\n", err)
			return a, nil, subcommands.ExitUsageError
		}
	} else {
		st, state, err := openState(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
			return a, nil, subcommands.ExitFailure
		}
		st.Close()
		a = state.Plan.Allocation
	}

	h, err := loadHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading historical returns: %v\n", err)
		return a, nil, subcommands.ExitFailure
	}
	return a, h, subcommands.ExitSuccess
}
