package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/investwise"
	"github.com/etnz/investwise/renderer"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the investment plan as a PDF report" }
func (*exportCmd) Usage() string {
	return `iw export [-o <file.pdf>]

  Writes the plan, the simulation of its allocation and the strategy
  comparison to a PDF file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "investwise-plan.pdf", "output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, state, err := openState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}
	st.Close()

	h, err := loadHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading historical returns: %v\n", err)
		return subcommands.ExitFailure
	}
	sim, err := investwise.Simulate(state.Plan.Allocation, h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating allocation: %v\n", err)
		return subcommands.ExitFailure
	}
	cmp, err := investwise.Compare(state.Plan.Allocation, h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing strategies: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := renderer.WritePlanPDF(out, state, sim, cmp, time.Now()); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Plan exported to %s\n", c.output)
	return subcommands.ExitSuccess
}
