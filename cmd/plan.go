package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investwise"
	"github.com/etnz/investwise/agent"
	"github.com/etnz/investwise/renderer"
	"github.com/google/subcommands"
)

// planCmd holds the flags for the 'plan' subcommand.
type planCmd struct {
	json bool
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "display the investment plan" }
func (*planCmd) Usage() string {
	return `iw plan [-json]

  Displays the financial snapshot, the risk profile, the monthly investment
  split and the suggested investments.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the whole state as JSON")
}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, state, err := openState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	if c.json {
		if err := printJSON(state); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding state: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PlanMarkdown(state))
	return subcommands.ExitSuccess
}

// suggestCmd holds the flags for the 'suggest' subcommand.
type suggestCmd struct {
	offline bool
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "ask for investment suggestions matching the plan" }
func (*suggestCmd) Usage() string {
	return `iw suggest [-offline]

  Asks Gemini for investment options matching the plan allocation and stores
  them in the plan. Builtin suggestions are used when Gemini is not available.

  The API key is read from GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "use the builtin suggestions without calling Gemini")
}

func (c *suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, state, err := openState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	if !state.HasCompletedRiskAssessment {
		fmt.Fprintln(os.Stderr, "Complete the risk assessment first, see 'iw help assess'.")
		return subcommands.ExitFailure
	}

	req := state.Plan.SuggestionRequest()
	var suggestions []investwise.Suggestion
	if c.offline {
		suggestions = agent.FallbackSuggestions(req)
	} else {
		suggestions = agent.NewAdvisor(newGenerator(ctx), *modelName, logger).Suggest(ctx, req)
	}

	state = investwise.UpdateSuggestions(state, suggestions)
	if err := st.Save(ctx, state); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SuggestionsMarkdown(suggestions))
	return subcommands.ExitSuccess
}

// resetCmd is the 'reset' subcommand.
type resetCmd struct{}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "forget every stored data" }
func (*resetCmd) Usage() string {
	return `iw reset

  Deletes the stored income, expenses and plan. The next command starts from
  the initial state.
`
}

func (*resetCmd) SetFlags(f *flag.FlagSet) {}

func (*resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, _, err := openState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	if err := st.Reset(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting state: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("All data has been reset.")
	return subcommands.ExitSuccess
}

// printJSON prints v as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
