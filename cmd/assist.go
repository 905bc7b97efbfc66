package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/investwise/agent"
	"github.com/google/subcommands"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the investment assistant" }
func (*assistCmd) Usage() string {
	return `iw assist [<question>...]

  Starts an interactive session with the investment assistant. The assistant
  can read the current plan, simulate allocations and compare strategies.
  Arguments are sent as the first question. Type 'bye' to exit.

  The API key is read from GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	session := agent.NewSession(newGenerator(ctx), *modelName, logger, agent.NewTools(state, h)...)
	a := agent.New(os.Stdout, os.Stdin, session)
	if err := a.Run(ctx, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
