package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/investwise"
	"github.com/etnz/investwise/renderer"
	"github.com/google/subcommands"
)

// assessCmd holds the flags for the 'assess' subcommand.
type assessCmd struct {
	answers string
}

func (*assessCmd) Name() string     { return "assess" }
func (*assessCmd) Synopsis() string { return "take the risk assessment questionnaire" }
func (*assessCmd) Usage() string {
	return `iw assess [-answers 1,2,3,4,4,3,2,1]

  Scores the risk tolerance questionnaire and updates the investment plan
  with the resulting risk profile and allocation.

  Without -answers the questions are asked interactively. See 'iw topic questionnaire'.
`
}

func (c *assessCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.answers, "answers", "", "comma separated answers, one per question, from 1 (cautious) to 4 (risk tolerant)")
}

func (c *assessCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var answers []investwise.Answer
	var err error
	if c.answers != "" {
		answers, err = investwise.ParseAnswers(c.answers)
	} else {
		answers, err = askAnswers(os.Stdout, bufio.NewReader(os.Stdin))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading answers: %v\n", err)
		return subcommands.ExitUsageError
	}

	profile, err := investwise.Score(answers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring answers: %v\n", err)
		return subcommands.ExitUsageError
	}

	st, state, err := openState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	state = investwise.UpdateRiskProfile(state, profile)
	if err := st.Save(ctx, state); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
		return subcommands.ExitFailure
	}
	logger.Info().Float64("score", profile.Score).Stringer("tier", profile.Tier).Msg("risk assessment completed")
	printMarkdown(renderer.ProfileMarkdown(profile))
	return subcommands.ExitSuccess
}

// askAnswers asks every question on w and reads the answers from r. Invalid
// answers are asked again.
func askAnswers(w io.Writer, r *bufio.Reader) ([]investwise.Answer, error) {
	answers := make([]investwise.Answer, 0, len(investwise.Questions))
	for _, q := range investwise.Questions {
		fmt.Fprintf(w, "\n%d/%d. %s\n", q.ID, len(investwise.Questions), q.Text)
		for i, o := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", i+1, o)
		}
		for {
			fmt.Fprint(w, "> ")
			line, err := r.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "" && err != nil {
				if errors.Is(err, io.EOF) {
					return nil, fmt.Errorf("question %d was not answered", q.ID)
				}
				return nil, err
			}
			n, convErr := strconv.Atoi(line)
			if convErr == nil && n >= 1 && n <= int(investwise.MaxAnswer) {
				answers = append(answers, investwise.Answer(n))
				break
			}
			fmt.Fprintf(w, "Please answer with a number between 1 and %d.\n", investwise.MaxAnswer)
			if err != nil {
				return nil, fmt.Errorf("question %d was not answered", q.ID)
			}
		}
	}
	return answers, nil
}
