package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	Session *Session
}

// New creates a new Agent.
//
// It takes the chat session, an io.Writer for the agent's output
// (e.g., os.Stdout), and an io.Reader for user input (e.g., os.Stdin).
func New(w io.Writer, r io.Reader, session *Session) *Agent {
	return &Agent{
		w:       w,
		r:       bufio.NewReader(r),
		Session: session,
	}
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent. The prompts are sent
// first, as if the user typed them.
func (a *Agent) Run(ctx context.Context, prompts ...string) error {
	defer a.Session.Close()
	fmt.Fprintln(a.w, "Welcome to InvestWise assist. Type 'bye' to exit.")

	// REPL loop
	for {
		// Print the prompt
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
		}

		if input == "bye" {
			return nil
		}

		reply, err := a.Session.Send(ctx, input)
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, reply.Text)
		if len(reply.FollowUps) > 0 {
			fmt.Fprintln(a.w)
			for _, f := range reply.FollowUps {
				fmt.Fprintf(a.w, "  > %s\n", f)
			}
		}
	}
}
