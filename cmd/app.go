// Package cmd implements the CLI application to plan investments.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/investwise"
	"github.com/etnz/investwise/agent"
	"github.com/etnz/investwise/store"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&incomeCmd{}, "finances")
	c.Register(&expensesCmd{}, "finances")

	c.Register(&assessCmd{}, "plan")
	c.Register(&planCmd{}, "plan")
	c.Register(&suggestCmd{}, "plan")
	c.Register(&exportCmd{}, "plan")
	c.Register(&resetCmd{}, "plan")

	c.Register(&simulateCmd{}, "analysis")
	c.Register(&compareCmd{}, "analysis")

	c.Register(&assistCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbPath      = flag.String("db", "investwise.db", "Path to the state database")
	returnsFile = flag.String("returns", "", "YAML file of yearly returns per asset class. Uses the builtin 2018-2023 table by default")
	modelName   = flag.String("model", agent.DefaultModel, "Gemini model used for suggestions and chat")
	currency    = flag.String("currency", investwise.DefaultCurrency, "Currency of the financial data")
	logLevel    = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	Verbose     = flag.Bool("v", false, "Verbose logging, same as -log-level=debug")
	raw         = flag.Bool("raw", false, "Print markdown as is, without rendering it for the terminal")
)

// envFlags maps global flags to the environment variable providing their default.
var envFlags = map[string]string{
	"db":        EnvDB,
	"returns":   EnvReturns,
	"model":     EnvModel,
	"currency":  EnvCurrency,
	"log-level": EnvLogLevel,
	"v":         EnvVerbose,
}

// Setup loads the .env file, gives the global flags that were not set on the
// command line their value from the environment, and sets up logging. It must
// be called after the flags are parsed.
func Setup(fs *flag.FlagSet) error {
	_ = godotenv.Load()

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for name, env := range envFlags {
		v, ok := os.LookupEnv(env)
		if set[name] || !ok || v == "" {
			continue
		}
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
	}
	setupLogger(*logLevel, *Verbose)
	return nil
}

// apiKey returns the Gemini API key from the environment.
func apiKey() string {
	if k := os.Getenv(EnvGeminiAPIKey); k != "" {
		return k
	}
	return os.Getenv(EnvGoogleAPIKey)
}

// openState opens the store and loads the state. The caller must close the store.
func openState(ctx context.Context) (*store.Store, investwise.State, error) {
	st, err := store.Open(*dbPath)
	if err != nil {
		return nil, investwise.State{}, err
	}
	state, err := st.LoadOr(ctx, investwise.NewState(*currency))
	if err != nil {
		st.Close()
		return nil, investwise.State{}, fmt.Errorf("could not load state from %q: %w", *dbPath, err)
	}
	if state.Financial.Currency != *currency {
		logger.Debug().Str("stored", state.Financial.Currency).Str("flag", *currency).Msg("using the stored currency")
	}
	return st, state, nil
}

// loadHistory returns the yearly returns used for simulations.
func loadHistory() (*investwise.History, error) {
	if *returnsFile == "" {
		return investwise.DefaultHistory(), nil
	}
	return investwise.LoadHistory(*returnsFile)
}

// newGenerator returns the Gemini models service, or nil if no client can be created.
func newGenerator(ctx context.Context) agent.Generator {
	client, err := agent.NewClient(ctx, apiKey())
	if err != nil {
		logger.Warn().Err(err).Msg("Gemini is not available, using builtin answers")
		return nil
	}
	return client.Models
}

// moneyFlag is a flag.Value for an optional amount.
type moneyFlag struct {
	value string
	set   bool
}

func (m *moneyFlag) String() string { return m.value }
func (m *moneyFlag) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errors.New("not a number")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	m.value, m.set = s, true
	return nil
}

// apply replaces *dst with the flag value if it was set.
func (m *moneyFlag) apply(dst *investwise.Money, currency string) error {
	if !m.set {
		return nil
	}
	v, err := investwise.ParseMoney(m.value, currency)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		logger.Debug().Err(err).Msg("cannot render markdown")
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
