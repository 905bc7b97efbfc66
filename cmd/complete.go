package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/investwise"
	"github.com/etnz/investwise/agent"
	"github.com/etnz/investwise/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors predicts the values of flags by name. Other flags get no
// prediction.
var flagPredictors = map[string]complete.Predictor{
	"db":         predict.Files("*.db"),
	"returns":    predict.Files("*.yaml"),
	"o":          predict.Files("*.pdf"),
	"model":      predict.Set{agent.DefaultModel, "gemini-2.5-pro", "gemini-2.5-flash-lite"},
	"currency":   predict.Set{"INR", "USD", "EUR", "GBP"},
	"log-level":  predict.Set{"debug", "info", "warn", "error"},
	"allocation": allocationPredictor(),
}

// allocationPredictor proposes the allocations of the risk tiers.
func allocationPredictor() predict.Set {
	var s predict.Set
	for _, t := range investwise.Tiers {
		a := t.Allocation()
		s = append(s, fmt.Sprintf("%d/%d/%d/%d/%d", a.Equity, a.Bonds, a.Gold, a.Crypto, a.Cash))
	}
	return s
}

// Completion returns the shell completion of the commander's commands and
// the global flags of fs.
func Completion(c *subcommands.Commander, fs *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(fs),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		sub := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(sub)
		root.Sub[cmd.Name()] = &complete.Command{Flags: flagsOf(sub)}
	})
	if t, ok := root.Sub["topic"]; ok {
		topics, _ := docs.GetAllTopics()
		t.Args = predict.Set(append(topics, docs.Index, "*"))
	}
	if h, ok := root.Sub["help"]; ok {
		var names predict.Set
		for name := range root.Sub {
			names = append(names, name)
		}
		h.Args = names
	}
	return root
}

func flagsOf(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		p, ok := flagPredictors[f.Name]
		if !ok {
			p = predict.Nothing
		}
		flags[f.Name] = p
	})
	return flags
}
