// Command iw plans monthly investments from a risk assessment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/investwise/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when called by the shell to complete the command line
	cmd.Completion(commander, flag.CommandLine).Complete("iw")

	flag.Parse()
	if err := cmd.Setup(flag.CommandLine); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	// Unknown subcommands are looked up as iw-<subcommand> extensions.
	if flag.NArg() > 0 {
		name := flag.Arg(0)
		known := false
		commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
			known = known || c.Name() == name
		})
		if !known {
			if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
				os.Exit(code)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
