// Command bkr manages a personal brokerage ledger: it imports XTB statements,
// values positions and reports deposit, dividend and purchase statistics.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/jsliwa/brokerage/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// shell completion, a no-op outside of completion mode.
	completion().Complete("bkr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	commonFlags := map[string]complete.Predictor{
		"ledger-file": predict.Files("*.jsonl"),
		"price-cache": predict.Files("*.csv"),
		"currency":    predict.Set{"EUR", "USD", "PLN", "GBP"},
	}
	return &complete.Command{
		Flags: commonFlags,
		Sub: map[string]*complete.Command{
			"import":  {Args: predict.Files("*.csv")},
			"yearly":  {},
			"monthly": {},
			"value":   {Flags: map[string]complete.Predictor{"d": predict.Something}},
			"fetch": {Flags: map[string]complete.Predictor{
				"from": predict.Something,
				"to":   predict.Something,
			}},
			"topic": {Args: predict.Set{"readme", "import-format", "ledger-format", "pricing", "statistics", "*"}},
		},
	}
}
