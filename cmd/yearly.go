package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsliwa/brokerage/renderer"
)

type yearlyCmd struct{}

func (*yearlyCmd) Name() string     { return "yearly" }
func (*yearlyCmd) Synopsis() string { return "display yearly deposit, dividend and purchase totals" }
func (*yearlyCmd) Usage() string {
	return `bkr yearly

  Displays the ledger's deposits, dividends and stock purchases aggregated
  per calendar year.
`
}

func (c *yearlyCmd) SetFlags(f *flag.FlagSet) {}

func (c *yearlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.YearlyMarkdown(ledger.StatisticsByYear()))
	return subcommands.ExitSuccess
}
