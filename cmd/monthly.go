package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsliwa/brokerage/renderer"
)

type monthlyCmd struct{}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display monthly deposit, dividend and purchase totals" }
func (*monthlyCmd) Usage() string {
	return `bkr monthly

  Displays the ledger's deposits, dividends and stock purchases aggregated
  per month.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.MonthlyMarkdown(ledger.StatisticsByMonth()))
	return subcommands.ExitSuccess
}
