package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsliwa/brokerage/date"
	"github.com/jsliwa/brokerage/renderer"
)

type valueCmd struct {
	date string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the portfolio market value on a date" }
func (*valueCmd) Usage() string {
	return `bkr value [-d <date>]

  Displays the market value of every position plus the cash balance.
  On a weekend date positions are valued at the last Friday's close,
  on a trading day at that day's open.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date, YYYY-MM-DD (defaults to today)")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := date.Today()
	if c.date != "" {
		var err error
		on, err = date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date %q: %v\n", c.date, err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := renderer.ValuationMarkdown(ledger, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(report)
	return subcommands.ExitSuccess
}
