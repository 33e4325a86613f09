package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsliwa/brokerage/date"
	"github.com/jsliwa/brokerage/yahoofinance"
)

type fetchCmd struct {
	from string
	to   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "pre-fill the price cache for every ledger symbol" }
func (*fetchCmd) Usage() string {
	return `bkr fetch -from <date> [-to <date>]

  Downloads daily prices for every symbol held in the ledger over a date
  range and stores them in the price cache, so later valuations work offline.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First date to fetch, YYYY-MM-DD (required)")
	f.StringVar(&c.to, "to", "", "Last date to fetch, YYYY-MM-DD (defaults to today)")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		fmt.Fprintf(os.Stderr, "Error: -from is required\n%s", c.Usage())
		return subcommands.ExitUsageError
	}
	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -from date %q: %v\n", c.from, err)
		return subcommands.ExitUsageError
	}
	to := date.Today()
	if c.to != "" {
		to, err = date.Parse(c.to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -to date %q: %v\n", c.to, err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	symbols := ledger.Symbols()
	if len(symbols) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: the ledger holds no positions, nothing to fetch.\n")
		return subcommands.ExitSuccess
	}

	rows, err := yahoofinance.NewClient().Fetch(symbols, date.Range{From: from, To: to})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	cache, err := openPriceCache()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := cache.Insert(rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot update price cache: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Cached %d prices for %d symbols in %s\n", len(rows), len(symbols), *priceCacheFile)
	return subcommands.ExitSuccess
}
