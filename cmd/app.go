// Package cmd implements the bkr CLI application to manage a brokerage ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/jsliwa/brokerage"
	"github.com/jsliwa/brokerage/pricefile"
	"github.com/jsliwa/brokerage/yahoofinance"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")
	c.Register(&yearlyCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
	c.Register(&valueCmd{}, "reports")
	c.Register(&fetchCmd{}, "prices")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing cash operations (JSONL format)")
var priceCacheFile = flag.String("price-cache", "prices.csv", "Path to the price cache file (CSV format)")
var currency = flag.String("currency", brokerage.DefaultCurrency, "Reporting currency for a newly created ledger")

// openOracle composes the price cache in front of the Yahoo Finance client.
func openOracle() (brokerage.PriceOracle, error) {
	cache, err := pricefile.Open(*priceCacheFile)
	if err != nil {
		return nil, err
	}
	return brokerage.NewCachedOracle(cache, yahoofinance.NewClient()), nil
}

// openPriceCache opens the app price cache file alone, for bulk inserts.
func openPriceCache() (*pricefile.File, error) {
	return pricefile.Open(*priceCacheFile)
}

// decodeLedger loads the app ledger file. A missing file yields an empty
// ledger instead of an error.
func decodeLedger() (*brokerage.Ledger, error) {
	oracle, err := openOracle()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return brokerage.NewLedgerWithCurrency(oracle, *currency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	ledger, err := brokerage.DecodeLedger(f, oracle)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger file %q: %w", *ledgerFile, err)
	}
	return ledger, nil
}

// encodeLedger writes the whole ledger back to the app ledger file.
func encodeLedger(ledger *brokerage.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("cannot create ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	if err := brokerage.EncodeLedger(f, ledger); err != nil {
		return fmt.Errorf("cannot write ledger file %q: %w", *ledgerFile, err)
	}
	return nil
}
