package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsliwa/brokerage/xtb"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import an XTB statement into the ledger" }
func (*importCmd) Usage() string {
	return `bkr import <statement.csv>

  Reads a cash-operation statement exported from XTB and replaces the ledger
  file with the replayed operations. The import is all or nothing: a single
  malformed row aborts it and leaves the ledger file untouched.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one statement file\n%s", c.Usage())
		return subcommands.ExitUsageError
	}

	statementFile, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open statement: %v\n", err)
		return subcommands.ExitFailure
	}
	defer statementFile.Close()

	oracle, err := openOracle()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	statement, err := xtb.Import(statementFile, oracle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: import failed: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := encodeLedger(statement.Ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions into %s, cash balance %s\n",
		len(statement.Transactions), *ledgerFile, statement.Ledger.CashBalance())
	return subcommands.ExitSuccess
}
