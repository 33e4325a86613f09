package xtb

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/jsliwa/brokerage"
	"github.com/shopspring/decimal"
)

// statementHeader is the exact first row of an XTB export, order and casing
// significant.
var statementHeader = []string{"ID", "Type", "Time", "Comment", "Symbol", "Amount"}

const statementTimeFormat = "02/01/2006 15:04:05"

// Statement is the result of a successful import: the replayed ledger plus
// the full transaction history, including rows whose type was not replayed.
type Statement struct {
	Ledger       *brokerage.Ledger
	Transactions []Transaction
}

// TransactionsBySymbol returns all transactions for a specific symbol.
func (s *Statement) TransactionsBySymbol(symbol string) []Transaction {
	var txs []Transaction
	for _, tx := range s.Transactions {
		if tx.Symbol == symbol {
			txs = append(txs, tx)
		}
	}
	return txs
}

// TransactionsByType returns all transactions of a specific type.
func (s *Statement) TransactionsByType(txType string) []Transaction {
	var txs []Transaction
	for _, tx := range s.Transactions {
		if tx.Type == txType {
			txs = append(txs, tx)
		}
	}
	return txs
}

// Import reads a whole XTB statement from r and replays it into a fresh
// ledger whose positions will price themselves through oracle.
//
// The import is all or nothing: every row is parsed and validated before
// replay, and replay itself targets a ledger that is only returned on full
// success, so a failing row can never leave partial state behind.
func Import(r io.Reader, oracle brokerage.PriceOracle) (*Statement, error) {
	txs, err := parseStatement(r)
	if err != nil {
		return nil, err
	}

	ledger := brokerage.NewLedger(oracle)
	for i, tx := range txs {
		if err := replay(ledger, tx); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return &Statement{Ledger: ledger, Transactions: txs}, nil
}

// parseStatement validates the header and every row, without touching any
// ledger.
func parseStatement(r io.Reader) ([]Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count is validated per row

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read statement header: %w", err)
	}
	if !slices.Equal(header, statementHeader) {
		return nil, fmt.Errorf("got header %q, want %q: %w", header, statementHeader, ErrInvalidHeader)
	}

	var txs []Transaction
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			return txs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		tx, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		txs = append(txs, tx)
	}
}

// parseRow validates one statement row and converts it into a Transaction.
func parseRow(record []string) (Transaction, error) {
	var tx Transaction
	if len(record) != len(statementHeader) {
		return tx, fmt.Errorf("got %d columns, want %d: %w", len(record), len(statementHeader), ErrColumnCount)
	}

	tx.ID = strings.TrimSpace(record[0])
	if tx.ID == "" {
		return tx, ErrEmptyID
	}
	tx.Type = strings.TrimSpace(record[1])

	timeStr := strings.TrimSpace(record[2])
	ts, err := time.Parse(statementTimeFormat, timeStr)
	if err != nil {
		return tx, fmt.Errorf("time %q, want \"DD/MM/YYYY HH:MM:SS\": %w", timeStr, ErrInvalidTimeFormat)
	}
	tx.Time = ts

	tx.Comment = strings.TrimSpace(record[3])
	tx.Symbol = strings.TrimSpace(record[4])

	// XTB exports European decimals, a comma separator is normalized first.
	amountStr := strings.TrimSpace(record[5])
	amount, err := decimal.NewFromString(strings.ReplaceAll(amountStr, ",", "."))
	if err != nil {
		return tx, fmt.Errorf("amount %q is not a number: %w", amountStr, ErrInvalidAmount)
	}
	tx.Amount = amount
	return tx, nil
}

// replay dispatches one transaction to the matching ledger mutator. Unknown
// types are deliberately skipped: they stay in the statement history only.
func replay(ledger *brokerage.Ledger, tx Transaction) error {
	amount := brokerage.M(tx.Amount, ledger.Currency())
	switch tx.Type {
	case TypeDeposit:
		return ledger.RecordDeposit(amount, tx.Time)
	case TypeDividend:
		return ledger.RecordDividend(amount, tx.Time, tx.Symbol)
	case TypeFreeFundsInterest:
		return ledger.RecordFreeFundsInterest(amount, tx.Time)
	case TypeFreeFundsInterestTax:
		return ledger.RecordFreeFundsInterestTax(amount, tx.Time)
	case TypeStockPurchase:
		quantity, price, err := parsePurchaseComment(tx.Comment)
		if err != nil {
			return err
		}
		return ledger.RecordStockPurchase(amount, tx.Time, tx.Symbol,
			brokerage.Q(quantity), brokerage.M(price, ledger.Currency()))
	default:
		return nil
	}
}
