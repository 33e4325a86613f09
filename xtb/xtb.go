// Package xtb imports XTB broker statement exports into a brokerage ledger.
//
// An XTB statement is a CSV file with the exact header
// "ID,Type,Time,Comment,Symbol,Amount". Amounts may use a comma as decimal
// separator, timestamps are "DD/MM/YYYY HH:MM:SS", and stock purchases carry
// their share count and price inside a free-text comment.
package xtb

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Import format errors. Any of them aborts the whole import: no partially
// replayed ledger is ever returned.
var (
	ErrEmptyInput             = errors.New("statement is empty")
	ErrInvalidHeader          = errors.New("invalid statement header")
	ErrColumnCount            = errors.New("wrong number of columns")
	ErrEmptyID                = errors.New("transaction ID is empty")
	ErrInvalidTimeFormat      = errors.New("invalid time format")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidPurchaseComment = errors.New("invalid stock purchase comment")
)

// Transaction type strings as XTB exports them, misspellings included.
const (
	TypeDeposit              = "deposit"
	TypeDividend             = "DIVIDENT" // sic, the broker's own spelling
	TypeFreeFundsInterest    = "Free-funds Interest"
	TypeFreeFundsInterestTax = "Free-funds Interest Tax"
	TypeStockPurchase        = "Stock purchase"
)

// Transaction is one parsed statement row. Rows with an unrecognized Type
// are kept in the statement history but trigger no ledger mutation.
type Transaction struct {
	ID      string
	Type    string
	Time    time.Time
	Comment string
	Symbol  string
	Amount  decimal.Decimal
}
