package brokerage

import (
	"fmt"
	"time"
)

// OperationKind identifies the nature of a cash operation.
type OperationKind string

// Cash operation kinds.
const (
	KindDeposit              OperationKind = "deposit"
	KindDividend             OperationKind = "dividend"
	KindFreeFundsInterest    OperationKind = "free-funds-interest"
	KindFreeFundsInterestTax OperationKind = "free-funds-interest-tax"
	KindStockPurchase        OperationKind = "stock-purchase"
)

// ParseOperationKind parses a string into an OperationKind.
func ParseOperationKind(s string) (OperationKind, error) {
	switch k := OperationKind(s); k {
	case KindDeposit, KindDividend, KindFreeFundsInterest, KindFreeFundsInterestTax, KindStockPurchase:
		return k, nil
	default:
		return "", fmt.Errorf("unknown cash operation kind: %q", s)
	}
}

// CashOperation is one signed monetary event in the ledger. It is created by
// a Ledger mutator and never modified afterwards: inflows (deposits,
// dividends, interest) carry a positive amount, outflows (interest tax,
// stock purchases) a negative one.
type CashOperation struct {
	kind      OperationKind
	amount    Money
	symbol    string // security ticker for dividends and purchases, empty otherwise
	quantity  Quantity
	timestamp time.Time
}

// Kind returns the nature of the operation.
func (o CashOperation) Kind() OperationKind { return o.kind }

// Amount returns the signed amount of the operation.
func (o CashOperation) Amount() Money { return o.amount }

// Symbol returns the related security ticker, or "" for pure cash events.
func (o CashOperation) Symbol() string { return o.symbol }

// Quantity returns the number of shares for stock purchases, zero otherwise.
func (o CashOperation) Quantity() Quantity { return o.quantity }

// Timestamp returns when the operation occurred.
func (o CashOperation) Timestamp() time.Time { return o.timestamp }

// Year returns the calendar year the operation falls in.
func (o CashOperation) Year() int { return o.timestamp.Year() }

// MonthKey returns the "YYYY-MM" aggregation key the operation falls in.
func (o CashOperation) MonthKey() string { return o.timestamp.Format("2006-01") }
