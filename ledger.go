package brokerage

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/jsliwa/brokerage/date"
)

// ErrInvalidAmount is returned by ledger mutators when the sign of an amount
// does not match the operation kind.
var ErrInvalidAmount = errors.New("invalid amount")

// DefaultCurrency is the reporting currency of a new ledger.
const DefaultCurrency = "EUR"

// Ledger is the append-only record of cash operations for one brokerage
// account, plus the equity positions derived from its stock purchases.
//
// Operations are kept in call order, not chronological order. The running
// cash balance always equals the sum of all recorded amounts. The ledger is
// a single-writer structure: callers exposing it to multiple goroutines must
// serialize mutators themselves.
type Ledger struct {
	operations []CashOperation
	positions  map[string]*Position
	cash       Money
	currency   string
	oracle     PriceOracle // handed to lazily created positions
}

// NewLedger creates an empty ledger reporting in DefaultCurrency. The oracle
// is a reference shared with every position the ledger creates.
func NewLedger(oracle PriceOracle) *Ledger {
	return NewLedgerWithCurrency(oracle, DefaultCurrency)
}

// NewLedgerWithCurrency creates an empty ledger reporting in the given currency.
func NewLedgerWithCurrency(oracle PriceOracle, currency string) *Ledger {
	return &Ledger{
		positions: make(map[string]*Position),
		cash:      M(0, currency),
		currency:  currency,
		oracle:    oracle,
	}
}

// Currency returns the ledger's reporting currency.
func (l *Ledger) Currency() string { return l.currency }

// CashBalance returns the running cash balance, the sum of all recorded
// operation amounts.
func (l *Ledger) CashBalance() Money { return l.cash }

// Operations returns an iterator over all cash operations in insertion order.
func (l *Ledger) Operations() iter.Seq2[int, CashOperation] {
	return func(yield func(int, CashOperation) bool) {
		for i, op := range l.operations {
			if !yield(i, op) {
				return
			}
		}
	}
}

// Position returns the position for symbol, or nil if no purchase ever
// created one.
func (l *Ledger) Position(symbol string) *Position { return l.positions[symbol] }

// Symbols returns the tickers of all positions, sorted.
func (l *Ledger) Symbols() []string {
	symbols := slices.Collect(maps.Keys(l.positions))
	slices.Sort(symbols)
	return symbols
}

// append records the operation and moves the cash balance by its signed amount.
func (l *Ledger) append(op CashOperation) {
	l.operations = append(l.operations, op)
	l.cash = l.cash.Add(op.amount)
}

// RecordDeposit records a cash deposit. The amount must be positive.
func (l *Ledger) RecordDeposit(amount Money, ts time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("deposit amount must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	l.append(CashOperation{kind: KindDeposit, amount: amount, timestamp: ts})
	return nil
}

// RecordDividend records a dividend payment from symbol. The amount must be
// positive.
func (l *Ledger) RecordDividend(amount Money, ts time.Time, symbol string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("dividend amount must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	l.append(CashOperation{kind: KindDividend, amount: amount, symbol: symbol, timestamp: ts})
	return nil
}

// RecordFreeFundsInterest records interest credited on free funds. The amount
// must be positive.
func (l *Ledger) RecordFreeFundsInterest(amount Money, ts time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("free-funds interest amount must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	l.append(CashOperation{kind: KindFreeFundsInterest, amount: amount, timestamp: ts})
	return nil
}

// RecordFreeFundsInterestTax records tax withheld on free-funds interest.
// The amount must be negative and is stored as given, the balance decreases
// by its absolute value.
func (l *Ledger) RecordFreeFundsInterestTax(amount Money, ts time.Time) error {
	if !amount.IsNegative() {
		return fmt.Errorf("free-funds interest tax amount must be negative, got %s: %w", amount, ErrInvalidAmount)
	}
	l.append(CashOperation{kind: KindFreeFundsInterestTax, amount: amount, timestamp: ts})
	return nil
}

// RecordStockPurchase records the purchase of quantity shares of symbol.
// The cash amount must be negative (money going out), quantity and
// pricePerShare positive. The purchase is stored as a negative cash
// operation, and a buy of quantity shares is registered on the position,
// dated at the calendar date of ts. The position is created on first
// purchase of that symbol.
func (l *Ledger) RecordStockPurchase(amount Money, ts time.Time, symbol string, quantity Quantity, pricePerShare Money) error {
	if !amount.IsNegative() {
		return fmt.Errorf("stock purchase amount must be negative, got %s: %w", amount, ErrInvalidAmount)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("stock purchase quantity must be positive, got %s: %w", quantity, ErrInvalidAmount)
	}
	if !pricePerShare.IsPositive() {
		return fmt.Errorf("price per share must be positive, got %s: %w", pricePerShare, ErrInvalidAmount)
	}

	l.append(CashOperation{
		kind:      KindStockPurchase,
		amount:    amount.Abs().Neg(),
		symbol:    symbol,
		quantity:  quantity,
		timestamp: ts,
	})

	pos, ok := l.positions[symbol]
	if !ok {
		pos = NewPosition(symbol, l.currency, l.oracle)
		l.positions[symbol] = pos
	}
	pos.RegisterBuy(date.FromTime(ts), quantity)
	return nil
}
