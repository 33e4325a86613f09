package brokerage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// this file handles the ledger persistence format: a JSONL stream, one cash
// operation per line, human readable and easy to merge or diff.

const encodeTimeFormat = time.RFC3339

// jsonOperation is the persisted form of a CashOperation.
type jsonOperation struct {
	Kind     OperationKind   `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Time     string          `json:"time"`
	Symbol   string          `json:"symbol,omitempty"`
	Quantity Quantity        `json:"quantity,omitzero"`
}

// EncodeLedger writes every cash operation of the ledger to w, one JSON
// object per line, in insertion order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, op := range l.operations {
		jop := jsonOperation{
			Kind:     op.kind,
			Amount:   op.amount.value,
			Currency: op.amount.cur,
			Time:     op.timestamp.Format(encodeTimeFormat),
			Symbol:   op.symbol,
			Quantity: op.quantity,
		}
		data, err := json.Marshal(jop)
		if err != nil {
			return fmt.Errorf("cannot marshal %s operation: %w", op.kind, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write ledger line: %w", err)
		}
	}
	return nil
}

// DecodeLedger reads a JSONL stream written by EncodeLedger and replays each
// operation through the ledger mutators, rebuilding positions and the cash
// balance. The oracle is handed to the rebuilt positions.
func DecodeLedger(r io.Reader, oracle PriceOracle) (*Ledger, error) {
	ledger := NewLedger(oracle)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var jop jsonOperation
		if err := json.Unmarshal(raw, &jop); err != nil {
			return nil, fmt.Errorf("line %d: cannot parse ledger line %q: %w", line, raw, err)
		}
		if err := replay(ledger, jop, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}
	return ledger, nil
}

func replay(ledger *Ledger, jop jsonOperation, line int) error {
	ts, err := time.Parse(encodeTimeFormat, jop.Time)
	if err != nil {
		return fmt.Errorf("line %d: invalid time %q: %w", line, jop.Time, err)
	}
	// The stream's currency wins over the default, but only before the first
	// replayed operation: the model is single-currency.
	if jop.Currency != "" && jop.Currency != ledger.currency {
		if len(ledger.operations) > 0 {
			return fmt.Errorf("line %d: currency %q does not match ledger currency %q", line, jop.Currency, ledger.currency)
		}
		ledger.currency = jop.Currency
		ledger.cash = M(0, jop.Currency)
	}
	amount := M(jop.Amount, jop.Currency)

	switch jop.Kind {
	case KindDeposit:
		err = ledger.RecordDeposit(amount, ts)
	case KindDividend:
		err = ledger.RecordDividend(amount, ts, jop.Symbol)
	case KindFreeFundsInterest:
		err = ledger.RecordFreeFundsInterest(amount, ts)
	case KindFreeFundsInterestTax:
		err = ledger.RecordFreeFundsInterestTax(amount, ts)
	case KindStockPurchase:
		if !jop.Quantity.IsPositive() {
			return fmt.Errorf("line %d: stock purchase quantity must be positive, got %s: %w", line, jop.Quantity, ErrInvalidAmount)
		}
		// The per-share price is not persisted, derive it back from the
		// stored amount so the mutator's sign checks still apply.
		price := M(jop.Amount.Abs().Div(jop.Quantity.value), jop.Currency)
		err = ledger.RecordStockPurchase(amount, ts, jop.Symbol, jop.Quantity, price)
	default:
		return fmt.Errorf("line %d: unknown cash operation kind %q", line, jop.Kind)
	}
	if err != nil {
		return fmt.Errorf("line %d: %w", line, err)
	}
	return nil
}
