package brokerage

import (
	"fmt"

	"github.com/jsliwa/brokerage/date"
)

// positionChange is one buy or sell event: buys are positive, sells negative.
type positionChange struct {
	day date.Date
	qty Quantity
}

// PositionChanges is the ordered buy/sell event log for one ticker.
//
// Events are appended in call order, which is not necessarily chronological;
// queries filter by date, so insertion order never affects the result.
type PositionChanges struct {
	changes []positionChange
}

// RegisterBuy appends a purchase of qty shares on the given day.
// qty is expected positive on input.
func (p *PositionChanges) RegisterBuy(day date.Date, qty Quantity) {
	p.changes = append(p.changes, positionChange{day: day, qty: qty})
}

// RegisterSell appends a sale of qty shares on the given day.
// qty is expected positive on input, the sign flip happens here.
func (p *PositionChanges) RegisterSell(day date.Date, qty Quantity) {
	p.changes = append(p.changes, positionChange{day: day, qty: qty.Neg()})
}

// QuantityAsOf returns the net quantity held strictly before the given day.
// Changes on the query day itself are excluded: the position has not settled
// yet. Selling more than held is not rejected, the net quantity may go
// negative.
func (p *PositionChanges) QuantityAsOf(day date.Date) Quantity {
	var qty Quantity
	for _, c := range p.changes {
		if c.day.Before(day) {
			qty = qty.Add(c.qty)
		}
	}
	return qty
}

// Len returns the number of recorded changes.
func (p *PositionChanges) Len() int { return len(p.changes) }

// Position is the valuation object for one ticker: its buy/sell history
// combined with a price source. The oracle is shared, not owned.
type Position struct {
	symbol   string
	currency string
	changes  PositionChanges
	oracle   PriceOracle
}

// NewPosition creates an empty position for symbol, valued in currency
// through the given oracle.
func NewPosition(symbol, currency string, oracle PriceOracle) *Position {
	return &Position{symbol: symbol, currency: currency, oracle: oracle}
}

// Symbol returns the ticker this position tracks.
func (p *Position) Symbol() string { return p.symbol }

// RegisterBuy records a purchase of qty shares on the given day.
func (p *Position) RegisterBuy(day date.Date, qty Quantity) { p.changes.RegisterBuy(day, qty) }

// RegisterSell records a sale of qty shares on the given day.
func (p *Position) RegisterSell(day date.Date, qty Quantity) { p.changes.RegisterSell(day, qty) }

// QuantityAsOf returns the net quantity held strictly before the given day.
func (p *Position) QuantityAsOf(day date.Date) Quantity { return p.changes.QuantityAsOf(day) }

// ValueOn returns the position's market value on the given day: the held
// quantity times the oracle's weekend-adjusted price. A missing price
// surfaces as ErrPriceUnavailable, never as a zero value.
func (p *Position) ValueOn(day date.Date) (Money, error) {
	qty := p.changes.QuantityAsOf(day)
	price, err := p.oracle.PriceOn(p.symbol, day)
	if err != nil {
		return Money{}, fmt.Errorf("cannot value %s on %s: %w", p.symbol, day, err)
	}
	return M(price, p.currency).Mul(qty), nil
}
