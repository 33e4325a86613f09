package brokerage

import (
	"errors"
	"log"

	"github.com/jsliwa/brokerage/date"
	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable is returned when a price source has no data for the
// requested security on the weekend-adjusted date. A weekday with no market
// data is a lookup failure, never a zero price.
var ErrPriceUnavailable = errors.New("price unavailable")

// PriceOracle resolves a security ticker and a date to a price.
//
// Implementations must apply the weekend-adjustment rule from the date
// package: the opening price on trading days, the adjusted Friday's closing
// price on weekends. Lookups are synchronous, fallible, and idempotent;
// callers decide whether to retry.
type PriceOracle interface {
	PriceOn(symbol string, on date.Date) (decimal.Decimal, error)
}

// PriceRow is one cached price, keyed by (symbol, day).
type PriceRow struct {
	Symbol string
	Day    date.Date
	Price  decimal.Decimal
}

// PriceCache stores previously resolved prices.
type PriceCache interface {
	// Find returns the cached price for symbol on the given date, reporting
	// whether one was present.
	Find(symbol string, on date.Date) (decimal.Decimal, bool, error)
	// Insert bulk-stores rows, overwriting any existing (symbol, day) entries.
	Insert(rows []PriceRow) error
}

// CachedOracle answers price lookups from a PriceCache and falls back to a
// live oracle on a miss, storing what it fetched. Cache failures are logged
// and ignored, the live answer always wins.
type CachedOracle struct {
	cache  PriceCache
	source PriceOracle
}

// NewCachedOracle composes a cache in front of a live price source.
func NewCachedOracle(cache PriceCache, source PriceOracle) *CachedOracle {
	return &CachedOracle{cache: cache, source: source}
}

// PriceOn implements PriceOracle.
func (c *CachedOracle) PriceOn(symbol string, on date.Date) (decimal.Decimal, error) {
	price, ok, err := c.cache.Find(symbol, on)
	if err != nil {
		log.Printf("price cache read err (ignored): %v", err)
	} else if ok {
		return price, nil
	}

	price, err = c.source.PriceOn(symbol, on)
	if err != nil {
		return decimal.Zero, err
	}
	if err := c.cache.Insert([]PriceRow{{Symbol: symbol, Day: on, Price: price}}); err != nil {
		log.Printf("price cache write err (ignored): %v", err)
	}
	return price, nil
}

var _ PriceOracle = (*CachedOracle)(nil)
