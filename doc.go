// Package brokerage tracks a personal brokerage account: an append-only
// ledger of cash operations (deposits, dividends, free-funds interest and
// its tax, stock purchases), the open equity positions derived from those
// purchases, and their valuation on arbitrary historical dates through an
// external price source.
//
// The core pieces are:
//   - Ledger: records cash operations, maintains the running cash balance,
//     and aggregates deposits, dividends and purchases by year or month.
//   - Position: the buy/sell history of one ticker, valued on a date by
//     combining the held quantity with a PriceOracle lookup.
//   - PriceOracle / PriceCache: capabilities resolving (symbol, date) to a
//     price, with the weekend-adjustment rule from the date package.
//
// Broker statement import lives in the xtb subpackage; the live price
// provider in yahoofinance; file-backed price caching in pricefile.
package brokerage
