package brokerage

import (
	"iter"
	"maps"
	"slices"
)

// StatisticsSource is the capability set of anything that can aggregate its
// cash operations per period. Output backends (console rendering, files)
// consume this interface rather than the concrete ledger.
type StatisticsSource interface {
	StatisticsByYear() YearlyStatistics
	StatisticsByMonth() MonthlyStatistics
}

var _ StatisticsSource = (*Ledger)(nil)

// YearlyStatistics holds deposit, dividend and stock-purchase totals keyed by
// calendar year. Purchase totals are absolute values.
//
// Free-funds interest and its tax are recorded in the ledger but deliberately
// absent from these three buckets; published totals must not silently change.
type YearlyStatistics struct {
	Currency       string
	Deposits       map[int]Money
	Dividends      map[int]Money
	StockPurchases map[int]Money
}

// MonthlyStatistics is the same aggregation keyed by "YYYY-MM".
type MonthlyStatistics struct {
	Currency       string
	Deposits       map[string]Money
	Dividends      map[string]Money
	StockPurchases map[string]Money
}

// StatisticsByYear sums deposits, dividends and stock purchases per calendar
// year over all recorded operations.
func (l *Ledger) StatisticsByYear() YearlyStatistics {
	s := YearlyStatistics{
		Currency:       l.currency,
		Deposits:       make(map[int]Money),
		Dividends:      make(map[int]Money),
		StockPurchases: make(map[int]Money),
	}
	for _, op := range l.operations {
		bucket, ok := bucketFor(op.kind, s.Deposits, s.Dividends, s.StockPurchases)
		if !ok {
			continue
		}
		bucket[op.Year()] = bucket[op.Year()].Add(bucketAmount(op))
	}
	return s
}

// StatisticsByMonth sums deposits, dividends and stock purchases per month
// over all recorded operations.
func (l *Ledger) StatisticsByMonth() MonthlyStatistics {
	s := MonthlyStatistics{
		Currency:       l.currency,
		Deposits:       make(map[string]Money),
		Dividends:      make(map[string]Money),
		StockPurchases: make(map[string]Money),
	}
	for _, op := range l.operations {
		bucket, ok := bucketFor(op.kind, s.Deposits, s.Dividends, s.StockPurchases)
		if !ok {
			continue
		}
		bucket[op.MonthKey()] = bucket[op.MonthKey()].Add(bucketAmount(op))
	}
	return s
}

// bucketFor selects the aggregation bucket for a kind. Interest and its tax
// are tracked per operation but have no bucket.
func bucketFor[K comparable](kind OperationKind, deposits, dividends, purchases map[K]Money) (map[K]Money, bool) {
	switch kind {
	case KindDeposit:
		return deposits, true
	case KindDividend:
		return dividends, true
	case KindStockPurchase:
		return purchases, true
	default:
		return nil, false
	}
}

// bucketAmount returns the amount an operation contributes to its bucket:
// purchases are stored negative but published as absolute values.
func bucketAmount(op CashOperation) Money {
	if op.kind == KindStockPurchase {
		return op.amount.Abs()
	}
	return op.amount
}

// Years returns an iterator over the union of all years present in the
// statistics, sorted ascending.
func (s YearlyStatistics) Years() iter.Seq[int] {
	return sortedKeys(s.Deposits, s.Dividends, s.StockPurchases)
}

// Months returns an iterator over the union of all "YYYY-MM" keys present in
// the statistics, sorted ascending.
func (s MonthlyStatistics) Months() iter.Seq[string] {
	return sortedKeys(s.Deposits, s.Dividends, s.StockPurchases)
}

func sortedKeys[K int | string](buckets ...map[K]Money) iter.Seq[K] {
	visited := make(map[K]struct{})
	for _, b := range buckets {
		for k := range b {
			visited[k] = struct{}{}
		}
	}
	keys := slices.Collect(maps.Keys(visited))
	slices.Sort(keys)
	return slices.Values(keys)
}
