// Package renderer turns ledger aggregates into markdown reports.
package renderer

import (
	"bytes"
	"strconv"

	"github.com/jsliwa/brokerage"
	md "github.com/nao1215/markdown"
)

// YearlyMarkdown renders yearly deposit, dividend and purchase totals as a
// markdown table, one row per year in ascending order.
func YearlyMarkdown(s brokerage.YearlyStatistics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Yearly Statistics")

	table := statisticsTable("Year")
	for year := range s.Years() {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(year),
			total(s.Deposits[year], s.Currency),
			total(s.Dividends[year], s.Currency),
			total(s.StockPurchases[year], s.Currency),
		})
	}
	doc.Table(table)

	return doc.String()
}

// MonthlyMarkdown renders monthly totals the same way, one row per "YYYY-MM"
// key in ascending order.
func MonthlyMarkdown(s brokerage.MonthlyStatistics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Statistics")

	table := statisticsTable("Month")
	for month := range s.Months() {
		table.Rows = append(table.Rows, []string{
			month,
			total(s.Deposits[month], s.Currency),
			total(s.Dividends[month], s.Currency),
			total(s.StockPurchases[month], s.Currency),
		})
	}
	doc.Table(table)

	return doc.String()
}

func statisticsTable(period string) md.TableSet {
	return md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{period, "Deposits", "Dividends", "Stock Purchases"},
	}
}

// total formats a bucket value, falling back to a zero in the reporting
// currency when the period has no operations of that kind.
func total(m brokerage.Money, currency string) string {
	if m.Currency() == "" {
		m = brokerage.M(0, currency)
	}
	return m.String()
}
