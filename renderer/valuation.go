package renderer

import (
	"bytes"

	"github.com/jsliwa/brokerage"
	"github.com/jsliwa/brokerage/date"
	md "github.com/nao1215/markdown"
)

// ValuationMarkdown renders the market value of every position on the given
// day plus the cash balance. A single unresolvable price fails the whole
// report: a partial portfolio value would be misleading.
func ValuationMarkdown(l *brokerage.Ledger, on date.Date) (string, error) {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Value on " + on.String())

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Shares", "Value"},
	}

	total := l.CashBalance()
	for _, symbol := range l.Symbols() {
		pos := l.Position(symbol)
		value, err := pos.ValueOn(on)
		if err != nil {
			return "", err
		}
		total = total.Add(value)
		table.Rows = append(table.Rows, []string{
			symbol,
			pos.QuantityAsOf(on).String(),
			value.String(),
		})
	}
	table.Rows = append(table.Rows, []string{"Cash", "", l.CashBalance().String()})
	doc.Table(table)

	doc.PlainText(md.Bold("Total: " + total.String()))

	return doc.String(), nil
}
