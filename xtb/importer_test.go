package xtb

import (
	"errors"
	"strings"
	"testing"

	"github.com/jsliwa/brokerage"
	"github.com/jsliwa/brokerage/date"
	"github.com/shopspring/decimal"
)

// flatOracle prices everything at 30.
type flatOracle struct{}

func (flatOracle) PriceOn(symbol string, on date.Date) (decimal.Decimal, error) {
	return decimal.NewFromInt(30), nil
}

const header = "ID,Type,Time,Comment,Symbol,Amount\n"

func importString(t *testing.T, statement string) *Statement {
	t.Helper()
	s, err := Import(strings.NewReader(statement), flatOracle{})
	if err != nil {
		t.Fatalf("Import() err = %v", err)
	}
	return s
}

func TestImportRoundTrip(t *testing.T) {
	statement := header +
		"1;ABC,deposit,12/03/2024 09:00:00,payment,,1000.00\n" +
		"2;DEF,Stock purchase,12/03/2024 10:00:00,OPEN BUY 10 @ 30.066,AAPL.US,-300.66\n"

	s := importString(t, statement)

	if len(s.Transactions) != 2 {
		t.Fatalf("imported %d transactions, want 2", len(s.Transactions))
	}
	if got := s.Ledger.CashBalance().Amount().String(); got != "699.34" {
		t.Errorf("balance = %s, want 699.34", got)
	}

	pos := s.Ledger.Position("AAPL.US")
	if pos == nil {
		t.Fatal("purchase did not create a position")
	}
	if q := pos.QuantityAsOf(date.New(2024, 3, 13)); !q.Equal(brokerage.Q(10)) {
		t.Errorf("position quantity = %s, want 10", q)
	}

	ops := 0
	for range s.Ledger.Operations() {
		ops++
	}
	if ops != 2 {
		t.Errorf("ledger holds %d operations, want 2", ops)
	}
}

func TestImportAllTypes(t *testing.T) {
	statement := header +
		"1,deposit,12/03/2024 09:00:00,payment,,1000.00\n" +
		"2,Stock purchase,12/03/2024 10:00:00,OPEN BUY 10 @ 30.066,AAPL.US,-300.66\n" +
		"3,DIVIDENT,07/01/2025 00:00:00,,AAPL.US,12.50\n" +
		"4,Free-funds Interest,28/06/2024 00:00:00,,,3.21\n" +
		"5,Free-funds Interest Tax,28/06/2024 00:00:00,,,-0.61\n"

	s := importString(t, statement)

	if got := s.Ledger.CashBalance().Amount().String(); got != "714.44" {
		t.Errorf("balance = %s, want 714.44", got)
	}
	if got := len(s.TransactionsBySymbol("AAPL.US")); got != 2 {
		t.Errorf("TransactionsBySymbol(AAPL.US) = %d, want 2", got)
	}
	if got := len(s.TransactionsByType(TypeDividend)); got != 1 {
		t.Errorf("TransactionsByType(DIVIDENT) = %d, want 1", got)
	}
}

func TestImportCommaDecimalSeparator(t *testing.T) {
	statement := header +
		`1,deposit,12/03/2024 09:00:00,payment,,"1000,50"` + "\n"

	s := importString(t, statement)
	if got := s.Ledger.CashBalance().Amount().String(); got != "1000.5" {
		t.Errorf("balance = %s, want 1000.5", got)
	}
}

func TestImportUnknownTypeIsHistoryOnly(t *testing.T) {
	statement := header +
		"1,deposit,12/03/2024 09:00:00,payment,,1000.00\n" +
		"2,Withdrawal,13/03/2024 09:00:00,,,-50.00\n"

	s := importString(t, statement)

	// the row is preserved but the ledger never saw it
	if len(s.Transactions) != 2 {
		t.Fatalf("imported %d transactions, want 2", len(s.Transactions))
	}
	if got := s.Ledger.CashBalance().Amount().String(); got != "1000" {
		t.Errorf("balance = %s, want 1000 (unknown type must not be replayed)", got)
	}
}

func TestImportFractionalShareCountTruncates(t *testing.T) {
	statement := header +
		"1,Stock purchase,12/03/2024 10:00:00,OPEN BUY 3/35 @ 5.8760,ETF.DE,-17.63\n"

	s := importString(t, statement)

	pos := s.Ledger.Position("ETF.DE")
	if pos == nil {
		t.Fatal("purchase did not create a position")
	}
	if q := pos.QuantityAsOf(date.New(2024, 3, 13)); !q.Equal(brokerage.Q(3)) {
		t.Errorf("position quantity = %s, want 3", q)
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      error
	}{
		{"empty input", "", ErrEmptyInput},
		{"wrong header", "Id,Kind,When,Note,Ticker,Value\n", ErrInvalidHeader},
		{"missing column", header + "1,deposit,12/03/2024 09:00:00,payment,\n", ErrColumnCount},
		{"blank ID", header + " ,deposit,12/03/2024 09:00:00,payment,,1000.00\n", ErrEmptyID},
		{"american time format", header + "1,deposit,03/25/2024 09:00:00,payment,,1000.00\n", ErrInvalidTimeFormat},
		{"empty time", header + "1,deposit,,payment,,1000.00\n", ErrInvalidTimeFormat},
		{"bad amount", header + "1,deposit,12/03/2024 09:00:00,payment,,lots\n", ErrInvalidAmount},
		{"bad purchase comment", header + "1,Stock purchase,12/03/2024 09:00:00,INVALID FORMAT,AAPL.US,-300.66\n", ErrInvalidPurchaseComment},
		{"negative deposit", header + "1,deposit,12/03/2024 09:00:00,payment,,-1000.00\n", brokerage.ErrInvalidAmount},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Import(strings.NewReader(tc.statement), flatOracle{})
			if !errors.Is(err, tc.want) {
				t.Errorf("Import() err = %v, want %v", err, tc.want)
			}
			if s != nil {
				t.Error("a failed import must not return a statement")
			}
		})
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	// the first row is fine, the second is broken: nothing may survive
	statement := header +
		"1,deposit,12/03/2024 09:00:00,payment,,1000.00\n" +
		"2,deposit,12/03/2024 09:00:00,payment,,not-a-number\n"

	s, err := Import(strings.NewReader(statement), flatOracle{})
	if err == nil {
		t.Fatal("Import() accepted a broken statement")
	}
	if s != nil {
		t.Error("a failed import must not return a partially replayed statement")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("err = %v, want the failing row number 3", err)
	}
}

func TestImportReportsReplayRow(t *testing.T) {
	// the row parses but violates the deposit sign rule during replay
	statement := header +
		"1,deposit,12/03/2024 09:00:00,payment,,1000.00\n" +
		"2,DIVIDENT,07/01/2025 00:00:00,,AAPL.US,-12.50\n"

	_, err := Import(strings.NewReader(statement), flatOracle{})
	if !errors.Is(err, brokerage.ErrInvalidAmount) {
		t.Fatalf("Import() err = %v, want ErrInvalidAmount", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("err = %v, want the failing row number 3", err)
	}
}
