package brokerage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jsliwa/brokerage/date"
	"github.com/shopspring/decimal"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	oracle := stubOracle{decimal.NewFromInt(30)}
	l := NewLedger(oracle)
	l.RecordDeposit(M(1000, "EUR"), at(2024, 3, 12))
	l.RecordStockPurchase(M(-300.66, "EUR"), at(2024, 3, 12), "AAPL.US", Q(10), M(30.066, "EUR"))
	l.RecordDividend(M(12.5, "EUR"), at(2025, 1, 7), "AAPL.US")
	l.RecordFreeFundsInterest(M(3.21, "EUR"), at(2024, 6, 28))
	l.RecordFreeFundsInterestTax(M(-0.61, "EUR"), at(2024, 6, 28))

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() err = %v", err)
	}

	got, err := DecodeLedger(&buf, oracle)
	if err != nil {
		t.Fatalf("DecodeLedger() err = %v", err)
	}

	if !got.CashBalance().Equal(l.CashBalance()) {
		t.Errorf("balance = %s, want %s", got.CashBalance(), l.CashBalance())
	}
	if got.Currency() != "EUR" {
		t.Errorf("currency = %s, want EUR", got.Currency())
	}

	// the position must be rebuilt from the purchase line
	pos := got.Position("AAPL.US")
	if pos == nil {
		t.Fatal("decoded ledger lost the AAPL.US position")
	}
	if q := pos.QuantityAsOf(date.New(2024, 3, 13)); !q.Equal(Q(10)) {
		t.Errorf("rebuilt quantity = %s, want 10", q)
	}

	// kinds survive in order
	var kinds []OperationKind
	for _, op := range got.Operations() {
		kinds = append(kinds, op.Kind())
	}
	want := []OperationKind{KindDeposit, KindStockPurchase, KindDividend, KindFreeFundsInterest, KindFreeFundsInterestTax}
	if len(kinds) != len(want) {
		t.Fatalf("decoded %d operations, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("operation %d kind = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestEncodeIsJSONL(t *testing.T) {
	l := NewLedger(stubOracle{})
	l.RecordDeposit(M(1000, "EUR"), at(2024, 3, 12))

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	want := `{"kind":"deposit","amount":1000,"currency":"EUR","time":"2024-03-12T12:00:00Z"}` + "\n"
	if got != want {
		t.Errorf("encoded line:\n%s\nwant:\n%s", got, want)
	}
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	stream := `{"kind":"deposit","amount":100,"currency":"EUR","time":"2024-03-12T12:00:00Z"}

{"kind":"deposit","amount":200,"currency":"EUR","time":"2024-03-13T12:00:00Z"}
`
	l, err := DecodeLedger(strings.NewReader(stream), stubOracle{})
	if err != nil {
		t.Fatalf("DecodeLedger() err = %v", err)
	}
	if got := l.CashBalance().Amount().String(); got != "300" {
		t.Errorf("balance = %s, want 300", got)
	}
}

func TestDecodeRejectsBadStreams(t *testing.T) {
	tests := []struct {
		name   string
		stream string
	}{
		{"garbage line", `not json at all`},
		{"unknown kind", `{"kind":"withdrawal","amount":-5,"currency":"EUR","time":"2024-03-12T12:00:00Z"}`},
		{"bad time", `{"kind":"deposit","amount":100,"currency":"EUR","time":"12/03/2024"}`},
		{"sign violation", `{"kind":"deposit","amount":-100,"currency":"EUR","time":"2024-03-12T12:00:00Z"}`},
		{"purchase without quantity", `{"kind":"stock-purchase","amount":-300,"currency":"EUR","time":"2024-03-12T12:00:00Z","symbol":"AAPL.US"}`},
		{"mid-stream currency switch", `{"kind":"deposit","amount":100,"currency":"EUR","time":"2024-03-12T12:00:00Z"}
{"kind":"deposit","amount":100,"currency":"USD","time":"2024-03-13T12:00:00Z"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.stream), stubOracle{}); err == nil {
				t.Error("DecodeLedger() accepted a bad stream")
			}
		})
	}
}

func TestDecodeSignViolationWrapsErrInvalidAmount(t *testing.T) {
	stream := `{"kind":"dividend","amount":-12.5,"currency":"EUR","time":"2025-01-07T00:00:00Z","symbol":"AAPL.US"}`
	_, err := DecodeLedger(strings.NewReader(stream), stubOracle{})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestDecodeAdoptsStreamCurrency(t *testing.T) {
	stream := `{"kind":"deposit","amount":100,"currency":"PLN","time":"2024-03-12T12:00:00Z"}`
	l, err := DecodeLedger(strings.NewReader(stream), stubOracle{})
	if err != nil {
		t.Fatalf("DecodeLedger() err = %v", err)
	}
	if l.Currency() != "PLN" {
		t.Errorf("currency = %s, want PLN", l.Currency())
	}
}
