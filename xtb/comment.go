package xtb

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// purchasePattern matches the free-text annotation XTB attaches to stock
// purchases: "OPEN BUY 10 @ 30.066", with an optional "$" before the share
// count and an optional "/..." lot-fraction suffix that is discarded, as in
// "OPEN BUY 3/35 @ 5.8760".
var purchasePattern = regexp.MustCompile(`OPEN BUY \$?(\d+(?:\.\d+)?)(?:/[^\s@]*)?\s*@\s*(\d+(?:\.\d+)?)`)

// parsePurchaseComment extracts the share count and per-share price from a
// stock purchase comment. The share count is truncated to an integer.
func parsePurchaseComment(comment string) (quantity int64, price decimal.Decimal, err error) {
	m := purchasePattern.FindStringSubmatch(comment)
	if m == nil {
		return 0, decimal.Zero, fmt.Errorf("comment %q does not match \"OPEN BUY <count> @ <price>\": %w",
			comment, ErrInvalidPurchaseComment)
	}

	count, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("comment %q share count: %w", comment, ErrInvalidPurchaseComment)
	}
	quantity = int64(count)

	price, err = decimal.NewFromString(m[2])
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("comment %q price: %w", comment, ErrInvalidPurchaseComment)
	}
	return quantity, price, nil
}
