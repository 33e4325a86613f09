// Package yahoofinance implements a brokerage.PriceOracle over the public
// Yahoo Finance v8 chart API.
package yahoofinance

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/jsliwa/brokerage"
	"github.com/jsliwa/brokerage/date"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily price histories from Yahoo Finance.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client with a disk cache, so repeat queries within the
// same day stay off the network.
func NewClient() *Client {
	return &Client{httpClient: daily(), baseURL: defaultBaseURL}
}

// newClient is the constructor used by tests to point at a fake server.
func newClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// PriceOn implements brokerage.PriceOracle: the opening price for trading
// days, the previous Friday's closing price for weekend dates. A weekday
// without market data fails with brokerage.ErrPriceUnavailable.
func (c *Client) PriceOn(symbol string, on date.Date) (decimal.Decimal, error) {
	day := on.LastTradingDay()
	open, close, err := c.Daily(symbol, date.Range{From: day, To: day})
	if err != nil {
		return decimal.Zero, err
	}

	var price float64
	var ok bool
	if on.IsTradingDay() {
		price, ok = open.Get(day)
	} else {
		price, ok = close.Get(day)
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("no market data for %s on %s: %w", symbol, day, brokerage.ErrPriceUnavailable)
	}
	return decimal.NewFromFloat(price), nil
}

var _ brokerage.PriceOracle = (*Client)(nil)

// Daily returns the daily open and close price series for a ticker over an
// inclusive date range.
func (c *Client) Daily(symbol string, r date.Range) (open, close date.History[float64], err error) {
	// period2 is exclusive in the chart API, push it one day past To.
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(symbol), r.From.Unix(), r.To.Add(1).Unix())

	var jobj any
	if err := jwget(c.httpClient, addr, &jobj); err != nil {
		return open, close, fmt.Errorf("cannot fetch %s history: %w", symbol, err)
	}

	// The chart payload is deeply nested; extract the three parallel arrays.
	timestamps, err := floatsAt(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return open, close, fmt.Errorf("no daily data for %s: %w", symbol, brokerage.ErrPriceUnavailable)
	}
	opens, _ := floatsAt(jobj, "$.chart.result[0].indicators.quote[0].open")
	closes, _ := floatsAt(jobj, "$.chart.result[0].indicators.quote[0].close")

	for i, ts := range timestamps {
		day := date.FromTime(time.Unix(int64(ts), 0).UTC())
		if v, ok := at(opens, i); ok {
			open.Append(day, v)
		}
		if v, ok := at(closes, i); ok {
			close.Append(day, v)
		}
	}
	return open, close, nil
}

// Fetch downloads the daily opening prices of several symbols over a range,
// as cache rows ready for a brokerage.PriceCache. Weekday lookups resolve to
// opening prices, so those are what get pre-seeded.
func (c *Client) Fetch(symbols []string, r date.Range) ([]brokerage.PriceRow, error) {
	var rows []brokerage.PriceRow
	for _, symbol := range symbols {
		open, _, err := c.Daily(symbol, r)
		if err != nil {
			return nil, err
		}
		for day, price := range open.Values() {
			rows = append(rows, brokerage.PriceRow{
				Symbol: symbol,
				Day:    day,
				Price:  decimal.NewFromFloat(price),
			})
		}
	}
	return rows, nil
}

// floatsAt extracts a JSON array of numbers at a jsonpath. Null entries are
// kept as NaN placeholders so indexes stay aligned with the timestamps.
func floatsAt(jobj any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot extract %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("value at %q is not an array", path)
	}
	values := make([]float64, len(jlist))
	for i, v := range jlist {
		f, ok := v.(float64)
		if !ok {
			f = nan
		}
		values[i] = f
	}
	return values, nil
}

// at returns the i-th value of a possibly short or gappy series.
func at(values []float64, i int) (float64, bool) {
	if i >= len(values) || values[i] != values[i] { // NaN check
		return 0, false
	}
	return values[i], true
}
