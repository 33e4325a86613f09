// Package pricefile persists a price cache as a plain CSV file, one
// "symbol,date,price" row per cached quote. The file is loaded whole into
// memory and rewritten atomically on insert, so it stays valid even if the
// process dies mid-write.
package pricefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/jsliwa/brokerage"
	"github.com/jsliwa/brokerage/date"
	"github.com/shopspring/decimal"
)

var header = []string{"symbol", "date", "price"}

// File is a brokerage.PriceCache backed by a single CSV file. A missing file
// behaves like an empty cache and is created on first insert.
type File struct {
	path string
	rows map[key]decimal.Decimal
}

type key struct {
	symbol string
	day    date.Date
}

// Open loads the cache at path. The file may not exist yet.
func Open(path string) (*File, error) {
	f := &File{path: path, rows: make(map[key]decimal.Decimal)}

	r, err := os.Open(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open price cache: %w", err)
	}
	defer r.Close()

	if err := f.load(r); err != nil {
		return nil, fmt.Errorf("price cache %s: %w", path, err)
	}
	return f, nil
}

func (f *File) load(r io.Reader) error {
	reader := csv.NewReader(r)
	first, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	if !slices.Equal(first, header) {
		return fmt.Errorf("got header %q, want %q", first, header)
	}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		day, err := date.Parse(record[1])
		if err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		price, err := decimal.NewFromString(record[2])
		if err != nil {
			return fmt.Errorf("row %d: invalid price %q: %w", row, record[2], err)
		}
		f.rows[key{symbol: record[0], day: day}] = price
	}
}

// Find implements brokerage.PriceCache.
func (f *File) Find(symbol string, on date.Date) (decimal.Decimal, bool, error) {
	price, ok := f.rows[key{symbol: symbol, day: on}]
	return price, ok, nil
}

// Insert implements brokerage.PriceCache: it merges rows into memory and
// rewrites the whole file through a temp file and a rename.
func (f *File) Insert(rows []brokerage.PriceRow) error {
	for _, row := range rows {
		f.rows[key{symbol: row.Symbol, day: row.Day}] = row.Price
	}
	return f.save()
}

// Len returns the number of cached quotes.
func (f *File) Len() int { return len(f.rows) }

func (f *File) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+"-*")
	if err != nil {
		return fmt.Errorf("cannot write price cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return err
	}
	for _, k := range f.sortedKeys() {
		if err := w.Write([]string{k.symbol, k.day.String(), f.rows[k].String()}); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// sortedKeys keeps the file diffable: symbols alphabetical, then dates
// chronological.
func (f *File) sortedKeys() []key {
	keys := make([]key, 0, len(f.rows))
	for k := range f.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := strings.Compare(keys[i].symbol, keys[j].symbol); c != 0 {
			return c < 0
		}
		return keys[i].day.Before(keys[j].day)
	})
	return keys
}

var _ brokerage.PriceCache = (*File)(nil)
