// Package saxo parses Saxo Bank Excel (xlsx) exports: the "Share
// Dividends", "ClosedPositions" and "Interest Details" sheets, plus the
// instrument list used to pre-fill the ISIN cache.
//
// Amounts in these exports keep their native currency ("USD 10.00");
// conversion to EUR happens later in the pipeline with the rate in effect
// on the row's date.
package saxo

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jernejstrasner/taxes"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Payer identity reported for Saxo Bank interest lines.
const (
	PayerID      = "15731249"
	PayerName    = "Saxo Bank A/S"
	PayerAddress = "Philip Heymans Alle 15, 2900 Hellerup"
	PayerCountry = "DK"
)

// sheet reads a worksheet into header-keyed rows. The first row is the
// header; trailing spaces in header names are kept, as some Saxo columns
// really do end with one ("Interest amount ").
func sheet(f *excelize.File, name string) ([]map[string]string, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w (check that the file is a valid Saxo Bank export)", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", name)
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		m := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				m[col] = strings.TrimSpace(row[i])
			} else {
				m[col] = ""
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// open reads the workbook from r.
func open(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open xlsx file: %w (ensure it is a valid, non password protected Excel file)", err)
	}
	return f, nil
}

var amountRE = regexp.MustCompile(`^([A-Z]{3})\s*([0-9.,]+)$`)

// parseAmount parses a Saxo currency-prefixed amount like "USD 10.00" into
// Money carrying its native currency. Leading signs are dropped, the way
// the export writes withheld tax ("-USD 1.50"); callers deal in magnitudes.
// A plain number is treated as the given fallback currency.
func parseAmount(s, fallbackCurrency string) (taxes.Money, error) {
	s = strings.TrimLeft(strings.TrimSpace(s), " +-")
	if s == "" {
		return taxes.Money{}, fmt.Errorf("empty amount")
	}
	currency := fallbackCurrency
	number := s
	if m := amountRE.FindStringSubmatch(s); m != nil {
		currency = m[1]
		number = m[2]
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(number, ",", ""))
	if err != nil {
		return taxes.Money{}, fmt.Errorf("cannot parse amount %q: %w", s, err)
	}
	return taxes.M(value, currency), nil
}
