// Package revolut parses Revolut trading account statement CSV exports
// into normalized interest records.
package revolut

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jernejstrasner/taxes"
	"github.com/shopspring/decimal"
)

// Payer identity reported for Revolut interest lines.
const (
	PayerID      = "305799582"
	PayerName    = "Revolut Securities Europe UAB"
	PayerAddress = "Konstitucijos ave. 21B, Vilnius, 08130"
	PayerCountry = "LT"
)

// Interest satisfies the taxes.Parser shape for Revolut statement CSVs.
type Interest struct{}

// Parse reads a Revolut statement CSV and returns the "Interest PAID EUR"
// rows as normalized records. The statement starts with a free-form
// preamble; parsing begins at the header row. Fee and sale totals are
// logged for cross-checking against the statement summary.
func (Interest) Parse(r io.Reader) ([]taxes.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // the preamble has ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse Revolut CSV: %w", err)
	}

	header, start := findHeader(rows)
	if header == nil {
		return nil, fmt.Errorf("no header row with Date and Description columns found: is this a Revolut statement export?")
	}
	dateCol, descCol, valueCol := index(header, "Date"), index(header, "Description"), index(header, "Value")
	if valueCol < 0 {
		return nil, fmt.Errorf("no Value column found in Revolut statement header")
	}

	var records []taxes.Transaction
	totalInterest, totalFees, totalSells := decimal.Zero, decimal.Zero, decimal.Zero
	for n, row := range rows[start:] {
		if len(row) <= valueCol || len(row) <= descCol {
			continue
		}
		desc := row[descCol]
		value, err := parseAmount(row[valueCol])
		if err != nil {
			log.Printf("skipping Revolut row %d with bad value %q: %v", start+n+1, row[valueCol], err)
			continue
		}
		switch {
		case strings.Contains(desc, "Interest PAID EUR"):
			day, err := taxes.ParseDate(row[dateCol])
			if err != nil {
				return nil, fmt.Errorf("Revolut row %d: %w", start+n+1, err)
			}
			totalInterest = totalInterest.Add(value.Abs())
			records = append(records, taxes.NewInterest(
				day, PayerID, PayerName, PayerAddress, PayerCountry,
				taxes.FundInterest, taxes.EUR(value.Abs()), PayerCountry,
			))
		case strings.Contains(desc, "Service Fee Charged"):
			totalFees = totalFees.Add(value.Abs())
		case strings.Contains(desc, "SELL EUR"):
			totalSells = totalSells.Add(value.Abs())
		}
	}

	log.Printf("[Revolut] total interest: %s EUR, total fees: %s EUR, total sell: %s EUR",
		totalInterest.StringFixed(2), totalFees.StringFixed(2), totalSells.StringFixed(2))
	return records, nil
}

// findHeader locates the column header row after the statement preamble.
func findHeader(rows [][]string) (header []string, start int) {
	for i, row := range rows {
		if index(row, "Date") >= 0 && index(row, "Description") >= 0 {
			return row, i + 1
		}
	}
	return nil, 0
}

func index(row []string, name string) int {
	for i, cell := range row {
		if strings.TrimSpace(cell) == name {
			return i
		}
	}
	return -1
}

// parseAmount strips the euro sign and thousands separators from a
// statement amount.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "€", ""), ",", ""))
	return decimal.NewFromString(s)
}
