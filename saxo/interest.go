package saxo

import (
	"fmt"
	"io"
	"log"

	"github.com/jernejstrasner/taxes"
)

// InterestSheet is the worksheet holding interest payments. The amount
// column name really does end in a space in Saxo exports.
const (
	InterestSheet     = "Interest Details"
	interestAmountCol = "Interest amount "
)

// Interest satisfies the taxes.Parser shape for the Saxo interest export.
type Interest struct{}

// Parse reads the "Interest Details" sheet and returns interest records in
// the account currency, with the fixed Saxo Bank payer identity.
func (Interest) Parse(r io.Reader) ([]taxes.Transaction, error) {
	f, err := open(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := sheet(f, InterestSheet)
	if err != nil {
		return nil, err
	}

	var records []taxes.Transaction
	for n, row := range rows {
		day, err := taxes.ParseDate(row["Calculation dateGMT"])
		if err != nil {
			return nil, fmt.Errorf("interest row %d: %w", n+2, err)
		}
		amount, err := parseAmount(row[interestAmountCol], row["Account Currency"])
		if err != nil {
			return nil, fmt.Errorf("interest row %d: %w", n+2, err)
		}
		records = append(records, taxes.NewInterest(
			day, PayerID, PayerName, PayerAddress, PayerCountry,
			taxes.FundInterest, amount, PayerCountry,
		))
	}
	log.Printf("[Saxobank] parsed %d interest payments", len(records))
	return records, nil
}
