package saxo

import (
	"fmt"
	"io"
	"log"

	"github.com/jernejstrasner/taxes"
)

// DividendsSheet is the worksheet holding dividend payments.
const DividendsSheet = "Share Dividends"

// Dividends satisfies the taxes.Parser shape for the Saxo dividends export.
type Dividends struct{}

// Parse reads the "Share Dividends" sheet and returns the cash dividend
// rows as normalized records, amounts kept in their native currency.
// A missing withholding tax cell is fatal: the export writes an explicit
// zero ("USD 0") when no tax was withheld, so an empty cell means the
// export is incomplete.
func (Dividends) Parse(r io.Reader) ([]taxes.Transaction, error) {
	f, err := open(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := sheet(f, DividendsSheet)
	if err != nil {
		return nil, err
	}

	var records []taxes.Transaction
	for _, row := range rows {
		if row["Event"] != "Cash dividend" {
			continue
		}
		payer := row["Instrument"]
		day, err := taxes.ParseDate(row["Pay Date"])
		if err != nil {
			return nil, fmt.Errorf("dividend from %s: %w", payer, err)
		}
		value, err := parseAmount(row["Dividend amount"], "")
		if err != nil {
			return nil, fmt.Errorf("dividend from %s on %s: %w", payer, day, err)
		}
		if row["Withholding tax amount"] == "" {
			return nil, fmt.Errorf("missing withholding tax for dividend from %s on %s: if no tax was withheld the cell should say \"USD 0\" or similar, not be empty", payer, day)
		}
		tax, err := parseAmount(row["Withholding tax amount"], value.Currency())
		if err != nil {
			return nil, fmt.Errorf("withholding tax for dividend from %s on %s: %w", payer, day, err)
		}
		records = append(records, taxes.NewDividend(day, payer, row["Instrument Symbol"], value, tax.Abs()))
	}
	log.Printf("[Saxobank] parsed %d cash dividends", len(records))
	return records, nil
}
