package saxo

import (
	"fmt"
	"io"
	"log"

	"github.com/jernejstrasner/taxes"
)

// Instrument pairs a Saxo instrument symbol with its ISIN, from the
// additional-info export used to pre-fill the company cache.
type Instrument struct {
	Symbol string
	ISIN   taxes.ISIN
}

// ParseInstruments reads the first worksheet of an additional-info export
// and returns the symbol to ISIN pairs. Every ISIN is checksum validated.
func ParseInstruments(r io.Reader) ([]Instrument, error) {
	f, err := open(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no worksheets in additional-info file")
	}
	rows, err := sheet(f, sheets[0])
	if err != nil {
		return nil, err
	}

	var out []Instrument
	for _, row := range rows {
		symbol := row["Instrument Symbol"]
		if symbol == "" || row["Instrument ISIN"] == "" {
			continue
		}
		isin, err := taxes.ParseISIN(row["Instrument ISIN"])
		if err != nil {
			return nil, fmt.Errorf("instrument %s: %w", symbol, err)
		}
		out = append(out, Instrument{Symbol: symbol, ISIN: isin})
	}
	log.Printf("[Saxobank] loaded %d instrument ISINs", len(out))
	return out, nil
}
