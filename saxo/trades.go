package saxo

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jernejstrasner/taxes"
)

// TradesSheet is the worksheet holding closed positions.
const TradesSheet = "ClosedPositions"

// Trades satisfies the taxes.Parser shape for the Saxo closed positions
// export.
type Trades struct{}

// Parse reads the "ClosedPositions" sheet. Saxo exports round trips, not
// individual fills, so every row becomes a buy record at the open date and
// price and a matching sell record at the close date and price, in the
// instrument currency. A close date before the open date is a data error
// in the export and is fatal.
func (Trades) Parse(r io.Reader) ([]taxes.Transaction, error) {
	f, err := open(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := sheet(f, TradesSheet)
	if err != nil {
		return nil, err
	}

	var records []taxes.Transaction
	for _, row := range rows {
		symbol := row["Instrument Symbol"]
		if i := strings.Index(symbol, ":"); i >= 0 {
			symbol = symbol[:i]
		}
		opened, err := taxes.ParseDate(row["Trade Date Open"])
		if err != nil {
			return nil, fmt.Errorf("trade %s open date: %w", symbol, err)
		}
		closed, err := taxes.ParseDate(row["Trade Date Close"])
		if err != nil {
			return nil, fmt.Errorf("trade %s close date: %w", symbol, err)
		}
		if closed.Before(opened) {
			return nil, fmt.Errorf("trade %s: closed %s before opened %s: check the Saxo export for data errors", symbol, closed, opened)
		}

		currency := row["Instrument currency"]
		openPrice, err := parseAmount(row["Open Price"], currency)
		if err != nil {
			return nil, fmt.Errorf("trade %s open price: %w", symbol, err)
		}
		closePrice, err := parseAmount(row["Close Price"], currency)
		if err != nil {
			return nil, fmt.Errorf("trade %s close price: %w", symbol, err)
		}
		openQty, err := parseQuantity(row["Quantity Open"])
		if err != nil {
			return nil, fmt.Errorf("trade %s open quantity: %w", symbol, err)
		}
		closeQty, err := parseQuantity(row["QuantityClose"])
		if err != nil {
			return nil, fmt.Errorf("trade %s close quantity: %w", symbol, err)
		}

		records = append(records,
			taxes.NewBuy(opened, symbol, "", openQty.Abs(), openPrice, taxes.Money{}),
			taxes.NewSell(closed, symbol, "", closeQty.Abs(), closePrice, taxes.Money{}),
		)
	}
	log.Printf("[Saxobank] parsed %d closed positions", len(records)/2)
	return records, nil
}

func parseQuantity(s string) (taxes.Quantity, error) {
	m, err := parseAmount(s, "")
	if err != nil {
		return taxes.Quantity{}, err
	}
	return taxes.Q(m.Amount()), nil
}
