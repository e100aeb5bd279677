// Package ibkr parses Interactive Brokers Flex Query XML exports into
// normalized trade records.
package ibkr

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"

	"github.com/jernejstrasner/taxes"
)

// flexQueryResponse is the root element of the IBKR Flex Query report. Only
// the attributes needed for tax reporting are mapped.
type flexQueryResponse struct {
	XMLName xml.Name `xml:"FlexQueryResponse"`
	Trades  []trade  `xml:"FlexStatements>FlexStatement>Trades>Trade"`
}

type trade struct {
	AssetCategory string  `xml:"assetCategory,attr"`
	SubCategory   string  `xml:"subCategory,attr"`
	Symbol        string  `xml:"symbol,attr"`
	ISIN          string  `xml:"isin,attr"`
	TradeDate     string  `xml:"tradeDate,attr"` // yyyyMMdd
	Quantity      float64 `xml:"quantity,attr"`
	TradePrice    float64 `xml:"tradePrice,attr"`
	IBCommission  float64 `xml:"ibCommission,attr"` // negative in the export
	Currency      string  `xml:"currency,attr"`
	BuySell       string  `xml:"buySell,attr"`
}

// Trades satisfies the taxes.Parser shape for IBKR Flex Query exports.
type Trades struct{}

// Parse reads a Flex Query XML export and returns the stock trades as
// normalized records. Non-stock trades (options, futures) are skipped.
// Trades without an ISIN are fatal: FURS reporting requires one.
func (Trades) Parse(r io.Reader) ([]taxes.Transaction, error) {
	var response flexQueryResponse
	if err := xml.NewDecoder(r).Decode(&response); err != nil {
		return nil, fmt.Errorf("cannot parse IBKR Flex Query XML: %w (ensure this is a Flex Query export with the Trades section)", err)
	}
	if len(response.Trades) == 0 {
		return nil, fmt.Errorf("no trades found: ensure the Flex Query includes the Trades section")
	}

	var records []taxes.Transaction
	buys, sells := 0, 0
	for _, t := range response.Trades {
		if t.AssetCategory != "STK" {
			continue
		}
		if t.Symbol == "" || t.TradeDate == "" {
			log.Printf("skipping IBKR trade with missing symbol or date")
			continue
		}
		if t.ISIN == "" {
			return nil, fmt.Errorf("trade for %s on %s has no ISIN: add the ISIN field to the Flex Query", t.Symbol, t.TradeDate)
		}
		isin, err := taxes.ParseISIN(t.ISIN)
		if err != nil {
			return nil, fmt.Errorf("trade for %s on %s: %w", t.Symbol, t.TradeDate, err)
		}
		day, err := taxes.ParseDate(t.TradeDate)
		if err != nil {
			return nil, fmt.Errorf("trade for %s: %w", t.Symbol, err)
		}

		quantity := taxes.Q(t.Quantity).Abs()
		price := taxes.M(t.TradePrice, t.Currency)
		fees := taxes.M(t.IBCommission, t.Currency).Abs()

		var rec taxes.Trade
		switch t.BuySell {
		case "BUY":
			rec = taxes.NewBuy(day, t.Symbol, isin, quantity, price, fees)
			buys++
		case "SELL":
			rec = taxes.NewSell(day, t.Symbol, isin, quantity, price, fees)
			sells++
		default:
			log.Printf("skipping IBKR trade for %s with buySell %q", t.Symbol, t.BuySell)
			continue
		}
		rec.Fund = t.SubCategory == "ETF"
		records = append(records, rec)
	}
	log.Printf("[IBKR] parsed %d stock trades (buys: %d, sells: %d)", len(records), buys, sells)
	return records, nil
}
