package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/jernejstrasner/taxes"
	"github.com/jernejstrasner/taxes/bsi"
)

const appleISIN = taxes.ISIN("US0378331005")

func testRates(t *testing.T) *bsi.Rates {
	t.Helper()
	rates, err := bsi.Parse(strings.NewReader(`<?xml version="1.0"?>
<DtecBS xmlns="http://www.bsi.si">
  <tecajnica datum="2022-01-03">
    <tecaj oznaka="USD" sifra="840">1.25</tecaj>
  </tecajnica>
</DtecBS>`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return rates
}

// A lot sold in a prior year must not be matched again by a later sale,
// and the inventory must account for the prior-year disposal.
func TestGainsCmd_CrossYearHistory(t *testing.T) {
	c := &gainsCmd{}
	c.period = 2024
	records := []taxes.Transaction{
		taxes.NewBuy(taxes.NewDate(2022, time.March, 1), "AAPL", appleISIN, taxes.Q(10), taxes.EUR(100), taxes.EUR(0)),
		taxes.NewSell(taxes.NewDate(2023, time.June, 1), "AAPL", appleISIN, taxes.Q(10), taxes.EUR(150), taxes.EUR(0)),
		taxes.NewBuy(taxes.NewDate(2024, time.February, 1), "AAPL", appleISIN, taxes.Q(10), taxes.EUR(200), taxes.EUR(0)),
		taxes.NewSell(taxes.NewDate(2024, time.September, 2), "AAPL", appleISIN, taxes.Q(10), taxes.EUR(300), taxes.EUR(0)),
	}

	trades, err := c.toEUR(records, testRates(t))
	if err != nil {
		t.Fatalf("toEUR() failed: %v", err)
	}
	if len(trades) != 4 {
		t.Fatalf("toEUR() kept %d trades, want the full history of 4", len(trades))
	}

	gains, err := taxes.NewGains(trades)
	if err != nil {
		t.Fatalf("NewGains() failed: %v", err)
	}
	for _, agg := range gains.Aggregates() {
		if agg.Year != 2024 {
			continue
		}
		// The 2022 lot was consumed by the 2023 sale; the 2024 sale must
		// match the 2024 lot.
		if !agg.Cost.Equal(taxes.EUR(2000)) {
			t.Errorf("2024 cost basis = %s, want 2000.00", agg.Cost.Fixed2())
		}
	}

	report := taxes.NewDohKDVP()
	for _, trade := range trades {
		if err := report.AddTrade(trade); err != nil {
			t.Fatalf("AddTrade() failed: %v", err)
		}
	}
	entries := report.Items()[0].Entries
	final := entries[len(entries)-1].Stock
	if !final.Equal(taxes.Q(0)) {
		t.Errorf("final running stock = %s, want 0 (every disposal accounted for)", final)
	}
	if err := report.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestGainsCmd_ExcludesTradesAfterPeriod(t *testing.T) {
	c := &gainsCmd{}
	c.period = 2024
	records := []taxes.Transaction{
		taxes.NewBuy(taxes.NewDate(2024, time.February, 1), "AAPL", appleISIN, taxes.Q(10), taxes.EUR(200), taxes.EUR(0)),
		taxes.NewSell(taxes.NewDate(2024, time.September, 2), "AAPL", appleISIN, taxes.Q(10), taxes.EUR(300), taxes.EUR(0)),
		taxes.NewBuy(taxes.NewDate(2025, time.January, 15), "AAPL", appleISIN, taxes.Q(5), taxes.EUR(250), taxes.EUR(0)),
	}

	trades, err := c.toEUR(records, testRates(t))
	if err != nil {
		t.Fatalf("toEUR() failed: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("toEUR() kept %d trades, want 2 (the next year's buy excluded)", len(trades))
	}
	for _, trade := range trades {
		if trade.When().Year() > 2024 {
			t.Errorf("trade dated %s leaked past the report year", trade.When())
		}
	}
}

func TestGainsCmd_ConvertsAtTradeDate(t *testing.T) {
	c := &gainsCmd{}
	c.period = 2022
	records := []taxes.Transaction{
		taxes.NewBuy(taxes.NewDate(2022, time.March, 1), "AAPL", appleISIN, taxes.Q(10), taxes.M(125, "USD"), taxes.M(1.25, "USD")),
	}
	trades, err := c.toEUR(records, testRates(t))
	if err != nil {
		t.Fatalf("toEUR() failed: %v", err)
	}
	if !trades[0].Price.Equal(taxes.EUR(100)) || trades[0].Price.Currency() != "EUR" {
		t.Errorf("price = %s %s, want 100.00 EUR", trades[0].Price.Fixed2(), trades[0].Price.Currency())
	}
	if !trades[0].Fees.Equal(taxes.EUR(1)) {
		t.Errorf("fees = %s, want 1.00", trades[0].Fees.Fixed2())
	}
}
