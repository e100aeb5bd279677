package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/jernejstrasner/taxes"
)

func TestDividendsMarkdown(t *testing.T) {
	report := taxes.NewDohDiv(2023)
	report.Add(taxes.DividendLine{
		Date:       taxes.NewDate(2023, time.March, 16),
		PayerID:    "US0378331005",
		Payer:      "Apple Inc.",
		Value:      taxes.EUR(2.12),
		ForeignTax: taxes.EUR(0.32),
	})
	md := DividendsMarkdown(report)
	for _, want := range []string{"# Dividends Report 2023", "Apple Inc.", "2.12", "0.32", "**Total**"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown does not contain %q", want)
		}
	}
}

func TestGainsMarkdown(t *testing.T) {
	trades := []taxes.Trade{
		taxes.NewBuy(taxes.NewDate(2022, time.November, 2), "AAPL", "US0378331005", taxes.Q(10), taxes.EUR(100), taxes.EUR(1)),
		taxes.NewSell(taxes.NewDate(2023, time.May, 10), "AAPL", "US0378331005", taxes.Q(10), taxes.EUR(120), taxes.EUR(1)),
		// realized in a prior year, must not appear in the 2023 summary
		taxes.NewBuy(taxes.NewDate(2022, time.January, 5), "MSFT", "US5949181045", taxes.Q(4), taxes.EUR(50), taxes.EUR(0)),
		taxes.NewSell(taxes.NewDate(2022, time.June, 7), "MSFT", "US5949181045", taxes.Q(4), taxes.EUR(60), taxes.EUR(0)),
	}
	gains, err := taxes.NewGains(trades)
	if err != nil {
		t.Fatalf("NewGains() failed: %v", err)
	}
	report := taxes.NewDohKDVP()
	for _, trade := range trades {
		if err := report.AddTrade(trade); err != nil {
			t.Fatalf("AddTrade() failed: %v", err)
		}
	}
	md := GainsMarkdown(gains, report, 2023)
	for _, want := range []string{"# Capital Gains Report 2023", "Securities reported: 2", "AAPL", "+"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown does not contain %q", want)
		}
	}
	if strings.Contains(md, "MSFT") {
		t.Error("markdown contains a gain realized outside the report year")
	}
}

func TestInterestMarkdown(t *testing.T) {
	report := taxes.NewDohObr(2023)
	report.Add(taxes.NewInterest(taxes.NewDate(2023, time.January, 31), "305799582",
		"Revolut Securities Europe UAB", "Vilnius", "LT", taxes.FundInterest, taxes.EUR(1.25), "LT"))
	md := InterestMarkdown(report, true)
	for _, want := range []string{"# Interest Report 2023", "Condensed", "Revolut", "1.25"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown does not contain %q", want)
		}
	}
}
