package bsi

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jernejstrasner/taxes"
)

const tableXML = `<?xml version="1.0" encoding="UTF-8"?>
<DtecBS xmlns="http://www.bsi.si">
  <tecajnica datum="2023-06-01">
    <tecaj oznaka="USD" sifra="840">1.0732</tecaj>
    <tecaj oznaka="GBP" sifra="826">0.86128</tecaj>
  </tecajnica>
  <tecajnica datum="2023-06-02">
    <tecaj oznaka="USD" sifra="840">1.0737</tecaj>
    <tecaj oznaka="GBP" sifra="826"></tecaj>
  </tecajnica>
  <tecajnica datum="2023-06-05">
    <tecaj oznaka="USD" sifra="840">1.0718</tecaj>
  </tecajnica>
</DtecBS>`

func parseFixture(t *testing.T) *Rates {
	t.Helper()
	rates, err := Parse(strings.NewReader(tableXML))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return rates
}

func TestParse(t *testing.T) {
	rates := parseFixture(t)
	got := rates.Currencies()
	want := []string{"GBP", "USD"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Currencies() = %v, want %v", got, want)
	}
}

func TestRates_ExactDate(t *testing.T) {
	rates := parseFixture(t)
	rate, err := rates.Rate(taxes.NewDate(2023, time.June, 2), "USD")
	if err != nil {
		t.Fatalf("Rate() failed: %v", err)
	}
	if rate.String() != "1.0737" {
		t.Errorf("Rate() = %s, want 1.0737", rate)
	}
}

func TestRates_WeekendFallsBackToFriday(t *testing.T) {
	rates := parseFixture(t)
	// June 3rd 2023 is a Saturday; the quote of the 2nd applies.
	rate, err := rates.Rate(taxes.NewDate(2023, time.June, 3), "USD")
	if err != nil {
		t.Fatalf("Rate() failed: %v", err)
	}
	if rate.String() != "1.0737" {
		t.Errorf("Rate() = %s, want the prior day's 1.0737", rate)
	}
}

func TestRates_EmptyQuoteSkipped(t *testing.T) {
	rates := parseFixture(t)
	// GBP has no quote on the 2nd, so the 1st applies.
	rate, err := rates.Rate(taxes.NewDate(2023, time.June, 2), "GBP")
	if err != nil {
		t.Fatalf("Rate() failed: %v", err)
	}
	if rate.String() != "0.86128" {
		t.Errorf("Rate() = %s, want 0.86128", rate)
	}
}

func TestRates_MissingRate(t *testing.T) {
	rates := parseFixture(t)
	testCases := []struct {
		name     string
		on       taxes.Date
		currency string
	}{
		{"before first quote", taxes.NewDate(2023, time.May, 31), "USD"},
		{"unknown currency", taxes.NewDate(2023, time.June, 2), "JPY"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rates.Rate(tc.on, tc.currency)
			if !errors.Is(err, ErrMissingRate) {
				t.Errorf("Rate() = %v, want ErrMissingRate", err)
			}
		})
	}
}

func TestRates_Convert(t *testing.T) {
	rates := parseFixture(t)
	on := taxes.NewDate(2023, time.June, 1)

	got, err := rates.Convert(taxes.M(107.32, "USD"), on)
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if !got.Equal(taxes.EUR(100)) {
		t.Errorf("Convert(107.32 USD) = %s, want 100.00 EUR", got.Fixed2())
	}
	if got.Currency() != "EUR" {
		t.Errorf("Convert() currency = %q, want EUR", got.Currency())
	}
}

func TestRates_ConvertEURPassthrough(t *testing.T) {
	rates := parseFixture(t)
	// EUR amounts never need a quote, even outside the table range.
	got, err := rates.Convert(taxes.EUR(42), taxes.NewDate(1995, time.July, 1))
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if !got.Equal(taxes.EUR(42)) {
		t.Errorf("Convert(42 EUR) = %s, want 42.00 EUR", got.Fixed2())
	}
}
