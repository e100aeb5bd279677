package revolut

import (
	"strings"
	"testing"
	"time"

	"github.com/jernejstrasner/taxes"
)

const statementCSV = `Account Statement
Generated on,2024-01-05
Account holder,Janez Novak

Date,Description,Value
2023-01-31,Interest PAID EUR,"€1.25"
2023-02-28,Interest PAID EUR,"€1,250.50"
2023-02-28,Service Fee Charged,"€-0.99"
2023-03-15,SELL EUR,"€500.00"
2023-03-31,Interest PAID EUR,€0.80
`

func TestInterest_Parse(t *testing.T) {
	records, err := Interest{}.Parse(strings.NewReader(statementCSV))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Parse() returned %d records, want 3 interest lines", len(records))
	}

	first, ok := records[0].(taxes.Interest)
	if !ok {
		t.Fatalf("record is %T, want taxes.Interest", records[0])
	}
	if first.What() != taxes.RecInterest {
		t.Errorf("What() = %q, want interest", first.What())
	}
	if want := taxes.NewDate(2023, time.January, 31); first.When() != want {
		t.Errorf("When() = %s, want %s", first.When(), want)
	}
	if first.Payer != PayerName || first.PayerID != PayerID || first.Country != PayerCountry {
		t.Errorf("payer identity = %q/%q/%q, want the Revolut constants", first.Payer, first.PayerID, first.Country)
	}
	if first.InterestType != taxes.FundInterest {
		t.Errorf("InterestType = %d, want %d", first.InterestType, taxes.FundInterest)
	}
	if !first.Value.Equal(taxes.EUR(1.25)) {
		t.Errorf("Value = %s, want 1.25", first.Value.Fixed2())
	}

	// Thousands separator in the second line.
	second := records[1].(taxes.Interest)
	if !second.Value.Equal(taxes.EUR(1250.5)) {
		t.Errorf("Value = %s, want 1250.50", second.Value.Fixed2())
	}
}

func TestInterest_ParseNoHeader(t *testing.T) {
	if _, err := (Interest{}).Parse(strings.NewReader("just,some,cells\n1,2,3\n")); err == nil {
		t.Error("Parse() succeeded on a CSV without a statement header, want error")
	}
}
