package taxes

import (
	"testing"
	"time"
)

func obrFixture() *DohObr {
	report := NewDohObr(2023)
	report.Add(NewInterest(NewDate(2023, time.January, 31), "305799582", "Revolut Securities Europe UAB", "Vilnius", "LT", FundInterest, EUR(1.25), "LT"))
	report.Add(NewInterest(NewDate(2023, time.February, 28), "305799582", "Revolut Securities Europe UAB", "Vilnius", "LT", FundInterest, EUR(1.75), "LT"))
	report.Add(NewInterest(NewDate(2023, time.February, 10), "15731249", "Saxo Bank A/S", "Hellerup", "DK", FundInterest, EUR(3.50), "DK"))
	return report
}

func TestDohObr_Total(t *testing.T) {
	report := obrFixture()
	if got := report.Total(); !got.Equal(EUR(6.5)) {
		t.Errorf("Total() = %s, want 6.50", got.Fixed2())
	}
}

func TestDohObr_Condense(t *testing.T) {
	report := obrFixture()
	report.Condense()

	if len(report.Interests) != 2 {
		t.Fatalf("Condense() left %d entries, want 2", len(report.Interests))
	}
	revolut := report.Interests[0]
	if revolut.Payer != "Revolut Securities Europe UAB" {
		t.Fatalf("payer order not preserved: first entry is %q", revolut.Payer)
	}
	if !revolut.Value.Equal(EUR(3)) {
		t.Errorf("condensed value = %s, want 3.00", revolut.Value.Fixed2())
	}
	if want := NewDate(2023, time.February, 28); revolut.When() != want {
		t.Errorf("condensed date = %s, want the latest payment date %s", revolut.When(), want)
	}
	if got := report.Total(); !got.Equal(EUR(6.5)) {
		t.Errorf("Total() after Condense() = %s, want 6.50", got.Fixed2())
	}
}

func TestDohObr_CondenseKeepsDistinctTypes(t *testing.T) {
	report := NewDohObr(2023)
	report.Add(NewInterest(NewDate(2023, time.March, 1), "1", "Bank", "Zurich", "CH", NonEUBankInterest, EUR(10), "CH"))
	report.Add(NewInterest(NewDate(2023, time.April, 1), "1", "Bank", "Zurich", "CH", FundInterest, EUR(20), "CH"))
	report.Condense()
	if len(report.Interests) != 2 {
		t.Errorf("Condense() merged entries with different interest types, got %d entries, want 2", len(report.Interests))
	}
}

func TestDohObr_CondenseKeepsDistinctReliefStatements(t *testing.T) {
	report := NewDohObr(2023)
	a := NewInterest(NewDate(2023, time.March, 1), "1", "Bank", "Zurich", "CH", NonEUBankInterest, EUR(10), "CH")
	a.ReliefStatement = "Treaty CH Art. 11"
	b := NewInterest(NewDate(2023, time.April, 1), "1", "Bank", "Zurich", "CH", NonEUBankInterest, EUR(20), "CH")
	b.ReliefStatement = "Treaty CH Art. 12"
	report.Add(a)
	report.Add(b)
	report.Condense()
	if len(report.Interests) != 2 {
		t.Fatalf("Condense() merged entries with different relief statements, got %d entries, want 2", len(report.Interests))
	}
	for i, want := range []string{"Treaty CH Art. 11", "Treaty CH Art. 12"} {
		if got := report.Interests[i].ReliefStatement; got != want {
			t.Errorf("entry %d relief statement = %q, want %q", i, got, want)
		}
	}
}

func TestDohObr_Sort(t *testing.T) {
	report := obrFixture()
	report.Sort()
	for i := 1; i < len(report.Interests); i++ {
		if report.Interests[i].When().Before(report.Interests[i-1].When()) {
			t.Errorf("entries not in chronological order at index %d", i)
		}
	}
}
