package taxes

import "slices"

// DividendLine is one fully enriched dividend row of the Doh_Div report.
// All monetary amounts are in EUR.
type DividendLine struct {
	Date            Date
	PayerID         ISIN   // FURS identifies foreign payers by ISIN
	Payer           string // issuer name
	Address         string
	Country         string // derived from the ISIN country prefix
	Value           Money
	ForeignTax      Money
	ReliefStatement string
}

// DohDiv aggregates enriched dividend lines for one tax period.
type DohDiv struct {
	Period int // tax year
	Lines  []DividendLine
}

func NewDohDiv(period int) *DohDiv {
	return &DohDiv{Period: period}
}

// Add appends a dividend line to the report.
func (d *DohDiv) Add(line DividendLine) {
	d.Lines = append(d.Lines, line)
}

// Totals returns the summed dividend value and foreign tax.
func (d *DohDiv) Totals() (value, foreignTax Money) {
	value, foreignTax = EUR(0), EUR(0)
	for _, line := range d.Lines {
		value = value.Add(line.Value)
		foreignTax = foreignTax.Add(line.ForeignTax)
	}
	return value, foreignTax
}

// Sort orders lines chronologically, ties broken by payer name, so the
// report does not depend on broker file order.
func (d *DohDiv) Sort() {
	slices.SortStableFunc(d.Lines, func(a, b DividendLine) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.Payer < b.Payer {
			return -1
		}
		if a.Payer > b.Payer {
			return 1
		}
		return 0
	})
}
