package taxes

import "slices"

// InterestType is the FURS interest type code (Doh_Obr Type field).
type InterestType int

const (
	// NonEUBankInterest is interest from bank deposits outside the EU.
	NonEUBankInterest InterestType = 3
	// FundInterest is interest paid out by investment funds and brokers.
	FundInterest InterestType = 7
)

// Interest is one interest payment line of the Doh_Obr report. A zero
// ForeignTax or empty ReliefStatement is omitted from the XML.
type Interest struct {
	baseRec
	PayerID         string // identification number of the payer if legal person
	Payer           string // name of the payer
	Address         string
	Country         string // country of the payer
	InterestType    InterestType
	Value           Money  // in EUR once enriched
	SourceCountry   string // country of the source
	ForeignTax      Money
	ReliefStatement string
}

// NewInterest creates a normalized interest record.
func NewInterest(day Date, payerID, payer, address, country string, typ InterestType, value Money, sourceCountry string) Interest {
	return Interest{
		baseRec:       baseRec{Type: RecInterest, Date: day},
		PayerID:       payerID,
		Payer:         payer,
		Address:       address,
		Country:       country,
		InterestType:  typ,
		Value:         value,
		SourceCountry: sourceCountry,
	}
}

// payerKey identifies a payer for condensing: everything but date and value.
// The relief statement is part of the key so entries claiming different
// treaty reliefs never collapse into one line.
type payerKey struct {
	payerID      string
	payer        string
	address      string
	country      string
	interestType InterestType
	source       string
	relief       string
}

func (i Interest) key() payerKey {
	return payerKey{i.PayerID, i.Payer, i.Address, i.Country, i.InterestType, i.SourceCountry, i.ReliefStatement}
}

// DohObr aggregates interest payments for one tax period.
type DohObr struct {
	Period    int // tax year
	Interests []Interest
}

func NewDohObr(period int) *DohObr {
	return &DohObr{Period: period}
}

// Add appends an interest payment to the report.
func (o *DohObr) Add(i Interest) {
	o.Interests = append(o.Interests, i)
}

// Total returns the sum of all interest values.
func (o *DohObr) Total() Money {
	total := EUR(0)
	for _, i := range o.Interests {
		total = total.Add(i.Value)
	}
	return total
}

// Condense collapses multiple entries from the same payer into a single
// line: values are summed and the latest payment date is kept. The relative
// order of distinct payers is preserved.
func (o *DohObr) Condense() {
	condensed := make(map[payerKey]int) // key -> index into out
	var out []Interest
	for _, i := range o.Interests {
		if at, ok := condensed[i.key()]; ok {
			existing := &out[at]
			if i.Date.After(existing.Date) {
				existing.baseRec.Date = i.Date
			}
			existing.Value = existing.Value.Add(i.Value)
			if !i.ForeignTax.IsZero() {
				existing.ForeignTax = existing.ForeignTax.Add(i.ForeignTax)
			}
			continue
		}
		condensed[i.key()] = len(out)
		out = append(out, i)
	}
	o.Interests = out
}

// Sort orders the entries chronologically, ties broken by payer name, so
// the report does not depend on broker file order.
func (o *DohObr) Sort() {
	slices.SortStableFunc(o.Interests, func(a, b Interest) int {
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
