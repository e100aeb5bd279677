// Package bsi provides EUR exchange rates from the Bank of Slovenia daily
// rate table ("tecajnica").
//
// Rates are quoted as units of foreign currency per 1 EUR, so converting a
// foreign amount to EUR divides by the rate. Lookups fall back to the
// nearest prior date when a date has no quote (weekends, holidays); a date
// before the earliest quote is an error.
package bsi

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/jernejstrasner/taxes"
	"github.com/shopspring/decimal"
)

// URL is the long-form daily rate table published by the Bank of Slovenia.
const URL = "https://www.bsi.si/_data/tecajnice/dtecbs-l.xml"

// ErrMissingRate is returned when no rate exists on or before the requested
// date.
var ErrMissingRate = errors.New("no exchange rate available on or before date")

// Rates holds a chronological rate history per currency.
type Rates struct {
	currencies map[string]*history
}

// history is a sorted by-date series of rates for one currency.
type history struct {
	days   []taxes.Date
	values []decimal.Decimal
}

// append adds a rate, keeping the series sorted. An existing value at the
// same date is overwritten, so the latest data wins.
func (h *history) append(on taxes.Date, rate decimal.Decimal) {
	i, found := slices.BinarySearchFunc(h.days, on, taxes.Date.Compare)
	if found {
		h.values[i] = rate
		return
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, rate)
}

// asOf returns the rate on a given day, or the most recent rate before it.
func (h *history) asOf(day taxes.Date) (decimal.Decimal, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, taxes.Date.Compare)
	if found {
		return h.values[i], true
	}
	// i is the insertion index; the entry before it is the last one prior.
	if i == 0 {
		return decimal.Decimal{}, false
	}
	return h.values[i-1], true
}

// Rate returns the rate (foreign units per EUR) in effect on the given
// date: the exact date's quote or the nearest prior one. It wraps
// ErrMissingRate when the date is before all known quotes or the currency
// is unknown.
func (r *Rates) Rate(on taxes.Date, currency string) (decimal.Decimal, error) {
	h, ok := r.currencies[currency]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("currency %q: %w", currency, ErrMissingRate)
	}
	rate, ok := h.asOf(on)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s %s: %w", currency, on, ErrMissingRate)
	}
	return rate, nil
}

// Convert converts a monetary amount to EUR using the rate in effect on
// the given date. EUR amounts pass through unchanged.
func (r *Rates) Convert(m taxes.Money, on taxes.Date) (taxes.Money, error) {
	if m.Currency() == "" || m.Currency() == "EUR" {
		return taxes.EUR(m.Amount()), nil
	}
	rate, err := r.Rate(on, m.Currency())
	if err != nil {
		return taxes.Money{}, err
	}
	return taxes.EUR(m.Amount().Div(rate)), nil
}

// Currencies returns the currency codes with at least one quote.
func (r *Rates) Currencies() []string {
	codes := make([]string, 0, len(r.currencies))
	for code := range r.currencies {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// tecajnica XML layout:
//
//	<DtecBS xmlns="http://www.bsi.si">
//	  <tecajnica datum="2024-01-03">
//	    <tecaj oznaka="USD" sifra="840">1.0919</tecaj>
//	    ...
type rateTable struct {
	XMLName xml.Name `xml:"DtecBS"`
	Days    []struct {
		Date  string `xml:"datum,attr"`
		Rates []struct {
			Currency string `xml:"oznaka,attr"`
			Value    string `xml:",chardata"`
		} `xml:"tecaj"`
	} `xml:"tecajnica"`
}

// Parse reads the Bank of Slovenia rate table XML. Quotes with an empty or
// unparsable value are skipped; that day simply has no quote for the
// currency.
func Parse(r io.Reader) (*Rates, error) {
	var table rateTable
	if err := xml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("cannot parse Bank of Slovenia rate table: %w", err)
	}
	rates := &Rates{currencies: make(map[string]*history)}
	for _, day := range table.Days {
		on, err := taxes.ParseDate(day.Date)
		if err != nil {
			return nil, fmt.Errorf("rate table day %q: %w", day.Date, err)
		}
		for _, q := range day.Rates {
			value, err := decimal.NewFromString(q.Value)
			if err != nil || value.IsZero() {
				continue
			}
			h, ok := rates.currencies[q.Currency]
			if !ok {
				h = &history{}
				rates.currencies[q.Currency] = h
			}
			h.append(on, value)
		}
	}
	return rates, nil
}
