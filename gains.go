package taxes

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// This file implements the capital gains aggregation: realized gains per
// security per tax year using earliest-lot-first matching, and the KDVP
// report model (the row structure FURS expects in Doh_KDVP).

// SecurityGain is one aggregate line: the realized gain for one security in
// one tax year, in EUR.
type SecurityGain struct {
	Security string
	Year     int
	Proceeds Money // sum of sale amounts
	Cost     Money // matched cost basis of the sold lots
	Fees     Money // sale fees
}

// Gain returns proceeds minus matched cost basis minus fees.
func (g SecurityGain) Gain() Money { return g.Proceeds.Sub(g.Cost).Sub(g.Fees) }

type gainKey struct {
	security string
	year     int
}

// Gains matches sell trades against open lots of the same security,
// earliest lot first, and accumulates realized gains per security and tax
// year. All trade amounts must already be converted to EUR.
type Gains struct {
	open       map[string]lots
	aggregates map[gainKey]*SecurityGain
}

// NewGains computes realized gains for a set of trades. The trades are
// processed in chronological order regardless of input order; on the same
// day acquisitions are applied before disposals so that aggregate totals do
// not depend on the order rows appear in a broker export.
func NewGains(trades []Trade) (*Gains, error) {
	g := &Gains{
		open:       make(map[string]lots),
		aggregates: make(map[gainKey]*SecurityGain),
	}
	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, tradeOrder)
	for _, t := range sorted {
		if err := g.add(t); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// tradeOrder sorts by date, buys before sells on the same day, then by
// security, price and quantity to make the order fully deterministic.
func tradeOrder(a, b Trade) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if a.Type != b.Type {
		if a.Type == RecBuy {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Security, b.Security); c != 0 {
		return c
	}
	if c := a.Price.Amount().Cmp(b.Price.Amount()); c != 0 {
		return c
	}
	return a.Quantity.value.Cmp(b.Quantity.value)
}

func (g *Gains) add(t Trade) error {
	switch t.Type {
	case RecBuy:
		// The acquisition fee is part of the lot's cost basis.
		g.open[t.Security] = append(g.open[t.Security], lot{
			Date:     t.Date,
			Quantity: t.Quantity,
			Cost:     t.Proceeds().Add(t.Fees),
		})
	case RecSell:
		remaining, cost, err := g.open[t.Security].sell(t.Quantity)
		if err != nil {
			return fmt.Errorf("security %q on %s: %w", t.Security, t.Date, err)
		}
		g.open[t.Security] = remaining
		key := gainKey{security: t.Security, year: t.Date.Year()}
		agg, ok := g.aggregates[key]
		if !ok {
			agg = &SecurityGain{Security: t.Security, Year: key.year}
			g.aggregates[key] = agg
		}
		agg.Proceeds = agg.Proceeds.Add(t.Proceeds())
		agg.Cost = agg.Cost.Add(cost)
		agg.Fees = agg.Fees.Add(t.Fees)
	default:
		return fmt.Errorf("unsupported record type %q in gains aggregation", t.Type)
	}
	return nil
}

// Aggregates returns one line per security per tax year, sorted by security
// then year.
func (g *Gains) Aggregates() []SecurityGain {
	out := make([]SecurityGain, 0, len(g.aggregates))
	for _, agg := range g.aggregates {
		out = append(out, *agg)
	}
	slices.SortFunc(out, func(a, b SecurityGain) int {
		if c := strings.Compare(a.Security, b.Security); c != 0 {
			return c
		}
		return a.Year - b.Year
	})
	return out
}

// Total returns the sum of all realized gains.
func (g *Gains) Total() Money {
	total := EUR(0)
	for _, agg := range g.aggregates {
		total = total.Add(agg.Gain())
	}
	return total
}

// AcquisitionType is the FURS "nacin pridobitve" code for an acquisition row.
type AcquisitionType string

// AcquisitionPurchase is a regular purchase. FURS knows more codes
// (inheritance, gifts); broker exports only ever produce purchases.
const AcquisitionPurchase AcquisitionType = "A"

// KDVPEntry is one row of a KDVP security inventory: either an acquisition
// (F1-F4 fields) or a disposal (F6, F7, F9, F10), with the running stock F8.
type KDVPEntry struct {
	Date     Date
	Quantity Quantity
	Value    Money    // unit price in EUR
	Stock    Quantity // running position after this entry
	Disposal bool
	// acquisition only
	Mode AcquisitionType
	// disposal only
	LossTransfer bool
}

// sameKind reports whether two entries may be merged: same date, same unit
// price, and the same kind with matching mode or loss-transfer flag.
func (e KDVPEntry) sameKind(o KDVPEntry) bool {
	if e.Date != o.Date || !e.Value.Equal(o.Value) || e.Disposal != o.Disposal {
		return false
	}
	if e.Disposal {
		return e.LossTransfer == o.LossTransfer
	}
	return e.Mode == o.Mode
}

// KDVPItem is the inventory of one security in the KDVP report.
type KDVPItem struct {
	Code    string // security code reported to FURS (max 10 chars, so ticker not ISIN)
	Fund    bool   // true for ETFs and investment funds
	Entries []KDVPEntry
}

// add merges the entry into an existing row with the same date, price and
// kind, or inserts it in chronological order, then recomputes the running
// stock. Acquisitions sort before disposals on the same day.
func (it *KDVPItem) add(e KDVPEntry) {
	merged := false
	for i := range it.Entries {
		if it.Entries[i].sameKind(e) {
			it.Entries[i].Quantity = it.Entries[i].Quantity.Add(e.Quantity)
			merged = true
			break
		}
	}
	if !merged {
		it.Entries = append(it.Entries, e)
		slices.SortStableFunc(it.Entries, func(a, b KDVPEntry) int {
			if c := a.Date.Compare(b.Date); c != 0 {
				return c
			}
			if a.Disposal != b.Disposal {
				if !a.Disposal {
					return -1
				}
				return 1
			}
			return 0
		})
	}
	stock := Q(0)
	for i := range it.Entries {
		if it.Entries[i].Disposal {
			stock = stock.Sub(it.Entries[i].Quantity)
		} else {
			stock = stock.Add(it.Entries[i].Quantity)
		}
		it.Entries[i].Stock = stock
	}
}

// DohKDVP aggregates trades into the KDVP report structure: one item per
// security, each with its merged, chronologically ordered rows.
type DohKDVP struct {
	items map[string]*KDVPItem
	order []string // insertion order of security codes
}

func NewDohKDVP() *DohKDVP {
	return &DohKDVP{items: make(map[string]*KDVPItem)}
}

// AddTrade folds a normalized buy or sell record into the report.
func (k *DohKDVP) AddTrade(t Trade) error {
	item, ok := k.items[t.Security]
	if !ok {
		item = &KDVPItem{Code: t.Security, Fund: t.Fund}
		k.items[t.Security] = item
		k.order = append(k.order, t.Security)
	}
	entry := KDVPEntry{Date: t.Date, Quantity: t.Quantity.Abs(), Value: t.Price}
	switch t.Type {
	case RecBuy:
		entry.Mode = AcquisitionPurchase
	case RecSell:
		entry.Disposal = true
	default:
		return fmt.Errorf("unsupported record type %q in KDVP report", t.Type)
	}
	item.add(entry)
	return nil
}

// Items returns the report items in insertion order.
func (k *DohKDVP) Items() []*KDVPItem {
	out := make([]*KDVPItem, 0, len(k.order))
	for _, code := range k.order {
		out = append(out, k.items[code])
	}
	return out
}

// Len returns the number of securities in the report.
func (k *DohKDVP) Len() int { return len(k.order) }

// Validate checks that no security's running stock ever goes negative. A
// negative position usually indicates an unhandled stock split or corporate
// action in the broker export.
func (k *DohKDVP) Validate() error {
	var errs error
	for _, code := range k.order {
		for _, e := range k.items[code].Entries {
			if e.Stock.IsNegative() {
				errs = errors.Join(errs, fmt.Errorf("security %q: position goes negative (%s) on %s: sell quantity exceeds total purchased shares", code, e.Stock, e.Date))
				break
			}
		}
	}
	return errs
}
