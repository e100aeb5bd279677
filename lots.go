package taxes

import "fmt"

// lot represents a single acquisition batch of a security, used for cost
// basis matching.
type lot struct {
	Date     Date
	Quantity Quantity
	Cost     Money // Total cost basis of the lot in EUR (price * quantity + fees)
}

type lots []lot

// total returns the total quantity held across all lots.
func (l lots) total() Quantity {
	var t Quantity
	for _, currentLot := range l {
		t = t.Add(currentLot.Quantity)
	}
	return t
}

// sell consumes lots earliest-first for a given quantity and returns the
// remaining lots and the cost basis of the sold shares. Lots fully consumed
// are removed, a partially consumed lot keeps its proportional residual
// cost. Selling more than the open quantity is an error (short sale).
func (l lots) sell(quantityToSell Quantity) (remaining lots, costOfSoldShares Money, err error) {
	if quantityToSell.GreaterThan(l.total()) {
		return l, Money{}, fmt.Errorf("sell of %s exceeds open position of %s", quantityToSell, l.total())
	}
	for _, currentLot := range l {
		if quantityToSell.IsZero() {
			remaining = append(remaining, currentLot)
			continue
		}

		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			costOfSoldPortion := currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity)
			costOfSoldShares = costOfSoldShares.Add(costOfSoldPortion)
			remaining = append(remaining, lot{
				Date:     currentLot.Date,
				Quantity: currentLot.Quantity.Sub(quantityToSell),
				Cost:     currentLot.Cost.Sub(costOfSoldPortion),
			})
			quantityToSell = Q(0)
		} else {
			// Full sale of this lot
			costOfSoldShares = costOfSoldShares.Add(currentLot.Cost)
			quantityToSell = quantityToSell.Sub(currentLot.Quantity)
		}
	}
	return remaining, costOfSoldShares, nil
}
