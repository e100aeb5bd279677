package edavki

import (
	"fmt"

	"github.com/jernejstrasner/taxes"
)

// Doh_KDVP body: the KDVP summary element followed by one KDVPItem per
// security, each carrying its inventory rows.

type kdvpBody struct {
	BodyContent struct{}   `xml:"edp:bodyContent"`
	DohKDVP     kdvpReport `xml:"Doh_KDVP"`
}

type kdvpReport struct {
	KDVP  kdvpSummary `xml:"KDVP"`
	Items []kdvpItem  `xml:"KDVPItem"`
}

type kdvpSummary struct {
	DocumentWorkflowID             string `xml:"DocumentWorkflowID"`
	Year                           int    `xml:"Year"`
	PeriodStart                    string `xml:"PeriodStart"`
	PeriodEnd                      string `xml:"PeriodEnd"`
	IsResident                     bool   `xml:"IsResident"`
	TelephoneNumber                string `xml:"TelephoneNumber"`
	SecurityCount                  int    `xml:"SecurityCount"`
	SecurityShortCount             int    `xml:"SecurityShortCount"`
	SecurityWithContractCount      int    `xml:"SecurityWithContractCount"`
	SecurityWithContractShortCount int    `xml:"SecurityWithContractShortCount"`
	ShareCount                     int    `xml:"ShareCount"`
	SecurityCapitalReductionCount  int    `xml:"SecurityCapitalReductionCount"`
	Email                          string `xml:"Email"`
}

type kdvpItem struct {
	ItemID                 int            `xml:"ItemID"`
	InventoryListType      string         `xml:"InventoryListType"` // "PLVP", securities inventory
	Name                   string         `xml:"Name"`
	HasForeignTax          bool           `xml:"HasForeignTax"`
	HasLossTransfer        bool           `xml:"HasLossTransfer"`
	ForeignTransfer        bool           `xml:"ForeignTransfer"`
	TaxDecreaseConformance bool           `xml:"TaxDecreaseConformance"`
	Securities             kdvpSecurities `xml:"Securities"`
}

type kdvpSecurities struct {
	Code   string    `xml:"Code"`
	IsFond bool      `xml:"IsFond"`
	Rows   []kdvpRow `xml:"Row"`
}

type kdvpRow struct {
	ID       int           `xml:"ID"`
	Purchase *kdvpPurchase `xml:"Purchase,omitempty"`
	Sale     *kdvpSale     `xml:"Sale,omitempty"`
	F8       string        `xml:"F8"` // running stock after this row
}

type kdvpPurchase struct {
	F1 string `xml:"F1"` // acquisition date
	F2 string `xml:"F2"` // acquisition type code
	F3 string `xml:"F3"` // quantity
	F4 string `xml:"F4"` // unit price in EUR
}

type kdvpSale struct {
	F6  string `xml:"F6"`  // disposal date
	F7  string `xml:"F7"`  // quantity
	F9  string `xml:"F9"`  // unit price in EUR
	F10 bool   `xml:"F10"` // tax base reduction allowed
}

// Gains builds the Doh_KDVP envelope for a capital gains report covering
// one tax year.
func Gains(t *taxes.Taxpayer, report *taxes.DohKDVP, year int, correction bool) any {
	body := kdvpBody{
		DohKDVP: kdvpReport{
			KDVP: kdvpSummary{
				DocumentWorkflowID: workflowID(correction),
				Year:               year,
				PeriodStart:        fmt.Sprintf("%d-01-01", year),
				PeriodEnd:          fmt.Sprintf("%d-12-31", year),
				IsResident:         true,
				TelephoneNumber:    t.Phone,
				SecurityCount:      report.Len(),
				Email:              t.Email,
			},
		},
	}
	for i, item := range report.Items() {
		x := kdvpItem{
			ItemID:            i + 1,
			InventoryListType: "PLVP",
			Name:              item.Code,
			Securities: kdvpSecurities{
				Code:   item.Code,
				IsFond: item.Fund,
			},
		}
		for j, e := range item.Entries {
			row := kdvpRow{ID: j, F8: e.Stock.Fixed4()}
			if e.Disposal {
				row.Sale = &kdvpSale{
					F6:  e.Date.String(),
					F7:  e.Quantity.Fixed4(),
					F9:  e.Value.Fixed4(),
					F10: true,
				}
			} else {
				row.Purchase = &kdvpPurchase{
					F1: e.Date.String(),
					F2: string(e.Mode),
					F3: e.Quantity.Fixed4(),
					F4: e.Value.Fixed4(),
				}
			}
			x.Securities.Rows = append(x.Securities.Rows, row)
		}
		body.DohKDVP.Items = append(body.DohKDVP.Items, x)
	}
	return envelope{
		Xmlns:    KDVPNamespace,
		XmlnsEDP: EDPNamespace,
		Header:   header{Taxpayer: newTaxpayer(t, true)},
		Body:     body,
	}
}
