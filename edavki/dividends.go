package edavki

import "github.com/jernejstrasner/taxes"

// Doh_Div body: the report header element followed by one Dividend element
// per enriched line, siblings inside <body>.

type divBody struct {
	DohDiv    divReport  `xml:"Doh_Div"`
	Dividends []dividend `xml:"Dividend"`
}

type divReport struct {
	Period          int    `xml:"Period"`
	EmailAddress    string `xml:"EmailAddress"`
	PhoneNumber     string `xml:"PhoneNumber"`
	ResidentCountry string `xml:"ResidentCountry"`
	IsResident      bool   `xml:"IsResident"`
	SelfReport      bool   `xml:"SelfReport"`
	WfTypeU         bool   `xml:"WfTypeU"`
}

type dividend struct {
	Date                      string `xml:"Date"`
	PayerIdentificationNumber string `xml:"PayerIdentificationNumber"`
	PayerName                 string `xml:"PayerName"`
	PayerAddress              string `xml:"PayerAddress"`
	PayerCountry              string `xml:"PayerCountry"`
	Type                      string `xml:"Type"` // "1", ordinary dividend
	Value                     string `xml:"Value"`
	ForeignTax                string `xml:"ForeignTax"`
	SourceCountry             string `xml:"SourceCountry"`
	ReliefStatement           string `xml:"ReliefStatement"`
}

// Dividends builds the Doh_Div envelope for an enriched dividends report.
func Dividends(t *taxes.Taxpayer, report *taxes.DohDiv, correction bool) any {
	body := divBody{
		DohDiv: divReport{
			Period:          report.Period,
			EmailAddress:    t.Email,
			PhoneNumber:     t.Phone,
			ResidentCountry: "SI",
			IsResident:      true,
		},
	}
	for _, line := range report.Lines {
		body.Dividends = append(body.Dividends, dividend{
			Date:                      line.Date.String(),
			PayerIdentificationNumber: line.PayerID.String(),
			PayerName:                 line.Payer,
			PayerAddress:              line.Address,
			PayerCountry:              line.Country,
			Type:                      "1",
			Value:                     line.Value.Fixed2(),
			ForeignTax:                line.ForeignTax.Fixed2(),
			SourceCountry:             line.Country,
			ReliefStatement:           line.ReliefStatement,
		})
	}
	return envelope{
		Xmlns:    DivNamespace,
		XmlnsEDP: EDPNamespace,
		Header: header{
			Taxpayer: newTaxpayer(t, false),
			Workflow: &workflow{DocumentWorkflowID: workflowID(correction)},
			Domain:   "edavki.durs.si",
		},
		Body: body,
	}
}
