package edavki

import "github.com/jernejstrasner/taxes"

// Doh_Obr body: the report element with one nested Interest element per
// payment line.

type obrBody struct {
	BodyContent struct{}  `xml:"edp:bodyContent"`
	DohObr      obrReport `xml:"Doh_Obr"`
}

type obrReport struct {
	SelfReport                   bool       `xml:"SelfReport"`
	WfTypeU                      bool       `xml:"WfTypeU"`
	Period                       int        `xml:"Period"`
	DocumentWorkflowID           string     `xml:"DocumentWorkflowID"`
	Email                        string     `xml:"Email"`
	TelephoneNumber              string     `xml:"TelephoneNumber"`
	ResidentOfRepublicOfSlovenia bool       `xml:"ResidentOfRepublicOfSlovenia"`
	Country                      string     `xml:"Country"`
	Interests                    []interest `xml:"Interest"`
}

type interest struct {
	Date                 string `xml:"Date"`
	IdentificationNumber string `xml:"IdentificationNumber"`
	Name                 string `xml:"Name"`
	Address              string `xml:"Address"`
	Country              string `xml:"Country"`
	Type                 int    `xml:"Type"`
	Value                string `xml:"Value"`
	ForeignTax           string `xml:"ForeignTax,omitempty"`
	Country2             string `xml:"Country2"`
	ReliefStatement      string `xml:"ReliefStatement,omitempty"`
}

// Interests builds the Doh_Obr envelope for an interest report.
func Interests(t *taxes.Taxpayer, report *taxes.DohObr, correction bool) any {
	body := obrBody{
		DohObr: obrReport{
			Period:                       report.Period,
			DocumentWorkflowID:           workflowID(correction),
			Email:                        t.Email,
			TelephoneNumber:              t.Phone,
			ResidentOfRepublicOfSlovenia: true,
			Country:                      "SI",
		},
	}
	for _, line := range report.Interests {
		x := interest{
			Date:                 line.Date.String(),
			IdentificationNumber: line.PayerID,
			Name:                 line.Payer,
			Address:              line.Address,
			Country:              line.Country,
			Type:                 int(line.InterestType),
			Value:                line.Value.Fixed2(),
			Country2:             line.SourceCountry,
			ReliefStatement:      line.ReliefStatement,
		}
		if !line.ForeignTax.IsZero() {
			x.ForeignTax = line.ForeignTax.Fixed2()
		}
		body.DohObr.Interests = append(body.DohObr.Interests, x)
	}
	return envelope{
		Xmlns:    ObrNamespace,
		XmlnsEDP: EDPNamespace,
		Header:   header{Taxpayer: newTaxpayer(t, false)},
		Body:     body,
	}
}
