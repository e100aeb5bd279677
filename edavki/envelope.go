// Package edavki assembles and verifies the FURS report XML documents
// submitted through the eDavki portal: Doh_Div (dividends), Doh_KDVP
// (capital gains) and Doh_Obr (interest).
//
// Every document is an EDP envelope: a header with the taxpayer data,
// empty attachment and signature lists, and the report body. encoding/xml
// cannot emit namespace prefixes from xml.Name, so the edp: prefix is
// written literally in the field tags; documents are marshal-only and
// verification re-parses them generically.
package edavki

import "github.com/jernejstrasner/taxes"

// Schema namespaces of the supported report types.
const (
	EDPNamespace  = "http://edavki.durs.si/Documents/Schemas/EDP-Common-1.xsd"
	DivNamespace  = "http://edavki.durs.si/Documents/Schemas/Doh_Div_3.xsd"
	KDVPNamespace = "http://edavki.durs.si/Documents/Schemas/Doh_KDVP_9.xsd"
	ObrNamespace  = "http://edavki.durs.si/Documents/Schemas/Doh_Obr_2.xsd"
)

// workflow IDs: "O" for an original filing, "P" for a correction of an
// already submitted report.
const (
	workflowOriginal   = "O"
	workflowCorrection = "P"
)

func workflowID(correction bool) string {
	if correction {
		return workflowCorrection
	}
	return workflowOriginal
}

type envelope struct {
	XMLName        struct{} `xml:"Envelope"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsEDP       string   `xml:"xmlns:edp,attr"`
	Header         header   `xml:"edp:Header"`
	AttachmentList struct{} `xml:"edp:AttachmentList"`
	Signatures     struct{} `xml:"edp:Signatures"`
	Body           any      `xml:"body"`
}

type header struct {
	Taxpayer taxpayer  `xml:"edp:taxpayer"`
	Workflow *workflow `xml:"edp:Workflow,omitempty"`
	Domain   string    `xml:"edp:domain,omitempty"`
}

type taxpayer struct {
	TaxNumber    string `xml:"edp:taxNumber"`
	TaxpayerType string `xml:"edp:taxpayerType"` // always "FO", a natural person
	Name         string `xml:"edp:name"`
	Address1     string `xml:"edp:address1"`
	City         string `xml:"edp:city"`
	PostNumber   string `xml:"edp:postNumber"`
	PostName     string `xml:"edp:postName,omitempty"`
	BirthDate    string `xml:"edp:birthDate,omitempty"`
}

type workflow struct {
	DocumentWorkflowID   string `xml:"edp:DocumentWorkflowID"`
	DocumentWorkflowName string `xml:"edp:DocumentWorkflowName"`
}

// newTaxpayer maps the cached taxpayer record into the envelope header
// form. Each report type picks slightly different fields: KDVP wants the
// birth date, the others the post name.
func newTaxpayer(t *taxes.Taxpayer, withBirthDate bool) taxpayer {
	tp := taxpayer{
		TaxNumber:    t.TaxNumber,
		TaxpayerType: "FO",
		Name:         t.Name,
		Address1:     t.Address,
		City:         t.City,
		PostNumber:   t.PostNumber,
	}
	if withBirthDate {
		tp.BirthDate = t.BirthDate
	} else {
		tp.PostName = t.PostName
	}
	return tp
}
