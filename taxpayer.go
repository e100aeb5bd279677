package taxes

import (
	"encoding/xml"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

// Taxpayer holds the personal data written into the EDP envelope header of
// every report. It is read from a small XML file kept next to the caches.
type Taxpayer struct {
	XMLName    xml.Name `xml:"taxpayer"`
	TaxNumber  string   `xml:"taxNumber"`
	Name       string   `xml:"name"`
	Address    string   `xml:"address"`
	City       string   `xml:"city"`
	PostNumber string   `xml:"postNumber"`
	PostName   string   `xml:"postName"`
	Email      string   `xml:"email"`
	Phone      string   `xml:"phone"`
	BirthDate  string   `xml:"birthDate"` // ISO date
}

// DecodeTaxpayer reads the taxpayer XML file and checks all fields are
// present.
func DecodeTaxpayer(path string) (*Taxpayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read taxpayer file %q: %w (create it with the taxpayer's personal data, see EncodeTaxpayer for the format)", path, err)
	}
	var t Taxpayer
	if err := xml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("cannot parse taxpayer file %q: %w", path, err)
	}
	if missing := t.missingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("taxpayer file %q is missing fields: %s", path, strings.Join(missing, ", "))
	}
	// A birth date predates the broker data range, so only the layout is
	// checked.
	if t.BirthDate != "" {
		if _, err := time.Parse(DateFormat, t.BirthDate); err != nil {
			return nil, fmt.Errorf("taxpayer file %q: invalid birthDate: %w", path, err)
		}
	}
	return &t, nil
}

func (t *Taxpayer) missingFields() []string {
	var missing []string
	for name, value := range map[string]string{
		"taxNumber":  t.TaxNumber,
		"name":       t.Name,
		"address":    t.Address,
		"city":       t.City,
		"postNumber": t.PostNumber,
		"postName":   t.PostName,
		"email":      t.Email,
		"phone":      t.Phone,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)
	return missing
}

// RequireBirthDate checks that the birth date is set. The Doh_KDVP envelope
// header carries it as a mandatory element, so the gains report must refuse
// to run without it; the other reports do not use it.
func (t *Taxpayer) RequireBirthDate() error {
	if strings.TrimSpace(t.BirthDate) == "" {
		return fmt.Errorf("taxpayer birthDate is not set: the capital gains report header requires it, add <birthDate> to the taxpayer file")
	}
	return nil
}

// EncodeTaxpayer writes the taxpayer file, creating a template other runs
// can read back.
func EncodeTaxpayer(path string, t *Taxpayer) error {
	if err := writeXMLFile(path, t); err != nil {
		return fmt.Errorf("cannot write taxpayer file %q: %w", path, err)
	}
	return nil
}
