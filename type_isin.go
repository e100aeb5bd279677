package taxes

import (
	"fmt"
	"regexp"
	"strings"
)

// ISIN is an International Securities Identification Number (ISO 6166):
// two country letters, nine alphanumerics and a Luhn check digit.
type ISIN string

var isinRE = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ParseISIN validates an ISIN, including its Luhn checksum, and returns it
// normalized to upper case.
func ParseISIN(s string) (ISIN, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("empty ISIN")
	}
	if len(s) != 12 {
		return "", fmt.Errorf("ISIN %q must be exactly 12 characters, got %d", s, len(s))
	}
	if !isinRE.MatchString(s) {
		return "", fmt.Errorf("ISIN %q has invalid format: want 2 letters, 9 alphanumerics, 1 check digit", s)
	}
	if !isinChecksum(s) {
		return "", fmt.Errorf("ISIN %q has invalid check digit", s)
	}
	return ISIN(s), nil
}

// Country returns the ISO 3166-1 alpha-2 country prefix of the ISIN.
func (i ISIN) Country() string { return string(i[:2]) }

func (i ISIN) String() string { return string(i) }

// isinChecksum verifies the check digit using the Luhn algorithm over the
// letter-expanded digit string (A=10 ... Z=35).
func isinChecksum(isin string) bool {
	var digits []int
	for _, r := range isin {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		} else {
			n := int(r-'A') + 10
			digits = append(digits, n/10, n%10)
		}
	}
	// Double every second digit from the right, the check digit excluded.
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
