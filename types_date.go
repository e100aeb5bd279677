package taxes

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// brokerDateFormats are the date layouts seen across broker exports, tried in order.
var brokerDateFormats = []string{
	DateFormat,    // ISO
	"02-Jan-2006", // Saxo Bank
	"20060102",    // IBKR Flex Query
	"2.1.2006",    // Slovenian
	"2006/01/02",
	"02/01/2006",
}

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or 1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// minDate bounds broker data: anything earlier is assumed to be a parsing artifact.
var minDate = NewDate(1990, time.January, 1)

// ParseDate parses a broker-supplied date and checks it is plausible for
// financial data: not in the future and not before 1990.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	var on time.Time
	var err error
	for _, format := range brokerDateFormats {
		if on, err = time.Parse(format, str); err == nil {
			break
		}
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want one of %s", str, strings.Join(brokerDateFormats, ", "))
	}
	d := NewDate(on.Date())
	if d.After(Today()) {
		return Date{}, fmt.Errorf("date %s is in the future", d)
	}
	if d.Before(minDate) {
		return Date{}, fmt.Errorf("date %s is before %s: too old for broker data", d, minDate)
	}
	return d, nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
