// Package renderer builds markdown run summaries for the generated
// reports, printed to the terminal after the XML is written.
package renderer

import (
	"fmt"
	"strings"

	"github.com/jernejstrasner/taxes"
)

// DividendsMarkdown renders the dividends report summary.
func DividendsMarkdown(report *taxes.DohDiv) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dividends Report %d\n\n", report.Period)
	fmt.Fprintln(&b, "| Date | Payer | Dividend (EUR) | Foreign Tax (EUR) |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, line := range report.Lines {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			line.Date, line.Payer, line.Value.Fixed2(), line.ForeignTax.Fixed2())
	}
	value, tax := report.Totals()
	fmt.Fprintf(&b, "| | **Total** | **%s** | **%s** |\n", value.Fixed2(), tax.Fixed2())

	return b.String()
}

// GainsMarkdown renders the realized gains per security for the report
// year, and the KDVP row counts that went into the report. The gains
// aggregation replays the full trade history, so prior years are filtered
// out here.
func GainsMarkdown(gains *taxes.Gains, report *taxes.DohKDVP, year int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Report %d\n\n", year)
	fmt.Fprintf(&b, "Securities reported: %d\n\n", report.Len())

	fmt.Fprint(&b, "## Realized Gains per Security\n\n")
	fmt.Fprintln(&b, "| Security | Proceeds | Cost Basis | Fees | Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	total := taxes.EUR(0)
	for _, agg := range gains.Aggregates() {
		if agg.Year != year {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			agg.Security,
			agg.Proceeds.Fixed2(), agg.Cost.Fixed2(), agg.Fees.Fixed2(),
			agg.Gain().SignedString(),
		)
		total = total.Add(agg.Gain())
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** |\n", total.SignedString())

	return b.String()
}

// InterestMarkdown renders the interest report summary.
func InterestMarkdown(report *taxes.DohObr, condensed bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Interest Report %d\n\n", report.Period)
	if condensed {
		fmt.Fprint(&b, "Condensed: one line per payer.\n\n")
	}
	fmt.Fprintln(&b, "| Date | Payer | Interest (EUR) |")
	fmt.Fprintln(&b, "|:---|:---|---:|")
	for _, line := range report.Interests {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", line.Date, line.Payer, line.Value.Fixed2())
	}
	fmt.Fprintf(&b, "| | **Total** | **%s** |\n", report.Total().Fixed2())

	return b.String()
}
