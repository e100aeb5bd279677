package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jernejstrasner/taxes"
	"github.com/jernejstrasner/taxes/edavki"
	"github.com/jernejstrasner/taxes/renderer"
	"github.com/jernejstrasner/taxes/revolut"
	"github.com/jernejstrasner/taxes/saxo"
)

// interestCmd holds the flags for the 'interest' subcommand.
type interestCmd struct {
	reportCmd
	saxoFile    string
	revolutFile string
	condensed   bool
}

func (*interestCmd) Name() string     { return "interest" }
func (*interestCmd) Synopsis() string { return "generate the Doh_Obr interest report" }
func (*interestCmd) Usage() string {
	return `efurs interest [-saxo <export.xlsx>] [-revolut <statement.csv>] [-condensed] [-period <year>]

  Reads interest payments from a Saxo Bank export and/or a Revolut
  statement, converts each to EUR at the Bank of Slovenia rate of the
  payment date, and writes a Doh_Obr XML report ready for eDavki. With
  -condensed, payments from the same payer collapse into one line dated
  at the latest payment.
`
}

func (c *interestCmd) SetFlags(f *flag.FlagSet) {
	c.commonFlags(f)
	f.StringVar(&c.saxoFile, "saxo", "", "Path to the Saxo Bank interest export (xlsx)")
	f.StringVar(&c.revolutFile, "revolut", "", "Path to the Revolut statement export (csv)")
	f.BoolVar(&c.condensed, "condensed", false, "Collapse payments from the same payer into one line")
}

func (c *interestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.saxoFile == "" && c.revolutFile == "" {
		fmt.Fprintln(os.Stderr, "at least one of -saxo or -revolut is required")
		return subcommands.ExitUsageError
	}

	t, err := c.taxpayer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading taxpayer: %v\n", err)
		return subcommands.ExitFailure
	}

	client := taxes.CachedClient()
	rateTable, err := rates(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading exchange rates: %v\n", err)
		return subcommands.ExitFailure
	}
	_, countries, err := openCaches()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading caches: %v\n", err)
		return subcommands.ExitFailure
	}

	var records []taxes.Transaction
	if c.saxoFile != "" {
		parsed, err := parseFile(c.saxoFile, saxo.Interest{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing Saxo export: %v\n", err)
			return subcommands.ExitFailure
		}
		records = append(records, parsed...)
	}
	if c.revolutFile != "" {
		parsed, err := parseFile(c.revolutFile, revolut.Interest{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing Revolut statement: %v\n", err)
			return subcommands.ExitFailure
		}
		records = append(records, parsed...)
	}

	report := taxes.NewDohObr(c.period)
	for _, record := range records {
		interest, ok := record.(taxes.Interest)
		if !ok {
			continue
		}
		if interest.When().Year() != c.period {
			continue
		}
		value, err := rateTable.Convert(interest.Value, interest.When())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error on interest %s %s: %v\n", interest.When(), interest.Payer, err)
			return subcommands.ExitFailure
		}
		interest.Value = value
		if !interest.ForeignTax.IsZero() {
			tax, err := rateTable.Convert(interest.ForeignTax, interest.When())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error on interest %s %s: %v\n", interest.When(), interest.Payer, err)
				return subcommands.ExitFailure
			}
			interest.ForeignTax = tax
			relief, err := reliefStatement(countries, interest.Country)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error on interest %s %s: %v\n", interest.When(), interest.Payer, err)
				return subcommands.ExitFailure
			}
			interest.ReliefStatement = relief
		}
		report.Add(interest)
	}
	if c.condensed {
		report.Condense()
	}
	report.Sort()

	printMarkdown(renderer.InterestMarkdown(report, c.condensed))

	out := c.outputFile("Doh_Obr")
	if err := edavki.Write(out, edavki.Interests(t, report, c.correction)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	schemaPaths, err := schemas(client, edavki.ObrSchema)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error downloading schemas: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := edavki.Verify(out, schemaPaths...); err != nil {
		fmt.Fprintf(os.Stderr, "Report failed schema verification: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s\n", out)
	return subcommands.ExitSuccess
}
