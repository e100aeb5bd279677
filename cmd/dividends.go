package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/subcommands"
	"github.com/jernejstrasner/taxes"
	"github.com/jernejstrasner/taxes/bsi"
	"github.com/jernejstrasner/taxes/edavki"
	"github.com/jernejstrasner/taxes/renderer"
	"github.com/jernejstrasner/taxes/saxo"
)

// dividendsCmd holds the flags for the 'dividends' subcommand.
type dividendsCmd struct {
	reportCmd
	saxoFile       string
	additionalInfo string
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "generate the Doh_Div dividend report" }
func (*dividendsCmd) Usage() string {
	return `efurs dividends -saxo <export.xlsx> [-additional-info <info.xlsx>] [-period <year>]

  Reads a Saxo Bank dividend export, converts each payment to EUR at the
  Bank of Slovenia rate of the payment date, enriches it with payer
  reference data, and writes a Doh_Div XML report ready for eDavki.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	c.commonFlags(f)
	f.StringVar(&c.saxoFile, "saxo", "", "Path to the Saxo Bank dividends export (xlsx)")
	f.StringVar(&c.additionalInfo, "additional-info", "", "Path to a Saxo instrument export with symbol/ISIN pairs (xlsx)")
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.saxoFile == "" {
		fmt.Fprintln(os.Stderr, "the -saxo flag is required")
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
	companies, countries, err := openCaches()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading caches: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.additionalInfo != "" {
		if err := fillISINCache(companies, c.additionalInfo); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading additional info: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	records, err := parseFile(c.saxoFile, saxo.Dividends{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing Saxo export: %v\n", err)
		return subcommands.ExitFailure
	}

	report := taxes.NewDohDiv(c.period)
	for _, record := range records {
		dividend, ok := record.(taxes.Dividend)
		if !ok {
			continue
		}
		if dividend.When().Year() != c.period {
			continue
		}
		line, err := c.enrich(dividend, rateTable, companies, countries, client)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error on dividend %s %s: %v\n", dividend.When(), dividend.Symbol, err)
			return subcommands.ExitFailure
		}
		report.Add(line)
	}
	report.Sort()

	printMarkdown(renderer.DividendsMarkdown(report))

	out := c.outputFile("Doh_Div")
	if err := edavki.Write(out, edavki.Dividends(t, report, c.correction)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	schemaPaths, err := schemas(client, edavki.DivSchema)
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

// enrich converts a dividend payment to EUR and fills in the payer
// reference data FURS requires.
func (c *dividendsCmd) enrich(d taxes.Dividend, rateTable *bsi.Rates, companies *taxes.CompanyCache, countries *taxes.CountryCache, client *http.Client) (taxes.DividendLine, error) {
	value, err := rateTable.Convert(d.Value, d.When())
	if err != nil {
		return taxes.DividendLine{}, err
	}
	foreignTax, err := rateTable.Convert(d.ForeignTax, d.When())
	if err != nil {
		return taxes.DividendLine{}, err
	}

	isin, address, err := companyInfo(companies, client, d.Symbol)
	if err != nil {
		return taxes.DividendLine{}, err
	}
	country := isin.Country()
	relief, err := reliefStatement(countries, country)
	if err != nil {
		return taxes.DividendLine{}, err
	}

	return taxes.DividendLine{
		Date:            d.When(),
		PayerID:         isin,
		Payer:           d.Payer,
		Address:         address,
		Country:         country,
		Value:           value,
		ForeignTax:      foreignTax,
		ReliefStatement: relief,
	}, nil
}
