package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jernejstrasner/taxes"
	"github.com/jernejstrasner/taxes/bsi"
	"github.com/jernejstrasner/taxes/edavki"
	"github.com/jernejstrasner/taxes/ibkr"
	"github.com/jernejstrasner/taxes/renderer"
	"github.com/jernejstrasner/taxes/saxo"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	reportCmd
	saxoFile string
	ibkrFile string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "generate the Doh_KDVP capital gains report" }
func (*gainsCmd) Usage() string {
	return `efurs gains [-saxo <export.xlsx>] [-ibkr <flex.xml>] [-period <year>]

  Reads closed positions from a Saxo Bank export and/or an IBKR Flex Query
  export, converts every trade to EUR at the Bank of Slovenia rate of the
  trade date, matches sales to acquisitions, and writes a Doh_KDVP XML
  report ready for eDavki.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	c.commonFlags(f)
	f.StringVar(&c.saxoFile, "saxo", "", "Path to the Saxo Bank closed positions export (xlsx)")
	f.StringVar(&c.ibkrFile, "ibkr", "", "Path to the IBKR Flex Query export (xml)")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.saxoFile == "" && c.ibkrFile == "" {
		fmt.Fprintln(os.Stderr, "at least one of -saxo or -ibkr is required")
		return subcommands.ExitUsageError
	}

	t, err := c.taxpayer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading taxpayer: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := t.RequireBirthDate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client := taxes.CachedClient()
	rateTable, err := rates(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading exchange rates: %v\n", err)
		return subcommands.ExitFailure
	}

	var records []taxes.Transaction
	if c.saxoFile != "" {
		parsed, err := parseFile(c.saxoFile, saxo.Trades{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing Saxo export: %v\n", err)
			return subcommands.ExitFailure
		}
		records = append(records, parsed...)
	}
	if c.ibkrFile != "" {
		parsed, err := parseFile(c.ibkrFile, ibkr.Trades{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing IBKR export: %v\n", err)
			return subcommands.ExitFailure
		}
		records = append(records, parsed...)
	}

	trades, err := c.toEUR(records, rateTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting trades: %v\n", err)
		return subcommands.ExitFailure
	}

	gains, err := taxes.NewGains(trades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error matching trades: %v\n", err)
		return subcommands.ExitFailure
	}

	report := taxes.NewDohKDVP()
	for _, trade := range trades {
		if err := report.AddTrade(trade); err != nil {
			fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if err := report.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Report is inconsistent: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.GainsMarkdown(gains, report, c.period))

	out := c.outputFile("Doh_KDVP")
	if err := edavki.Write(out, edavki.Gains(t, report, c.period, c.correction)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	schemaPaths, err := schemas(client, edavki.KDVPSchema)
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

// toEUR converts every trade's price and fees to EUR at the Bank of
// Slovenia rate of the trade date, keeping the full history up to the end
// of the report year. Prior-year sales must stay in: they consume their
// lots, so a later sale matches the correct remaining lot and the
// inventory's running stock accounts for every disposal. Trades after the
// report year are excluded.
func (c *gainsCmd) toEUR(records []taxes.Transaction, rateTable *bsi.Rates) ([]taxes.Trade, error) {
	var trades []taxes.Trade
	for _, record := range records {
		trade, ok := record.(taxes.Trade)
		if !ok {
			continue
		}
		if trade.When().Year() > c.period {
			continue
		}
		price, err := rateTable.Convert(trade.Price, trade.When())
		if err != nil {
			return nil, fmt.Errorf("trade %s %s: %w", trade.When(), trade.Security, err)
		}
		fees, err := rateTable.Convert(trade.Fees, trade.When())
		if err != nil {
			return nil, fmt.Errorf("trade %s %s: %w", trade.When(), trade.Security, err)
		}
		trade.Price, trade.Fees = price, fees
		trades = append(trades, trade)
	}
	return trades, nil
}

// parseFile opens a broker export and runs the given parser over it.
func parseFile(path string, parser taxes.Parser) ([]taxes.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parser.Parse(file)
}
