// Package cmd implements the CLI application generating FURS tax reports
// from broker exports.
package cmd

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/jernejstrasner/taxes"
	"github.com/jernejstrasner/taxes/bsi"
	"github.com/jernejstrasner/taxes/edavki"
	"github.com/jernejstrasner/taxes/saxo"
	"github.com/jernejstrasner/taxes/yahoo"
)

// Commands lists the subcommands for the main package to register.
var Commands = []subcommands.Command{
	&dividendsCmd{},
	&gainsCmd{},
	&interestCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "data", "Directory for downloaded schemas and the exchange rate table")
var companyCacheFile = flag.String("company-cache", "company_cache.xml", "Path to the company reference data cache (XML)")
var countryCacheFile = flag.String("country-cache", "country_cache.xml", "Path to the country relief statement cache (XML)")

// reportCmd holds the flags every report subcommand shares.
type reportCmd struct {
	period       int
	output       string
	taxpayerFile string
	correction   bool
	noTimestamp  bool
}

// commonFlags registers the flags shared by all report subcommands.
func (c *reportCmd) commonFlags(f *flag.FlagSet) {
	f.IntVar(&c.period, "period", time.Now().Year()-1, "Tax year of the report")
	f.StringVar(&c.output, "output", "", "Path of the output XML file (default outputs/<report>.xml)")
	f.StringVar(&c.taxpayerFile, "taxpayer", filepath.Join("cache", "taxpayer.xml"), "Path to the taxpayer XML file")
	f.BoolVar(&c.correction, "correction", false, "Mark the report as a correction of an already submitted one")
	f.BoolVar(&c.noTimestamp, "no-timestamp", false, "Don't add a timestamp to the output filename (will overwrite existing files)")
}

// taxpayer loads and validates the taxpayer record.
func (c *reportCmd) taxpayer() (*taxes.Taxpayer, error) {
	return taxes.DecodeTaxpayer(c.taxpayerFile)
}

// outputFile returns the report path: the -output flag if given, otherwise
// outputs/<base>[_timestamp].xml.
func (c *reportCmd) outputFile(base string) string {
	if c.output != "" {
		return c.output
	}
	name := base
	if !c.noTimestamp {
		name = fmt.Sprintf("%s_%s", base, time.Now().Format("20060102_150405"))
	}
	return filepath.Join("outputs", name+".xml")
}

// rates downloads (or reuses today's cached copy of) the Bank of Slovenia
// rate table.
func rates(client *http.Client) (*bsi.Rates, error) {
	return bsi.Fetch(client, filepath.Join(*dataDir, "currency.xml"))
}

// schemas downloads (or reuses today's cached copies of) the given report
// schema plus the shared EDP schema, returning their local paths.
func schemas(client *http.Client, name string) ([]string, error) {
	return edavki.DownloadSchemas(client, *dataDir, name, edavki.EDPSchema)
}

// openCaches loads the company and country reference data caches.
func openCaches() (*taxes.CompanyCache, *taxes.CountryCache, error) {
	companies, err := taxes.DecodeCompanyCache(*companyCacheFile)
	if err != nil {
		return nil, nil, err
	}
	countries, err := taxes.DecodeCountryCache(*countryCacheFile)
	if err != nil {
		return nil, nil, err
	}
	return companies, countries, nil
}

// fillISINCache pre-fills the company cache from a Saxo additional-info
// export.
func fillISINCache(companies *taxes.CompanyCache, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open additional-info file %q: %w", path, err)
	}
	defer f.Close()
	instruments, err := saxo.ParseInstruments(f)
	if err != nil {
		return err
	}
	for _, instrument := range instruments {
		companies.SetISIN(instrument.Symbol, instrument.ISIN)
	}
	return companies.Flush()
}

// companyInfo resolves the ISIN and address for a symbol: cache first, then
// Yahoo Finance, and caches whatever the lookup found.
func companyInfo(companies *taxes.CompanyCache, client *http.Client, symbol string) (isin taxes.ISIN, address string, err error) {
	cachedISIN, cachedAddress := companies.ISIN(symbol), companies.Address(symbol)
	if cachedISIN != "" && cachedAddress != "" {
		isin, err = taxes.ParseISIN(cachedISIN)
		return isin, cachedAddress, err
	}

	info, lookupErr := yahoo.Lookup(client, symbol)
	if cachedAddress == "" && lookupErr == nil && info.Address != "" {
		cachedAddress = info.Address
		companies.SetAddress(symbol, cachedAddress)
	}
	if cachedISIN == "" && lookupErr == nil && info.ISIN != "" {
		if parsed, err := taxes.ParseISIN(info.ISIN); err == nil {
			cachedISIN = parsed.String()
			companies.SetISIN(symbol, parsed)
		}
	}
	if err := companies.Flush(); err != nil {
		return "", "", err
	}

	if cachedISIN == "" {
		return "", "", fmt.Errorf("no ISIN known for %q: add it to %s or pass a Saxo additional-info file with -additional-info", symbol, *companyCacheFile)
	}
	if cachedAddress == "" {
		return "", "", fmt.Errorf("no address known for %q: add it to %s", symbol, *companyCacheFile)
	}
	isin, err = taxes.ParseISIN(cachedISIN)
	return isin, cachedAddress, err
}

// reliefStatement resolves the withholding-tax relief statement for a
// country from the country cache.
func reliefStatement(countries *taxes.CountryCache, country string) (string, error) {
	statement := countries.ReliefStatement(country)
	if statement == "" {
		return "", fmt.Errorf("no relief statement known for country %q: add it to %s", country, *countryCacheFile)
	}
	return statement, nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
