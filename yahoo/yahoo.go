// Package yahoo looks up company reference data (registered address, and
// the ISIN when the payload carries one) from the Yahoo Finance quote
// summary endpoint. It is the network fallback behind the company cache;
// results are cached by the daily HTTP disk cache.
package yahoo

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/jernejstrasner/taxes"
)

const quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=assetProfile,quoteType"

// Info is the company reference data a lookup can produce. Fields the
// payload did not carry are empty.
type Info struct {
	Address string
	ISIN    string
}

// Lookup fetches the quote summary for a symbol and plucks the address and
// ISIN out of it. Saxo symbols like "AAPL:xnas" are queried by their
// ticker part.
func Lookup(client *http.Client, symbol string) (Info, error) {
	ticker := symbol
	if i := strings.Index(ticker, ":"); i >= 0 {
		ticker = ticker[:i]
	}

	var jobj any
	addr := fmt.Sprintf(quoteSummaryURL, url.PathEscape(ticker))
	if err := taxes.GetJSON(client, addr, &jobj); err != nil {
		return Info{}, fmt.Errorf("cannot fetch company info for %q: %w", symbol, err)
	}

	var info Info
	// The profile address is split over several fields; join the non-empty ones.
	var parts []string
	for _, path := range []string{
		"$.quoteSummary.result[0].assetProfile.address1",
		"$.quoteSummary.result[0].assetProfile.city",
		"$.quoteSummary.result[0].assetProfile.state",
		"$.quoteSummary.result[0].assetProfile.zip",
	} {
		if v, ok := pluck(jobj, path); ok {
			parts = append(parts, v)
		}
	}
	info.Address = strings.Join(parts, ", ")

	if v, ok := pluck(jobj, "$.quoteSummary.result[0].quoteType.isin"); ok {
		info.ISIN = v
	}
	return info, nil
}

// pluck evaluates a jsonpath and returns the result as a non-empty string.
func pluck(jobj any, path string) (string, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", false
	}
	// jsonpath is never clear about whether it returns a list of 1 answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	return s, ok && s != ""
}
