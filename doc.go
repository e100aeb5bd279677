// Package taxes converts broker export files into Slovenian tax authority
// (FURS) XML reports.
//
// The root package holds the domain types: dates, money, quantities, ISINs,
// normalized transaction records, lot based cost-basis matching, and the
// aggregators for the three report types (dividends, capital gains,
// interest). Broker specific parsing lives in the saxo, revolut and ibkr
// packages, exchange rates in bsi, company metadata in yahoo, and the FURS
// XML assembly in edavki.
//
// The pipeline is a single linear pass per invocation:
//
//	parse -> enrich -> aggregate -> build -> verify -> write
package taxes
