package taxes

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// This file implements the on-disk reference data caches: small XML
// key-value tables read at startup and flushed after mutation. Within one
// run access is read-then-write, last writer wins.

// CompanyCache maps broker instrument symbols to the payer reference data
// FURS reports need (ISIN, registered address).
type CompanyCache struct {
	path    string
	entries map[string]*companyInfo
	dirty   bool
}

type companyInfo struct {
	ISIN    string `xml:"isin,omitempty"`
	Address string `xml:"address,omitempty"`
}

type companyCacheFile struct {
	XMLName   xml.Name `xml:"company_cache"`
	Companies []struct {
		Symbol string `xml:"symbol,attr"`
		companyInfo
	} `xml:"company"`
}

// DecodeCompanyCache reads the company cache XML file. A missing file
// yields an empty cache.
func DecodeCompanyCache(path string) (*CompanyCache, error) {
	c := &CompanyCache{path: path, entries: make(map[string]*companyInfo)}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read company cache %q: %w", path, err)
	}
	var file companyCacheFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse company cache %q: %w", path, err)
	}
	for _, company := range file.Companies {
		info := company.companyInfo
		c.entries[company.Symbol] = &info
	}
	return c, nil
}

// ISIN returns the cached ISIN for a symbol, or "".
func (c *CompanyCache) ISIN(symbol string) string {
	if info, ok := c.entries[symbol]; ok {
		return info.ISIN
	}
	return ""
}

// Address returns the cached address for a symbol, or "".
func (c *CompanyCache) Address(symbol string) string {
	if info, ok := c.entries[symbol]; ok {
		return info.Address
	}
	return ""
}

// SetISIN caches the ISIN for a symbol.
func (c *CompanyCache) SetISIN(symbol string, isin ISIN) {
	c.lookup(symbol).ISIN = isin.String()
	c.dirty = true
}

// SetAddress caches the address for a symbol.
func (c *CompanyCache) SetAddress(symbol, address string) {
	c.lookup(symbol).Address = address
	c.dirty = true
}

func (c *CompanyCache) lookup(symbol string) *companyInfo {
	info, ok := c.entries[symbol]
	if !ok {
		info = &companyInfo{}
		c.entries[symbol] = info
	}
	return info
}

// Flush writes the cache back to disk if it changed.
func (c *CompanyCache) Flush() error {
	if !c.dirty {
		return nil
	}
	var file companyCacheFile
	for _, symbol := range sortedKeys(c.entries) {
		file.Companies = append(file.Companies, struct {
			Symbol string `xml:"symbol,attr"`
			companyInfo
		}{Symbol: symbol, companyInfo: *c.entries[symbol]})
	}
	if err := writeXMLFile(c.path, file); err != nil {
		return fmt.Errorf("cannot write company cache %q: %w", c.path, err)
	}
	c.dirty = false
	return nil
}

// CountryCache maps ISO country codes to the withholding-tax relief
// statement quoted in dividend and interest reports.
type CountryCache struct {
	path    string
	entries map[string]string
	dirty   bool
}

type countryCacheFile struct {
	XMLName   xml.Name `xml:"country_cache"`
	Countries []struct {
		Code            string `xml:"code,attr"`
		ReliefStatement string `xml:"relief_statement"`
	} `xml:"country"`
}

// DecodeCountryCache reads the country cache XML file. A missing file
// yields an empty cache.
func DecodeCountryCache(path string) (*CountryCache, error) {
	c := &CountryCache{path: path, entries: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read country cache %q: %w", path, err)
	}
	var file countryCacheFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse country cache %q: %w", path, err)
	}
	for _, country := range file.Countries {
		c.entries[country.Code] = country.ReliefStatement
	}
	return c, nil
}

// ReliefStatement returns the cached relief statement for a country, or "".
func (c *CountryCache) ReliefStatement(country string) string {
	return c.entries[strings.ToUpper(country)]
}

// SetReliefStatement caches the relief statement for a country.
func (c *CountryCache) SetReliefStatement(country, statement string) {
	c.entries[strings.ToUpper(country)] = statement
	c.dirty = true
}

// Flush writes the cache back to disk if it changed.
func (c *CountryCache) Flush() error {
	if !c.dirty {
		return nil
	}
	var file countryCacheFile
	for _, code := range sortedKeys(c.entries) {
		file.Countries = append(file.Countries, struct {
			Code            string `xml:"code,attr"`
			ReliefStatement string `xml:"relief_statement"`
		}{Code: code, ReliefStatement: c.entries[code]})
	}
	if err := writeXMLFile(c.path, file); err != nil {
		return fmt.Errorf("cannot write country cache %q: %w", c.path, err)
	}
	c.dirty = false
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// writeXMLFile marshals v indented with an XML declaration.
func writeXMLFile(path string, v any) error {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), append(data, '\n')...), 0644)
}
