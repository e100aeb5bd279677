package edavki

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Write marshals an envelope to path, indented and with the XML
// declaration, creating the output directory if needed.
func Write(path string, envelope any) error {
	data, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create output directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append([]byte(xml.Header), append(data, '\n')...), 0644); err != nil {
		return fmt.Errorf("cannot write report %q: %w", path, err)
	}
	log.Printf("XML file written to %s", path)
	return nil
}

// Verify re-parses the written report and checks every element against the
// element vocabulary of the governing schemas. It catches malformed output
// and misnamed elements; the first unknown element is reported by name.
func Verify(path string, schemaPaths ...string) error {
	vocabulary := make(map[string]bool)
	for _, schemaPath := range schemaPaths {
		if err := schemaElements(schemaPath, vocabulary); err != nil {
			return err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot re-read report %q: %w", path, err)
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("report %q is not well-formed XML: %w", path, err)
		}
		if start, ok := token.(xml.StartElement); ok {
			if !vocabulary[start.Name.Local] {
				return fmt.Errorf("report %q contains element <%s> not defined by any governing schema", path, start.Name.Local)
			}
		}
	}
	log.Printf("%s verified against %d schema(s)", path, len(schemaPaths))
	return nil
}

// schemaElements collects the named xs:element declarations of one XSD
// into the vocabulary set.
func schemaElements(schemaPath string, vocabulary map[string]bool) error {
	f, err := os.Open(schemaPath)
	if err != nil {
		return fmt.Errorf("cannot open schema %q: %w", schemaPath, err)
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)
	found := 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("cannot parse schema %q: %w", schemaPath, err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "element" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "name" && attr.Value != "" {
				vocabulary[attr.Value] = true
				found++
			}
		}
	}
	if found == 0 {
		return fmt.Errorf("schema %q declares no elements: the download may be truncated", schemaPath)
	}
	// The root element is declared implicitly by the schema target.
	vocabulary["Envelope"] = true
	return nil
}
