package edavki

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jernejstrasner/taxes"
)

// Schema file names, as published on the eDavki portal.
const (
	DivSchema  = "Doh_Div_3.xsd"
	KDVPSchema = "Doh_KDVP_9.xsd"
	ObrSchema  = "Doh_Obr_2.xsd"
	EDPSchema  = "EDP-Common-1.xsd"
)

const schemaBaseURL = "https://edavki.durs.si/Documents/Schemas/"

// a schema shorter than this is a portal error page, not a schema.
const minSchemaSize = 500

// DownloadSchemas fetches the given schemas into dir through the client
// (typically taxes.CachedClient, so at most one download per day) and
// returns their local paths. Schemas already present on disk are kept when
// the portal is unreachable.
func DownloadSchemas(client *http.Client, dir string, names ...string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create schema directory %q: %w", dir, err)
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		body, err := taxes.Download(client, schemaBaseURL+name)
		if err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				paths = append(paths, path)
				continue
			}
			return nil, fmt.Errorf("cannot download schema %s: %w", name, err)
		}
		if len(body) < minSchemaSize {
			return nil, fmt.Errorf("schema %s is suspiciously small (%d bytes): the portal may have returned an error page", name, len(body))
		}
		if err := os.WriteFile(path, body, 0644); err != nil {
			return nil, fmt.Errorf("cannot write schema %q: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
