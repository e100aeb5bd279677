package bsi

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jernejstrasner/taxes"
)

// Fetch downloads the rate table through the given client (typically
// taxes.CachedClient, so the download happens at most once a day) and keeps
// a copy at cachePath. When the download fails the cached copy, if any, is
// used instead so past runs keep working offline.
func Fetch(client *http.Client, cachePath string) (*Rates, error) {
	body, err := taxes.Download(client, URL)
	if err != nil {
		cached, readErr := os.ReadFile(cachePath)
		if readErr != nil {
			return nil, fmt.Errorf("cannot download rate table: %w", err)
		}
		log.Printf("rate table download failed (%v), using cached copy %s", err, cachePath)
		body = cached
	} else if writeErr := os.WriteFile(cachePath, body, 0644); writeErr != nil {
		log.Printf("cannot cache rate table to %s (ignored): %v", cachePath, writeErr)
	}
	return Parse(bytes.NewReader(body))
}
