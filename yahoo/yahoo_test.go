package yahoo

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

// stubTransport serves a canned body for every request and records the URL.
type stubTransport struct {
	body string
	url  string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.url = req.URL.String()
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

const quoteSummaryJSON = `{
  "quoteSummary": {
    "result": [
      {
        "assetProfile": {
          "address1": "One Apple Park Way",
          "city": "Cupertino",
          "state": "CA",
          "zip": "95014"
        },
        "quoteType": {
          "isin": "US0378331005"
        }
      }
    ],
    "error": null
  }
}`

func TestLookup(t *testing.T) {
	stub := &stubTransport{body: quoteSummaryJSON}
	client := &http.Client{Transport: stub}

	info, err := Lookup(client, "AAPL:xnas")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if want := "One Apple Park Way, Cupertino, CA, 95014"; info.Address != want {
		t.Errorf("Address = %q, want %q", info.Address, want)
	}
	if info.ISIN != "US0378331005" {
		t.Errorf("ISIN = %q, want US0378331005", info.ISIN)
	}
	// The exchange suffix must not reach the endpoint.
	if strings.Contains(stub.url, "xnas") || !strings.Contains(stub.url, "/AAPL?") {
		t.Errorf("queried %q, want the bare ticker", stub.url)
	}
}

func TestLookup_SparsePayload(t *testing.T) {
	stub := &stubTransport{body: `{"quoteSummary":{"result":[{"quoteType":{"symbol":"AAPL"}}],"error":null}}`}
	client := &http.Client{Transport: stub}

	info, err := Lookup(client, "AAPL")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if info.Address != "" || info.ISIN != "" {
		t.Errorf("Lookup() = %+v, want empty fields for a sparse payload", info)
	}
}
