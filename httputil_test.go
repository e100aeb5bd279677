package taxes

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

// scriptedTransport replays a fixed sequence of responses or errors.
type scriptedTransport struct {
	responses []func(req *http.Request) (*http.Response, error)
	calls     int
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if s.calls >= len(s.responses) {
		return nil, fmt.Errorf("unexpected request %d to %s", s.calls+1, req.URL)
	}
	next := s.responses[s.calls]
	s.calls++
	return next(req)
}

func ok(body string) func(*http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

func fail(err error) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) { return nil, err }
}

func TestGetJSON(t *testing.T) {
	client := &http.Client{Transport: &scriptedTransport{responses: []func(*http.Request) (*http.Response, error){
		ok(`{"answer": 42}`),
	}}}
	var data struct {
		Answer int `json:"answer"`
	}
	if err := GetJSON(client, "https://example.com/api", &data); err != nil {
		t.Fatalf("GetJSON() failed: %v", err)
	}
	if data.Answer != 42 {
		t.Errorf("GetJSON() decoded %d, want 42", data.Answer)
	}
}

func TestGetJSON_HTTPError(t *testing.T) {
	client := &http.Client{Transport: &scriptedTransport{responses: []func(*http.Request) (*http.Response, error){
		func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Status:     "404 Not Found",
				Body:       io.NopCloser(strings.NewReader("")),
				Request:    req,
			}, nil
		},
	}}}
	var data any
	if err := GetJSON(client, "https://example.com/api", &data); err == nil {
		t.Error("GetJSON() succeeded on a 404, want error")
	}
}

func TestDownload_RetriesOnFailure(t *testing.T) {
	transport := &scriptedTransport{responses: []func(*http.Request) (*http.Response, error){
		fail(fmt.Errorf("connection reset")),
		ok("rate table"),
	}}
	client := &http.Client{Transport: transport}

	body, err := Download(client, "https://example.com/rates.xml")
	if err != nil {
		t.Fatalf("Download() failed: %v", err)
	}
	if string(body) != "rate table" {
		t.Errorf("Download() = %q, want the response body", body)
	}
	if transport.calls != 2 {
		t.Errorf("Download() made %d requests, want 2", transport.calls)
	}
}

func TestDownload_GivesUp(t *testing.T) {
	transport := &scriptedTransport{responses: []func(*http.Request) (*http.Response, error){
		fail(fmt.Errorf("down")), fail(fmt.Errorf("down")),
		fail(fmt.Errorf("down")), fail(fmt.Errorf("down")),
	}}
	client := &http.Client{Transport: transport}
	if _, err := Download(client, "https://example.com/rates.xml"); err == nil {
		t.Error("Download() succeeded with every attempt failing, want error")
	}
	if transport.calls != 4 {
		t.Errorf("Download() made %d requests, want 4", transport.calls)
	}
}
