package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/TimurManjosov/bfhl/internal/answer"
	"github.com/TimurManjosov/bfhl/internal/api"
	"github.com/TimurManjosov/bfhl/internal/dispatch"
)

// TestEmail is the identity used by servers built with NewTestServer.
const TestEmail = "tester@example.edu"

// NewTestServer creates an API server with silent logging. gen may be nil to
// force the fallback answer path.
func NewTestServer(t *testing.T, gen answer.Generator) *api.Server {
	t.Helper()
	logger := zerolog.Nop()
	resolver := answer.NewResolver(gen, time.Second, logger)
	return api.NewServer(dispatch.New(resolver, logger), TestEmail, 5*time.Second, logger)
}

// HTTPRequest is a helper for making test HTTP requests.
type HTTPRequest struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string
}

// Do executes the HTTP request and returns the response recorder.
func (r *HTTPRequest) Do(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if r.Body != "" {
		body = bytes.NewBufferString(r.Body)
	}
	req := httptest.NewRequest(r.Method, r.Path, body)
	if r.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeJSON decodes the recorder body into a generic map, failing the test
// on malformed JSON. Numbers are kept as json.Number.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	dec := json.NewDecoder(rr.Body)
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return m
}
