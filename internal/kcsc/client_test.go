package kcsc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

func testClient(baseURL string) *Client {
	return NewClient(model.KCSCConfig{
		BaseURL:   baseURL,
		APIKey:    "sekrit-key-123",
		UserAgent: "kcscbot-test/1.0",
	})
}

func TestGetJSON_AttachesLowercaseKey(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	if _, _, err := c.getJSON(context.Background(), "CodeList", url.Values{"Type": {"KDS"}}); err != nil {
		t.Fatalf("getJSON failed: %v", err)
	}

	if got := gotQuery.Get("key"); got != "sekrit-key-123" {
		t.Errorf("key = %q, want the API key under lowercase 'key'", got)
	}
	if gotQuery.Has("Key") {
		t.Error("Client must not invent an uppercase 'Key' parameter")
	}
	if got := gotQuery.Get("Type"); got != "KDS" {
		t.Errorf("Type = %q, want KDS", got)
	}
}

func TestGetJSON_DoesNotOverrideCallerKeyCasing(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	if _, _, err := c.getJSON(context.Background(), "CodeList", url.Values{"Key": {"caller-key"}}); err != nil {
		t.Fatalf("getJSON failed: %v", err)
	}

	if got := gotQuery.Get("Key"); got != "caller-key" {
		t.Errorf("Key = %q, want caller-key", got)
	}
	if gotQuery.Has("key") {
		t.Error("Caller-chosen key casing must not be duplicated in lowercase")
	}
}

func TestGetJSON_DoesNotMutateCallerParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	params := url.Values{"Type": {"KDS"}}
	c := testClient(server.URL)
	if _, _, err := c.getJSON(context.Background(), "CodeList", params); err != nil {
		t.Fatalf("getJSON failed: %v", err)
	}

	if params.Has("key") {
		t.Error("Caller's params map must not gain the credential")
	}
}

func TestGetJSON_HTMLBodyIsUnexpectedContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body>denied for key sekrit-key-123</body></html>"))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, _, err := c.getJSON(context.Background(), "CodeList", nil)

	var ctErr *UnexpectedContentTypeError
	if !errors.As(err, &ctErr) {
		t.Fatalf("Expected UnexpectedContentTypeError, got %v", err)
	}
	if strings.Contains(ctErr.Excerpt, "sekrit-key-123") {
		t.Error("Excerpt leaks the API key")
	}
	if !strings.Contains(ctErr.Excerpt, redactionMarker) {
		t.Errorf("Excerpt %q should carry the redaction marker", ctErr.Excerpt)
	}
	if strings.Contains(ctErr.URL, "sekrit-key-123") {
		t.Error("URL leaks the API key")
	}
}

func TestGetJSON_ExcerptBounded(t *testing.T) {
	long := "<html>" + strings.Repeat("가", 2000) + "</html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(long))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, _, err := c.getJSON(context.Background(), "CodeList", nil)

	var ctErr *UnexpectedContentTypeError
	if !errors.As(err, &ctErr) {
		t.Fatalf("Expected UnexpectedContentTypeError, got %v", err)
	}
	if n := utf8.RuneCountInString(ctErr.Excerpt); n > excerptLimit {
		t.Errorf("Excerpt is %d runes, want at most %d", n, excerptLimit)
	}
}

func TestGetJSON_NonSuccessStatusIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, _, err := c.getJSON(context.Background(), "CodeList", nil)

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if tErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", tErr.StatusCode)
	}
	if strings.Contains(tErr.URL, "sekrit-key-123") {
		t.Error("URL leaks the API key")
	}
}

func TestGetJSON_ConnectionFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := testClient(server.URL)
	_, _, err := c.getJSON(context.Background(), "CodeList", nil)

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if tErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for a failed request", tErr.StatusCode)
	}
}

func TestRedact(t *testing.T) {
	c := testClient("http://example.invalid")

	got := c.Redact("url?key=sekrit-key-123&x=sekrit-key-123")
	if strings.Contains(got, "sekrit-key-123") {
		t.Errorf("Redact left the key in %q", got)
	}
	if got != "url?key="+redactionMarker+"&x="+redactionMarker {
		t.Errorf("Redact = %q", got)
	}

	// An empty key must not blank out the whole string.
	empty := NewClient(model.KCSCConfig{})
	if got := empty.Redact("abc"); got != "abc" {
		t.Errorf("Redact with empty key = %q, want abc", got)
	}
}
