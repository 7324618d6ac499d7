package kcsc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func catalogServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/CodeList" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchCatalog(t *testing.T) {
	server := catalogServer(t, `[
		{"Name": "콘크리트구조 설계기준", "Code": "142000"},
		{"name": "강구조 설계기준", "code": "143000"}
	]`)

	catalog, err := testClient(server.URL).FetchCatalog(context.Background(), "KDS")
	if err != nil {
		t.Fatalf("FetchCatalog failed: %v", err)
	}

	if len(catalog) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(catalog))
	}
	if catalog[0].Name != "콘크리트구조 설계기준" || catalog[0].Code != "142000" {
		t.Errorf("Entry 0 = %+v", catalog[0])
	}
	// Lowercase field names resolve too.
	if catalog[1].Name != "강구조 설계기준" || catalog[1].Code != "143000" {
		t.Errorf("Entry 1 = %+v", catalog[1])
	}
}

func TestFetchCatalog_KeepsCodelessEntries(t *testing.T) {
	server := catalogServer(t, `[{"Name": "목차 항목"}]`)

	catalog, err := testClient(server.URL).FetchCatalog(context.Background(), "KDS")
	if err != nil {
		t.Fatalf("FetchCatalog failed: %v", err)
	}
	if len(catalog) != 1 || catalog[0].Code != "" {
		t.Errorf("Codeless entries should survive the fetch, got %+v", catalog)
	}
}

func TestFetchCatalog_NonArrayIsFormatError(t *testing.T) {
	server := catalogServer(t, `{"error": "quota exceeded"}`)

	_, err := testClient(server.URL).FetchCatalog(context.Background(), "KDS")

	var fErr *FormatError
	if !errors.As(err, &fErr) {
		t.Fatalf("Expected FormatError, got %v", err)
	}
}

func TestFetchCatalog_InvalidJSONIsFormatError(t *testing.T) {
	server := catalogServer(t, `[{"Name": "trunc`)

	_, err := testClient(server.URL).FetchCatalog(context.Background(), "KDS")

	var fErr *FormatError
	if !errors.As(err, &fErr) {
		t.Fatalf("Expected FormatError, got %v", err)
	}
	if fErr.Err == nil {
		t.Error("Parse failures should carry the decoder error")
	}
}

func TestFetchCatalog_SkipsNonObjectItems(t *testing.T) {
	server := catalogServer(t, `["stray string", {"Name": "유효 항목", "Code": "1"}]`)

	catalog, err := testClient(server.URL).FetchCatalog(context.Background(), "KDS")
	if err != nil {
		t.Fatalf("FetchCatalog failed: %v", err)
	}
	if len(catalog) != 1 || catalog[0].Name != "유효 항목" {
		t.Errorf("Non-object items should be skipped, got %+v", catalog)
	}
}
