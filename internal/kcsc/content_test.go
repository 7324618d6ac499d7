package kcsc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchContent_FlattensSections(t *testing.T) {
	body := `{
		"Name": "콘크리트구조 설계기준",
		"List": [
			{"Title": "적용 범위", "Contents": "<p>이 기준은 <b>콘크리트</b> 구조물에 적용한다.</p>"},
			{"Contents": "제목 없는 본문"},
			{"Title": "빈 절", "Contents": ""}
		]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	doc, err := testClient(server.URL).FetchContent(context.Background(), "142000", "KDS")
	if err != nil {
		t.Fatalf("FetchContent failed: %v", err)
	}

	if doc.Name != "콘크리트구조 설계기준" {
		t.Errorf("Name = %q", doc.Name)
	}

	want := "## 적용 범위\n이 기준은 콘크리트 구조물에 적용한다.\n\n제목 없는 본문\n\n## 빈 절"
	if doc.Text != want {
		t.Errorf("Text = %q, want %q", doc.Text, want)
	}
}

func TestFetchContent_UnwrapsTopLevelArray(t *testing.T) {
	body := `[{"Name": "강구조 설계기준", "List": [{"Contents": "본문"}]}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	doc, err := testClient(server.URL).FetchContent(context.Background(), "143000", "KDS")
	if err != nil {
		t.Fatalf("FetchContent failed: %v", err)
	}
	if doc.Name != "강구조 설계기준" || doc.Text != "본문" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestFetchContent_EmptyTopLevelArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	doc, err := testClient(server.URL).FetchContent(context.Background(), "142000", "KDS")
	if err != nil {
		t.Fatalf("FetchContent failed: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("Text = %q, want empty", doc.Text)
	}
}

func TestFetchContent_NonListPayloadBecomesSingleSection(t *testing.T) {
	body := `{"Name": "기준", "List": "<div>단일 <br>페이로드</div>"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	doc, err := testClient(server.URL).FetchContent(context.Background(), "1", "KDS")
	if err != nil {
		t.Fatalf("FetchContent failed: %v", err)
	}
	if doc.Text != "단일\n페이로드" {
		t.Errorf("Text = %q", doc.Text)
	}
}

func TestFetchContent_FallsBackToPathSegments(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/CodeViewer" {
			http.Error(w, "bad request shape", http.StatusBadRequest)
			return
		}
		if r.URL.Path == "/CodeViewer/KDS/142000" {
			_, _ = w.Write([]byte(`{"Name": "기준", "List": [{"Contents": "본문"}]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	doc, err := testClient(server.URL).FetchContent(context.Background(), "142000", "KDS")
	if err != nil {
		t.Fatalf("FetchContent failed: %v", err)
	}
	if doc.Text != "본문" {
		t.Errorf("Text = %q", doc.Text)
	}
	if len(paths) != 2 || paths[0] != "/CodeViewer" || paths[1] != "/CodeViewer/KDS/142000" {
		t.Errorf("Request paths = %v, want query shape then path shape", paths)
	}
}

func TestFetchContent_BothShapesFailing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/CodeViewer" {
			http.Error(w, "nope", http.StatusBadRequest)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchContent(context.Background(), "142000", "KDS")

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	// The second attempt's error is the one that propagates.
	if tErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404 from the path-segment attempt", tErr.StatusCode)
	}
}

func TestFetchContent_NonObjectDocumentIsFormatError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"just a string"`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchContent(context.Background(), "1", "KDS")

	var fErr *FormatError
	if !errors.As(err, &fErr) {
		t.Fatalf("Expected FormatError, got %v", err)
	}
}
