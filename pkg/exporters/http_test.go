package exporters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPExporterSuccess(t *testing.T) {
	var received Report
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Fatalf("missing header, got %s", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Fatalf("decode report: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	exp, err := newHTTPExporter(context.Background(), ExporterConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPExporterConfig{
			URL:            srv.URL,
			Method:         http.MethodPost,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPExporter: %v", err)
	}

	rep := NewReport("daily-visits", "VisitsSummary.get", "http://stats/?x=1", []byte(`{"visits": 3}`))
	if err := exp.Export(context.Background(), rep); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if received.ReportID != "daily-visits" || received.Method != "VisitsSummary.get" {
		t.Fatalf("server received %#v", received)
	}
	if string(received.Payload) != `{"visits": 3}` {
		t.Fatalf("payload = %s", received.Payload)
	}
}

func TestHTTPExporterErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	exp, err := newHTTPExporter(context.Background(), ExporterConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPExporterConfig{
			URL:            srv.URL,
			Method:         http.MethodPost,
			TimeoutSeconds: 1,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPExporter: %v", err)
	}

	if err := exp.Export(context.Background(), Report{}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}
