package exporters

import (
	"context"
	"errors"
	"testing"
)

type stubExporter struct {
	id    string
	typ   string
	err   error
	calls int
}

func (s *stubExporter) ID() string   { return s.id }
func (s *stubExporter) Type() string { return s.typ }
func (s *stubExporter) Export(context.Context, Report) error {
	s.calls++
	return s.err
}

func TestFanoutExportAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Exporter{
		&stubExporter{id: "ok", typ: "http"},
		&stubExporter{id: "bad", typ: "http", err: errors.New("failed")},
	})

	count, err := fanout.Export(context.Background(), Report{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestFanoutSkipsNilExporters(t *testing.T) {
	fanout := NewFanout([]Exporter{nil, &stubExporter{id: "ok", typ: "http"}})
	if fanout.Size() != 1 {
		t.Fatalf("Size = %d, want 1", fanout.Size())
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	exps, err := BuildAll(context.Background(), reg, []ExporterConfig{
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPExporterConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(exps) != 1 {
		t.Fatalf("expected 1 exporter, got %d", len(exps))
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := BuildAll(context.Background(), reg, []ExporterConfig{
		{ID: "x", Type: "kafka"},
	}, nil); err == nil {
		t.Fatalf("expected error for unregistered exporter type")
	}
}
