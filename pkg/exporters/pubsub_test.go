package exporters

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestPubSubExporterPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "reports"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	exp, err := newPubSubExporter(ctx, ExporterConfig{
		ID:   "gcp",
		Type: TypePubSub,
		PubSub: &PubSubExporterConfig{
			ProjectID: "test-project",
			Topic:     "reports",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubExporter: %v", err)
	}

	err = exp.Export(ctx, Report{
		ReportID: "daily-visits",
		Method:   "VisitsSummary.get",
		Payload:  []byte(`{"visits": 3}`),
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
}
