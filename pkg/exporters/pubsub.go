package exporters

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubsubExporter implements the Exporter interface for GCP Pub/Sub.
type pubsubExporter struct {
	id    string
	typ   string
	topic *pubsub.Topic
	log   Logger
}

// newPubSubExporter creates a new Pub/Sub exporter with the given configuration.
func newPubSubExporter(ctx context.Context, cfg ExporterConfig, log Logger) (Exporter, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("exporter %q missing pubsub configuration", cfg.ID)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubExporter{
		id:    cfg.ID,
		typ:   TypePubSub,
		topic: client.Topic(cfg.PubSub.Topic),
		log:   ensureLogger(log),
	}, nil
}

func (p *pubsubExporter) ID() string   { return p.id }
func (p *pubsubExporter) Type() string { return p.typ }

func (p *pubsubExporter) Export(ctx context.Context, rep Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	res := p.topic.Publish(ctx, &pubsub.Message{
		Data: body,
		Attributes: map[string]string{
			"report_id": rep.ReportID,
			"method":    rep.Method,
		},
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("pubsub publish: %w", err)
	}

	p.log.Infof("exported report %s to pubsub topic %s", rep.ReportID, p.topic.ID())
	return nil
}
