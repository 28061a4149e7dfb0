package exporters

import "context"

// Exporter delivers fetched analytics reports to a downstream sink
// (HTTP webhook, SQS, SNS, Pub/Sub).
type Exporter interface {
	ID() string
	Type() string
	Export(ctx context.Context, rep Report) error
}
