package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/piwik-bridge/internal/cache"
	"github.com/samvad-hq/piwik-bridge/internal/config"
	"github.com/samvad-hq/piwik-bridge/pkg/exporters"
	"github.com/samvad-hq/piwik-bridge/pkg/piwik"
	"go.uber.org/zap"
)

// Reporter periodically fetches the configured analytics reports through
// the request builder and fans the results out to the export sinks.
type Reporter struct {
	cfg      *config.Config
	client   *piwik.Client
	reports  []ReportConfig
	fanout   *exporters.Fanout
	store    cache.Store
	interval time.Duration
	log      *zap.SugaredLogger
}

// NewReporter builds a reporter runtime from config files.
func NewReporter(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*Reporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.PiwikURL == "" {
		return nil, fmt.Errorf("piwik_url is not configured")
	}

	reports, err := LoadReports(cfg.ReportsFile)
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}

	exporterReg, err := exporters.LoadRegistry(cfg.ExportersFile)
	if err != nil {
		return nil, fmt.Errorf("load exporters registry: %w", err)
	}

	enabled := exporterReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no exporters configured")
	}

	sinks, err := exporters.BuildAll(ctx, exporters.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build exporters: %w", err)
	}
	fanout := exporters.NewFanout(sinks)
	log.Infow("exporters registry loaded", "exporters", len(enabled))

	store, err := cache.NewStore(cfg.CacheType, cfg.CachePath, cache.Options{
		ResponseTTL:     cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("open response cache: %w", err)
	}

	client := piwik.New(piwik.Config{
		URL:       cfg.PiwikURL,
		SiteID:    cfg.SiteID,
		TokenAuth: cfg.TokenAuth,
		Embed:     cfg.EmbedTag,
	},
		piwik.WithTimeout(cfg.HTTPTimeout),
		piwik.WithCache(store),
		piwik.WithLogger(log),
	)

	return &Reporter{
		cfg:      cfg,
		client:   client,
		reports:  reports,
		fanout:   fanout,
		store:    store,
		interval: cfg.ReportInterval,
		log:      log,
	}, nil
}

// Run starts the report loop until the context is cancelled.
func (r *Reporter) Run(ctx context.Context) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("reporter is not initialized")
	}
	defer r.store.Close()

	active := make([]ReportConfig, 0, len(r.reports))
	for _, rc := range r.reports {
		if rc.EnabledValue() {
			active = append(active, rc)
		}
	}
	if len(active) == 0 {
		r.log.Warnw("no reports enabled; reporter idle", "reports_file", r.cfg.ReportsFile)
		<-ctx.Done()
		return ctx.Err()
	}

	r.log.Infow("reporter loop starting",
		"reports_count", len(active),
		"exporters_count", r.fanout.Size(),
		"report_interval", r.interval.String(),
	)

	r.runOnce(ctx, active)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Infow("reporter loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			r.runOnce(ctx, active)
		}
	}
}

// runOnce fetches every active report and exports the results. A failed
// report is logged and skipped so one broken query does not starve the rest.
func (r *Reporter) runOnce(ctx context.Context, reports []ReportConfig) {
	start := time.Now()
	exported := 0

	for _, rc := range reports {
		res, err := r.client.Do(ctx, rc.Method, rc.Bag())
		if err != nil {
			r.log.Errorw("report fetch failed", "report", rc.ID, "error", err)
			continue
		}
		if res == nil || len(res.Body) == 0 {
			r.log.Debugw("report yielded no data", "report", rc.ID)
			continue
		}

		rep := exporters.NewReport(rc.ID, rc.Method, res.URL, res.Body)
		count, err := r.fanout.Export(ctx, rep)
		if err != nil {
			r.log.Errorw("report export partial failure", "report", rc.ID, "delivered", count, "error", err)
		}
		exported += count
	}

	r.log.Infow("report pass completed",
		"reports_count", len(reports),
		"deliveries", exported,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}
