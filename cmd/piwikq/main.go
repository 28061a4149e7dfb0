package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/samvad-hq/piwik-bridge/internal/config"
	"github.com/samvad-hq/piwik-bridge/internal/logger"
	"github.com/samvad-hq/piwik-bridge/pkg/piwik"
)

// paramFlags collects repeated -p key=value pairs; a repeated key becomes
// a list value in the original order.
type paramFlags struct {
	params piwik.Params
}

func (p *paramFlags) String() string { return fmt.Sprintf("%v", p.params) }

func (p *paramFlags) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	key = strings.TrimSpace(key)

	if p.params == nil {
		p.params = piwik.Params{}
	}
	if prev, exists := p.params[key]; exists {
		p.params[key] = piwik.List(append(prev.List(), value)...)
	} else {
		p.params[key] = piwik.String(value)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "piwikq: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		method = flag.String("method", "API.get", "remote API method to invoke")
		params paramFlags
		dryRun = flag.Bool("dry-run", false, "print the constructed URL without issuing the request")
		tag    = flag.Bool("tag", false, "print the page tracking snippet and exit")
		site   = flag.String("site", "", "site id override")
		token  = flag.String("token", "", "auth token override")
	)
	flag.Var(&params, "p", "query parameter as key=value, repeatable")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	client := piwik.New(piwik.Config{
		URL:       cfg.PiwikURL,
		SiteID:    cfg.SiteID,
		TokenAuth: cfg.TokenAuth,
		Embed:     cfg.EmbedTag,
	},
		piwik.WithTimeout(cfg.HTTPTimeout),
		piwik.WithLogger(log),
	)

	if *tag {
		fmt.Println(client.Tag(*site, ""))
		return nil
	}

	bag := params.params
	if bag == nil {
		bag = piwik.Params{}
	}
	if *site != "" {
		bag["site_id"] = piwik.String(*site)
	}
	if *token != "" {
		bag["token_auth"] = piwik.String(*token)
	}
	if *dryRun {
		bag["api_test"] = piwik.Bool(true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := client.Do(ctx, *method, bag)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("no result (call suppressed)")
	}

	if res.DryRun {
		fmt.Println(res.URL)
		return nil
	}

	os.Stdout.Write(res.Body)
	fmt.Println()
	return nil
}
