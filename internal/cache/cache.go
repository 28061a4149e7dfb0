package cache

import (
	"fmt"
	"strings"
	"time"
)

// Package cache provides the local API-response cache used to avoid
// re-issuing expensive report queries inside their freshness window.

// Store maps serialized query URLs to raw JSON bodies with a TTL.
// It satisfies piwik.Cache.
type Store interface {
	Close() error
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ResponseTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	defaultResponseTTL     = 15 * time.Minute
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured cache backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt cache requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported cache type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ResponseTTL <= 0 {
		opts.ResponseTTL = defaultResponseTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                     { return nil }
func (noopStore) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (noopStore) Put(string, []byte) error         { return nil }
