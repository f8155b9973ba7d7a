package forwarder

import (
	"context"
	"errors"
	"fmt"

	"github.com/HyperChonk/log-forwarder/internal/config"
	"github.com/HyperChonk/log-forwarder/internal/output/loki"
	"github.com/HyperChonk/log-forwarder/internal/pipeline"
	"github.com/HyperChonk/log-forwarder/internal/secrets"
)

// SecretFetcher retrieves a secret bundle by identifier as a flat string
// map. The production implementation is backed by AWS Secrets Manager.
type SecretFetcher interface {
	Fetch(ctx context.Context, secretID string) (map[string]string, error)
}

// Result is the invocation result contract: 200 for success or benign
// skip, 500 for configuration or delivery failure.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Forwarder is a configured log-forwarding pipeline.
type Forwarder struct {
	pipeline *pipeline.Forwarder
	cache    *secrets.Cache
}

// New creates a Forwarder. Configuration is read from the environment
// unless WithConfig overrides it; a secret fetcher is required.
func New(opts ...Option) (*Forwarder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if o.loadConfig {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("forwarder: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("forwarder: %w", err)
	}
	if o.fetcher == nil {
		return nil, errors.New("forwarder: a secret fetcher is required")
	}

	var clientOpts []loki.Option
	if o.httpClient != nil {
		clientOpts = append(clientOpts, loki.WithHTTPClient(o.httpClient))
	}
	timeout := cfg.PushTimeout
	if o.timeout > 0 {
		timeout = o.timeout
	}
	clientOpts = append(clientOpts, loki.WithTimeout(timeout))

	cache := secrets.NewCache(o.fetcher)
	client := loki.New(clientOpts...)

	return &Forwarder{
		pipeline: pipeline.New(cfg, cache, client),
		cache:    cache,
	}, nil
}

// Handle forwards one compressed CloudWatch batch and reports the
// invocation result. It never panics.
func (f *Forwarder) Handle(ctx context.Context, data string) Result {
	return Result(f.pipeline.Handle(ctx, data))
}

// InvalidateCredentials drops the cached secret bundle so the next
// invocation fetches it again.
func (f *Forwarder) InvalidateCredentials() {
	f.cache.Invalidate()
}
