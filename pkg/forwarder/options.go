package forwarder

import (
	"net/http"
	"time"

	"github.com/HyperChonk/log-forwarder/internal/config"
)

type options struct {
	cfg        config.Config
	loadConfig bool
	fetcher    SecretFetcher
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Forwarder.
type Option func(*options)

func defaultOptions() options {
	return options{loadConfig: true}
}

// WithConfig supplies configuration explicitly instead of reading the
// environment.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.cfg = cfg
		o.loadConfig = false
	}
}

// WithSecretFetcher sets the secret store used to resolve delivery
// credentials. Required.
func WithSecretFetcher(f SecretFetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithHTTPClient replaces the HTTP client used for the Loki push.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout overrides the configured push timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}
