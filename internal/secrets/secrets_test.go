package secrets

import (
	"context"
	"errors"
	"testing"
)

// fakeFetcher counts calls and returns a canned bundle or error.
type fakeFetcher struct {
	bundle map[string]string
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, secretID string) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bundle, nil
}

func TestCacheFetchesOnce(t *testing.T) {
	fetcher := &fakeFetcher{bundle: map[string]string{"user": "123"}}
	cache := NewCache(fetcher)

	first := cache.Get(context.Background(), "arn:secret")
	second := cache.Get(context.Background(), "arn:secret")

	if fetcher.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetcher.calls)
	}
	if first["user"] != "123" || second["user"] != "123" {
		t.Fatalf("unexpected bundles: %v / %v", first, second)
	}
}

func TestCacheIgnoresLaterSecretIDs(t *testing.T) {
	// Single-bundle cache: the process only ever uses one ARN, so the
	// argument is irrelevant after the first fetch.
	fetcher := &fakeFetcher{bundle: map[string]string{"user": "123"}}
	cache := NewCache(fetcher)

	cache.Get(context.Background(), "arn:first")
	got := cache.Get(context.Background(), "arn:different")

	if fetcher.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetcher.calls)
	}
	if got["user"] != "123" {
		t.Fatalf("unexpected bundle: %v", got)
	}
}

func TestCacheFetchFailureReturnsEmptyBundle(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("access denied")}
	cache := NewCache(fetcher)

	got := cache.Get(context.Background(), "arn:secret")
	if got == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty bundle, got %v", got)
	}
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("throttled")}
	cache := NewCache(fetcher)

	cache.Get(context.Background(), "arn:secret")

	// Store recovers; the next invocation must retry and succeed.
	fetcher.err = nil
	fetcher.bundle = map[string]string{"user": "123"}

	got := cache.Get(context.Background(), "arn:secret")
	if fetcher.calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", fetcher.calls)
	}
	if got["user"] != "123" {
		t.Fatalf("unexpected bundle: %v", got)
	}
}

func TestCacheInvalidate(t *testing.T) {
	fetcher := &fakeFetcher{bundle: map[string]string{"user": "123"}}
	cache := NewCache(fetcher)

	cache.Get(context.Background(), "arn:secret")
	cache.Invalidate()
	cache.Get(context.Background(), "arn:secret")

	if fetcher.calls != 2 {
		t.Fatalf("expected 2 fetches after Invalidate, got %d", fetcher.calls)
	}
}

func TestResolve(t *testing.T) {
	bundle := map[string]string{
		"grafana_user":     "123",
		"grafana_key":      "glc_abc",
		"grafana_endpoint": "https://loki.example.com/push",
	}

	creds := Resolve(bundle, "grafana_user", "grafana_key", "grafana_endpoint")
	if creds.UserID != "123" || creds.APIKey != "glc_abc" || creds.Endpoint != "https://loki.example.com/push" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestResolveMissingPieces(t *testing.T) {
	bundle := map[string]string{"grafana_user": "123"}

	tests := []struct {
		name                            string
		userKey, apiKey, endpointKey    string
		wantUser, wantAPI, wantEndpoint string
	}{
		{"unset key names", "", "", "", "", "", ""},
		{"key absent from bundle", "grafana_user", "grafana_key", "grafana_endpoint", "123", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := Resolve(bundle, tt.userKey, tt.apiKey, tt.endpointKey)
			if creds.UserID != tt.wantUser || creds.APIKey != tt.wantAPI || creds.Endpoint != tt.wantEndpoint {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
		})
	}
}
