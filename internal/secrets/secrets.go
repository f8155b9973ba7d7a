// Package secrets resolves delivery credentials from an external secret
// store, caching the fetched bundle for the life of the process.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/HyperChonk/log-forwarder/internal/model"
)

// Fetcher retrieves a secret bundle by identifier as a flat string map.
type Fetcher interface {
	Fetch(ctx context.Context, secretID string) (map[string]string, error)
}

// ManagerFetcher fetches from AWS Secrets Manager. The secret's string
// payload must be a flat JSON object of string values.
type ManagerFetcher struct {
	client *secretsmanager.Client
}

// NewManagerFetcher wraps a Secrets Manager client.
func NewManagerFetcher(client *secretsmanager.Client) *ManagerFetcher {
	return &ManagerFetcher{client: client}
}

func (f *ManagerFetcher) Fetch(ctx context.Context, secretID string) (map[string]string, error) {
	out, err := f.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("secrets: get secret value: %w", err)
	}

	var bundle map[string]string
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &bundle); err != nil {
		return nil, fmt.Errorf("secrets: parse secret string: %w", err)
	}
	return bundle, nil
}

// Cache is a single-bundle, never-expiring credential cache. The process
// only ever uses one secret ARN, so the first successful fetch is served
// for every later call regardless of the secretID argument. Short-lived
// invocation environments reset it by restarting the process; tests reset
// it with Invalidate.
type Cache struct {
	fetcher Fetcher

	mu     sync.Mutex
	bundle map[string]string
}

// NewCache creates an empty Cache backed by the given fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Get returns the cached bundle, fetching it on first use. Fetch failures
// are logged and yield an empty map rather than an error: missing
// credentials are a delivery concern, not a pipeline one. A failed fetch
// is not cached, so the next invocation retries.
func (c *Cache) Get(ctx context.Context, secretID string) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bundle != nil {
		return c.bundle
	}

	bundle, err := c.fetcher.Fetch(ctx, secretID)
	if err != nil {
		slog.Error("error fetching secrets", "error", err, "secret_id", secretID)
		return map[string]string{}
	}
	c.bundle = bundle
	return c.bundle
}

// Invalidate drops the cached bundle so the next Get fetches again.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundle = nil
}

// Resolve picks the credential fields out of a secret bundle using the
// configured key names. An unset key name or a key absent from the bundle
// leaves that field empty.
func Resolve(bundle map[string]string, userIDKey, apiKeyKey, endpointKey string) model.CredentialBundle {
	creds := model.CredentialBundle{}
	if userIDKey != "" {
		creds.UserID = bundle[userIDKey]
	}
	if apiKeyKey != "" {
		creds.APIKey = bundle[apiKeyKey]
	}
	if endpointKey != "" {
		creds.Endpoint = bundle[endpointKey]
	}
	return creds
}
