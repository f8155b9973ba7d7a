// Package pipeline drives one invocation end to end: decode the
// compressed batch, classify and group it, resolve credentials, push,
// and map the outcome to the invocation result contract.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/HyperChonk/log-forwarder/internal/config"
	"github.com/HyperChonk/log-forwarder/internal/connector/cloudwatch"
	"github.com/HyperChonk/log-forwarder/internal/engine"
	"github.com/HyperChonk/log-forwarder/internal/model"
	"github.com/HyperChonk/log-forwarder/internal/output/loki"
	"github.com/HyperChonk/log-forwarder/internal/secrets"
)

// Forwarder connects the decode, engine, secrets, and delivery stages.
type Forwarder struct {
	cfg    config.Config
	engine *engine.Engine
	cache  *secrets.Cache
	client *loki.Client
}

// New creates a Forwarder from the given components.
func New(cfg config.Config, cache *secrets.Cache, client *loki.Client) *Forwarder {
	return &Forwarder{
		cfg:    cfg,
		engine: engine.New(cfg.Service, cfg.Environment),
		cache:  cache,
		client: client,
	}
}

// Handle processes one compressed CloudWatch batch and returns the
// invocation result: 200 for delivered or benignly skipped batches, 500
// for decode, configuration, or delivery failures. It never panics; any
// panic in the stages below is recovered, logged with its stack, and
// reported as a 500 so the host runtime stays up.
func (f *Forwarder) Handle(ctx context.Context, data string) (res model.Result) {
	log := slog.With("invocation_id", invocationID(ctx))

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while forwarding logs", "panic", r, "stack", string(debug.Stack()))
			res = model.Result{StatusCode: 500, Body: fmt.Sprintf("Error: %v", r)}
		}
	}()

	batch, err := cloudwatch.Decode(data)
	if err != nil {
		log.Error("error decoding log batch", "error", err)
		return model.Result{StatusCode: 500, Body: fmt.Sprintf("Error: %v", err)}
	}

	if len(batch.Events) == 0 {
		log.Info("no log events to process")
		return model.Result{StatusCode: 200, Body: "No log events to process"}
	}

	log.Info("processing log events", "count", len(batch.Events), "log_group", batch.LogGroup)

	streams := f.engine.Process(batch)
	if len(streams) == 0 {
		return model.Result{StatusCode: 200, Body: "No log events to process"}
	}

	if f.cfg.SecretARN == "" {
		log.Error("SECRET_ARN environment variable not set")
		return model.Result{StatusCode: 500, Body: "SECRET_ARN environment variable not configured"}
	}

	bundle := f.cache.Get(ctx, f.cfg.SecretARN)
	creds := secrets.Resolve(bundle, f.cfg.UserIDKey, f.cfg.APIKeyKey, f.cfg.EndpointKey)

	outcome, err := f.client.Push(ctx, streams, creds)
	if err != nil {
		log.Error("error forwarding logs", "error", err)
		return model.Result{StatusCode: 500, Body: fmt.Sprintf("Error: %v", err)}
	}

	switch outcome.Kind {
	case model.DeliverySkipped:
		return model.Result{StatusCode: 200, Body: "Grafana Cloud credentials not configured - skipping log forwarding"}
	case model.DeliveryFailed:
		return model.Result{
			StatusCode: 500,
			Body:       fmt.Sprintf("Grafana Cloud returned %d: %s", outcome.StatusCode, outcome.Detail),
		}
	default:
		return model.Result{
			StatusCode: 200,
			Body:       fmt.Sprintf("Successfully forwarded %d streams to Grafana Cloud", outcome.StreamCount),
		}
	}
}

// invocationID returns the Lambda request id when the host supplies one,
// or a fresh UUID for local runs and tests.
func invocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
