package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/HyperChonk/log-forwarder/internal/config"
	"github.com/HyperChonk/log-forwarder/internal/logging"
	"github.com/HyperChonk/log-forwarder/internal/secrets"
	"github.com/HyperChonk/log-forwarder/pkg/forwarder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		slog.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}
	fetcher := secrets.NewManagerFetcher(secretsmanager.NewFromConfig(awsCfg))

	fw, err := forwarder.New(
		forwarder.WithConfig(cfg),
		forwarder.WithSecretFetcher(fetcher),
	)
	if err != nil {
		slog.Error("failed to build forwarder", "error", err)
		os.Exit(1)
	}

	lambda.Start(func(ctx context.Context, event events.CloudwatchLogsEvent) (forwarder.Result, error) {
		return fw.Handle(ctx, event.AWSLogs.Data), nil
	})
}
