package engine

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/HyperChonk/log-forwarder/internal/engine/batcher"
	"github.com/HyperChonk/log-forwarder/internal/engine/classifier"
	"github.com/HyperChonk/log-forwarder/internal/model"
)

// Engine orchestrates the classify → group pipeline for one batch.
type Engine struct {
	service     string
	environment string
}

// New creates an Engine stamping the given service and environment onto
// every record's base labels.
func New(service, environment string) *Engine {
	return &Engine{service: service, environment: environment}
}

// Process classifies every event in the batch and groups the results
// into label-keyed streams. CloudWatch timestamps are milliseconds;
// Loki wants decimal nanoseconds, so each is multiplied by 1e6 with no
// further rounding. Messages are trimmed before classification and the
// trimmed form is what gets delivered.
func (e *Engine) Process(batch model.Batch) []model.Stream {
	ctx := classifier.Context{
		Service:     e.service,
		Environment: e.environment,
		LogGroup:    batch.LogGroup,
		LogStream:   batch.LogStream,
	}

	records := make([]model.ClassifiedRecord, 0, len(batch.Events))
	for _, ev := range batch.Events {
		message := strings.TrimSpace(ev.Message)
		slog.Debug("processing message", "preview", preview(message))

		records = append(records, model.ClassifiedRecord{
			Labels:      classifier.Classify(message, ctx),
			TimestampNs: strconv.FormatInt(ev.Timestamp*1_000_000, 10),
			Message:     message,
		})
	}

	streams := batcher.Group(records)
	slog.Info("classified batch", "events", len(records), "streams", len(streams), "log_group", batch.LogGroup)
	return streams
}

func preview(message string) string {
	if len(message) > 100 {
		return message[:100] + "..."
	}
	return message
}
