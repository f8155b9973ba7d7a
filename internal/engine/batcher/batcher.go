// Package batcher groups classified records into Loki streams keyed by
// their full label set.
package batcher

import (
	"sort"
	"strings"

	"github.com/HyperChonk/log-forwarder/internal/model"
)

// Group folds records into one stream per distinct label set. Streams
// appear in order of first appearance; within a stream, values keep
// input order. No sorting, timestamp ordering, or dedup is applied.
func Group(records []model.ClassifiedRecord) []model.Stream {
	var streams []model.Stream
	index := make(map[string]int)

	for _, rec := range records {
		k := key(rec.Labels)
		i, ok := index[k]
		if !ok {
			i = len(streams)
			index[k] = i
			streams = append(streams, model.Stream{Stream: rec.Labels})
		}
		streams[i].Values = append(streams[i].Values, [2]string{rec.TimestampNs, rec.Message})
	}
	return streams
}

// key builds a canonical string for a label set so that map iteration
// order cannot split equal sets into separate streams.
func key(labels model.LabelSet) string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(labels[name])
		b.WriteByte('\x00')
	}
	return b.String()
}
