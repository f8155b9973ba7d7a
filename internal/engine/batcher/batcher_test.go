package batcher

import (
	"reflect"
	"testing"

	"github.com/HyperChonk/log-forwarder/internal/model"
)

func record(ns, msg string, labels model.LabelSet) model.ClassifiedRecord {
	return model.ClassifiedRecord{Labels: labels, TimestampNs: ns, Message: msg}
}

func TestGroupEmpty(t *testing.T) {
	if got := Group(nil); len(got) != 0 {
		t.Fatalf("expected no streams, got %d", len(got))
	}
}

func TestGroupDistinctLabelSets(t *testing.T) {
	a := model.LabelSet{"level": "info"}
	b := model.LabelSet{"level": "error"}

	streams := Group([]model.ClassifiedRecord{
		record("1", "one", a),
		record("2", "two", b),
	})

	if len(streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(streams))
	}
}

func TestGroupMergesEqualLabelSets(t *testing.T) {
	// Equal content in distinct map values must land in one stream.
	streams := Group([]model.ClassifiedRecord{
		record("1", "one", model.LabelSet{"level": "info", "chain": "MAINNET"}),
		record("2", "two", model.LabelSet{"chain": "MAINNET", "level": "info"}),
		record("3", "three", model.LabelSet{"level": "info", "chain": "MAINNET"}),
	})

	if len(streams) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(streams))
	}
	want := [][2]string{{"1", "one"}, {"2", "two"}, {"3", "three"}}
	if !reflect.DeepEqual(streams[0].Values, want) {
		t.Fatalf("values = %v, want %v", streams[0].Values, want)
	}
}

func TestGroupFirstAppearanceOrder(t *testing.T) {
	a := model.LabelSet{"level": "info"}
	b := model.LabelSet{"level": "error"}

	streams := Group([]model.ClassifiedRecord{
		record("1", "a1", a),
		record("2", "b1", b),
		record("3", "a2", a),
		record("4", "b2", b),
	})

	if len(streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(streams))
	}
	if streams[0].Stream["level"] != "info" || streams[1].Stream["level"] != "error" {
		t.Fatalf("streams out of first-appearance order: %v", streams)
	}
	if !reflect.DeepEqual(streams[0].Values, [][2]string{{"1", "a1"}, {"3", "a2"}}) {
		t.Fatalf("stream 0 values = %v", streams[0].Values)
	}
	if !reflect.DeepEqual(streams[1].Values, [][2]string{{"2", "b1"}, {"4", "b2"}}) {
		t.Fatalf("stream 1 values = %v", streams[1].Values)
	}
}

func TestGroupKeepsIdenticalPairs(t *testing.T) {
	// Identical (timestamp, message) pairs are not deduplicated.
	a := model.LabelSet{"level": "info"}
	streams := Group([]model.ClassifiedRecord{
		record("1", "same", a),
		record("1", "same", a),
	})

	if len(streams) != 1 || len(streams[0].Values) != 2 {
		t.Fatalf("expected 1 stream with 2 values, got %v", streams)
	}
}

func TestGroupConservesRecords(t *testing.T) {
	var records []model.ClassifiedRecord
	labelSets := []model.LabelSet{
		{"level": "info"},
		{"level": "error"},
		{"level": "info", "phase": "start"},
	}
	for i := 0; i < 30; i++ {
		records = append(records, record("1", "m", labelSets[i%len(labelSets)]))
	}

	streams := Group(records)
	if len(streams) > len(records) {
		t.Fatalf("stream count %d exceeds record count %d", len(streams), len(records))
	}
	total := 0
	for _, s := range streams {
		total += len(s.Values)
	}
	if total != len(records) {
		t.Fatalf("conservation violated: %d values for %d records", total, len(records))
	}
}

func TestGroupSubsetLabelSetsStayDistinct(t *testing.T) {
	streams := Group([]model.ClassifiedRecord{
		record("1", "a", model.LabelSet{"level": "info"}),
		record("2", "b", model.LabelSet{"level": "info", "phase": "start"}),
	})
	if len(streams) != 2 {
		t.Fatalf("expected 2 streams for subset label sets, got %d", len(streams))
	}
}
