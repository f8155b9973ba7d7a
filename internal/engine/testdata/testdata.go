// Package testdata provides a labeled corpus of production-shaped
// CloudWatch messages for classifier validation.
package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a labeled log line. WantLabels lists the labels the
// cascade must extract beyond the base set; an empty map means the line
// matches nothing (base labels only).
type CorpusEntry struct {
	Message     string            `json:"message"`
	WantLabels  map[string]string `json:"want_labels"`
	Description string            `json:"description"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
