// Package classifier labels raw log lines using an ordered cascade of
// matchers. Heterogeneous producers write into the same log groups
// (structured JSON emitters next to ad-hoc console output), so each
// matcher is best-effort: a record that matches nothing still gets the
// base labels, and a malformed line never fails the batch.
package classifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/HyperChonk/log-forwarder/internal/model"
)

// Context supplies the labels fixed for a whole batch.
type Context struct {
	Service     string
	Environment string
	LogGroup    string
	LogStream   string
}

// structuredFields are the JSON fields promoted to labels verbatim.
var structuredFields = []string{"level", "job", "chain", "phase", "sync_job"}

var (
	// [2025-06-11T06:19:43.354Z] [INFO] message
	bracketPattern = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2}T[^\]]+)\]\s*\[([^\]]+)\]`)

	// Start job sync-pools-POLYGON-start. Tokens split at the first two
	// hyphens after the verb, matching the upstream emitter's format.
	jobPattern = regexp.MustCompile(`(?:Start job|Successful job|Error job|Skip job)\s+([^\s-]+)-([^\s-]+)`)
)

// phaseByVerb maps job verb phrases to phase labels, checked in order.
var phaseByVerb = []struct {
	verb  string
	phase string
}{
	{"Start job", "start"},
	{"Successful job", "complete"},
	{"Error job", "failed"},
	{"Skip job", "skip"},
}

// Classify maps one raw message to its label set. Pure: the same
// (message, ctx) pair always yields the same labels.
//
// The cascade is exclusive at the top level: a message that looks like a
// JSON object is handled by the structured matcher alone, even when the
// parse fails. The bracket and job matchers never both fire; the level
// fallback applies only on the non-JSON path.
func Classify(message string, ctx Context) model.LabelSet {
	labels := model.LabelSet{
		"service":     ctx.Service,
		"environment": ctx.Environment,
		"log_group":   ctx.LogGroup,
		"log_stream":  ctx.LogStream,
		"source":      "aws-cloudwatch",
	}

	if looksStructured(message) {
		merge(labels, matchStructured(message))
		return labels
	}

	if extracted, ok := matchBracketed(message); ok {
		merge(labels, extracted)
		return labels
	}

	merge(labels, matchJobPattern(message))

	if _, ok := labels["level"]; !ok {
		labels["level"] = fallbackLevel(message)
	}
	return labels
}

func looksStructured(message string) bool {
	return strings.HasPrefix(message, "{") && strings.HasSuffix(message, "}")
}

// matchStructured extracts labels from a JSON object message. A parse
// failure yields no labels at all: the message claimed to be structured,
// so the free-text matchers do not get a second look at it.
func matchStructured(message string) model.LabelSet {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(message), &parsed); err != nil {
		slog.Debug("failed to parse JSON log", "error", err, "preview", preview(message))
		return nil
	}

	extracted := model.LabelSet{}
	for _, field := range structuredFields {
		if v, ok := parsed[field]; ok && truthy(v) {
			extracted[field] = stringify(v)
		}
	}
	// The duration value itself is high-cardinality; only flag presence.
	if v, ok := parsed["duration"]; ok && truthy(v) {
		extracted["has_duration"] = "true"
	}
	return extracted
}

// matchBracketed handles "[<ISO-8601>] [<LEVEL>]" console output. Only the
// level is extracted; these lines carry no job metadata.
func matchBracketed(message string) (model.LabelSet, bool) {
	m := bracketPattern.FindStringSubmatch(message)
	if m == nil {
		return nil, false
	}
	return model.LabelSet{"level": strings.ToLower(m[2])}, true
}

// matchJobPattern extracts sync-job metadata from console lines like
// "Start job sync-pools-POLYGON-start". The captures split at hyphens, so
// a job named "sync-pools" yields sync_job="sync", chain="pools". That is
// an upstream naming-convention mismatch, preserved here rather than
// second-guessed.
func matchJobPattern(message string) model.LabelSet {
	if !strings.Contains(message, "job") || !strings.Contains(message, "-") {
		return nil
	}
	m := jobPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}

	extracted := model.LabelSet{"sync_job": m[1], "chain": m[2]}
	for _, p := range phaseByVerb {
		if strings.Contains(message, p.verb) {
			extracted["phase"] = p.phase
			break
		}
	}
	return extracted
}

// fallbackLevel classifies by substring when no matcher produced a level.
func fallbackLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "error") || strings.Contains(lower, "failed"):
		return "error"
	case strings.Contains(lower, "warn"):
		return "warn"
	default:
		return "info"
	}
}

func merge(dst, src model.LabelSet) {
	for k, v := range src {
		dst[k] = v
	}
}

// truthy reports whether a decoded JSON value is present and not the
// zero of its type: "" for strings, 0 for numbers, false for bools,
// null for anything.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// stringify renders a decoded JSON value as a label value. Numbers use
// the minimal decimal form (3, not 3.000000).
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func preview(message string) string {
	if len(message) > 100 {
		return message[:100] + "..."
	}
	return message
}
