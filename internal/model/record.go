package model

// RawLogRecord is a single log event as delivered by CloudWatch.
// Timestamp is milliseconds since epoch.
type RawLogRecord struct {
	ID        string `json:"id,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// Batch is the decoded CloudWatch subscription envelope.
type Batch struct {
	MessageType string         `json:"messageType,omitempty"`
	Owner       string         `json:"owner,omitempty"`
	LogGroup    string         `json:"logGroup"`
	LogStream   string         `json:"logStream"`
	Events      []RawLogRecord `json:"logEvents"`
}

// LabelSet maps label names to values. Values are never empty; labels
// whose heuristic did not fire are absent rather than empty.
type LabelSet map[string]string

// ClassifiedRecord is a labeled log event ready for stream grouping.
// TimestampNs is the event timestamp as decimal nanoseconds.
type ClassifiedRecord struct {
	Labels      LabelSet
	TimestampNs string
	Message     string
}
