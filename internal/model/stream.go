package model

// Stream is one labeled log stream in the Loki push payload:
// {"stream":{"label":"value"},"values":[["<unix_ns_string>","line"],...]}.
type Stream struct {
	Stream LabelSet    `json:"stream"`
	Values [][2]string `json:"values"`
}

// PushRequest is the body of a Loki /loki/api/v1/push call.
type PushRequest struct {
	Streams []Stream `json:"streams"`
}

// CredentialBundle holds delivery credentials resolved from a secret map.
// Any field may be empty when its key is unset or missing from the map.
type CredentialBundle struct {
	UserID   string
	APIKey   string
	Endpoint string
}
