package model

// OutcomeKind discriminates DeliveryOutcome variants.
type OutcomeKind int

const (
	DeliverySucceeded OutcomeKind = iota
	DeliverySkipped
	DeliveryFailed
)

// DeliveryOutcome is the interpreted result of a push attempt.
type DeliveryOutcome struct {
	Kind        OutcomeKind
	StreamCount int    // set for DeliverySucceeded
	Reason      string // set for DeliverySkipped
	StatusCode  int    // set for DeliveryFailed
	Detail      string // set for DeliveryFailed: response body or "No response body"
}

// Success reports a delivered batch of n streams.
func Success(n int) DeliveryOutcome {
	return DeliveryOutcome{Kind: DeliverySucceeded, StreamCount: n}
}

// Skipped reports a benign no-op delivery.
func Skipped(reason string) DeliveryOutcome {
	return DeliveryOutcome{Kind: DeliverySkipped, Reason: reason}
}

// Failed reports a rejected push.
func Failed(status int, detail string) DeliveryOutcome {
	return DeliveryOutcome{Kind: DeliveryFailed, StatusCode: status, Detail: detail}
}

// Result is the invocation result contract: 200 for success or benign
// skip, 500 for configuration or delivery failure.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
