package domain

// FailureReason classifies a per-symbol fetch failure.
type FailureReason string

const (
	FailureNetwork     FailureReason = "network"
	FailureTimeout     FailureReason = "timeout"
	FailureInvalidData FailureReason = "invalid_data"
)

// FetchOutcome is the result of a single symbol fetch: either a live Quote or
// a classified failure. Failures never propagate as errors past the fetcher;
// the aggregator recovers them by substitution or slot drop.
type FetchOutcome struct {
	OK     bool
	Quote  Quote
	Reason FailureReason
}

func Fetched(q Quote) FetchOutcome { return FetchOutcome{OK: true, Quote: q} }

func Failed(reason FailureReason) FetchOutcome { return FetchOutcome{Reason: reason} }
