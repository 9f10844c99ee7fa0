package domain

// ResultProvenance labels a whole aggregate: fully live, fully synthetic, or mixed.
type ResultProvenance string

const (
	ResultLive      ResultProvenance = "live"
	ResultSynthetic ResultProvenance = "synthetic"
	ResultMixed     ResultProvenance = "mixed"
)

// AggregateResult is the unit handed to the response classifier.
// Invariant: TotalResults == len(Items).
type AggregateResult struct {
	Items        []Quote
	Provenance   ResultProvenance
	Query        string
	TotalResults int
	LiveCount    int
}

// ClassifyItems derives the overall provenance of a non-empty item list.
func ClassifyItems(items []Quote) ResultProvenance {
	live, synthetic := 0, 0
	for _, q := range items {
		if q.Provenance == ProvenanceLive {
			live++
		} else {
			synthetic++
		}
	}
	switch {
	case synthetic == 0:
		return ResultLive
	case live == 0:
		return ResultSynthetic
	default:
		return ResultMixed
	}
}
