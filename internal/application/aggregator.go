package application

import (
	"marketdata-service/internal/domain"
)

// Aggregator merges fetch outcomes into an ordered result, substituting
// synthetic quotes for failed slots and enforcing the quorum rule.
type Aggregator struct {
	refs  ReferenceSet
	synth Synthesizer
	clock Clock
}

func NewAggregator(refs ReferenceSet, synth Synthesizer, clock Clock) *Aggregator {
	return &Aggregator{refs: refs, synth: synth, clock: clock}
}

// Aggregate applies, per slot: keep a live quote, substitute from the
// reference dataset, or drop when no record exists. Item order follows
// descriptor order.
//
// Quorum: in search mode at least Quorums.Search items must survive. In
// watchlist mode at least Quorums.Default items must survive AND at least one
// of them must be live; a fully dead provider escalates to the full-fallback
// dataset rather than a perturbed copy of the watchlist.
func (a *Aggregator) Aggregate(outcomes []domain.FetchOutcome, descs []domain.SymbolDescriptor, mode Mode, p *domain.MarketProfile) (domain.AggregateResult, error) {
	now := a.clock.Now()
	items := make([]domain.Quote, 0, len(descs))
	live := 0
	for i, out := range outcomes {
		if out.OK {
			items = append(items, out.Quote)
			live++
			continue
		}
		rec, ok := a.refs.Lookup(descs[i].Symbol)
		if !ok {
			continue // no reference record: slot dropped
		}
		items = append(items, a.synth.QuoteFrom(rec, now))
	}

	quorum := p.Quorums.Default
	if mode == ModeSearch {
		quorum = p.Quorums.Search
	}
	if len(items) < quorum {
		return domain.AggregateResult{}, domain.ErrInsufficientQuorum
	}
	if mode == ModeDefault && live == 0 {
		return domain.AggregateResult{}, domain.ErrInsufficientQuorum
	}

	return domain.AggregateResult{
		Items:        items,
		Provenance:   domain.ClassifyItems(items),
		TotalResults: len(items),
		LiveCount:    live,
	}, nil
}
