package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"marketdata-service/internal/domain"
)

// FetchTimeouts bounds each per-symbol provider call. Search mode gets the
// longer bound: result sets are smaller but a lookup may need an extra
// profile round trip. Values are tuned configuration, not derived.
type FetchTimeouts struct {
	Default time.Duration
	Search  time.Duration
}

// MarketService runs the aggregation pipeline for one market profile:
// resolve, fetch, aggregate, classify. Per-symbol failures are recovered by
// substitution or slot drop; only a quorum failure changes the response
// shape, and even then the caller gets HTTP 200 with a provenance label.
type MarketService struct {
	profile    *domain.MarketProfile
	resolver   *Resolver
	fetcher    *Fetcher
	aggregator *Aggregator
	classifier *Classifier
	timeouts   FetchTimeouts
	log        *zap.Logger
}

type Option func(*options)

type options struct {
	clock Clock
	synth Synthesizer
}

func WithClock(c Clock) Option { return func(o *options) { o.clock = c } }

func WithSynthesizer(s Synthesizer) Option { return func(o *options) { o.synth = s } }

func NewMarketService(
	p *domain.MarketProfile,
	provider QuoteProvider,
	searcher SymbolSearcher,
	refs ReferenceSet,
	timeouts FetchTimeouts,
	log *zap.Logger,
	opts ...Option,
) *MarketService {
	o := options{clock: realClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &MarketService{
		profile:    p,
		resolver:   NewResolver(searcher, refs, log),
		fetcher:    NewFetcher(provider, refs, o.clock, log),
		aggregator: NewAggregator(refs, o.synth, o.clock),
		classifier: NewClassifier(p, refs, o.synth, o.clock),
		timeouts:   timeouts,
		log:        log,
	}
}

// Profile exposes the service's market profile to the transport layer.
func (s *MarketService) Profile() *domain.MarketProfile { return s.profile }

// Snapshot serves one request cycle end to end.
func (s *MarketService) Snapshot(ctx context.Context, in ResolveInput) Envelope {
	descs, mode := s.resolver.Resolve(ctx, s.profile, in)
	if len(descs) == 0 {
		return s.escalate(mode, in.Query)
	}

	timeout := s.timeouts.Default
	if mode == ModeSearch {
		timeout = s.timeouts.Search
	}
	outcomes := s.fetcher.FetchAll(ctx, s.profile, descs, mode, timeout)

	res, err := s.aggregator.Aggregate(outcomes, descs, mode, s.profile)
	if err != nil {
		s.log.Info("quorum not met",
			zap.String("market", string(s.profile.Market)),
			zap.Int("requested", len(descs)))
		return s.escalate(mode, in.Query)
	}
	res.Query = in.Query
	return s.classifier.Classify(res, mode, in.Query)
}

func (s *MarketService) escalate(mode Mode, query string) Envelope {
	if mode == ModeSearch {
		return s.classifier.SearchFailed(query)
	}
	return s.classifier.FullFallback()
}
