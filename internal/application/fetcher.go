package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketdata-service/internal/domain"
)

// Fetcher performs one provider call per descriptor, each raced against its
// own timer. All fetches are issued together and FetchAll returns only after
// every race settles; partial completion is never exposed.
type Fetcher struct {
	provider QuoteProvider
	refs     ReferenceSet
	clock    Clock
	log      *zap.Logger
}

func NewFetcher(provider QuoteProvider, refs ReferenceSet, clock Clock, log *zap.Logger) *Fetcher {
	return &Fetcher{provider: provider, refs: refs, clock: clock, log: log}
}

// FetchAll returns one outcome per descriptor, in input order.
func (f *Fetcher) FetchAll(ctx context.Context, p *domain.MarketProfile, descs []domain.SymbolDescriptor, mode Mode, perCallTimeout time.Duration) []domain.FetchOutcome {
	outcomes := make([]domain.FetchOutcome, len(descs))
	var wg sync.WaitGroup
	for i := range descs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = f.fetchOne(ctx, p, descs[i], mode, perCallTimeout)
		}(i)
	}
	wg.Wait()
	return outcomes
}

// fetchOne races a single fetch against its deadline timer. On timeout the
// provider call is not cancelled, only ignored; the detached context keeps a
// client disconnect from interrupting it either, and a late result is
// discarded. The timer is always stopped on the completion path.
func (f *Fetcher) fetchOne(ctx context.Context, p *domain.MarketProfile, d domain.SymbolDescriptor, mode Mode, timeout time.Duration) domain.FetchOutcome {
	callCtx := context.WithoutCancel(ctx)
	done := make(chan domain.FetchOutcome, 1)
	go func() {
		done <- f.fetch(callCtx, p, d, mode)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case out := <-done:
		return out
	case <-timer.C:
		f.log.Debug("fetch timed out",
			zap.String("market", string(p.Market)),
			zap.String("symbol", d.Symbol),
			zap.Duration("timeout", timeout))
		return domain.Failed(domain.FailureTimeout)
	}
}

func (f *Fetcher) fetch(ctx context.Context, p *domain.MarketProfile, d domain.SymbolDescriptor, mode Mode) domain.FetchOutcome {
	raw, err := f.provider.Quote(ctx, d.ProviderKey)
	if err != nil {
		f.log.Debug("quote fetch failed",
			zap.String("market", string(p.Market)),
			zap.String("symbol", d.Symbol),
			zap.Error(err))
		return domain.Failed(domain.FailureNetwork)
	}
	if raw.Price <= 0 {
		return domain.Failed(domain.FailureInvalidData)
	}

	q := domain.Quote{
		Symbol:        d.Symbol,
		DisplayName:   d.DisplayName,
		Price:         raw.Price,
		Change:        raw.Change,
		ChangePercent: raw.ChangePercent,
		Volume:        raw.Volume,
		Timestamp:     f.clock.Now(),
		Provenance:    domain.ProvenanceLive,
	}

	// Reference enrichment fills fields the provider does not supply;
	// provider-sourced fields always win.
	if rec, ok := f.refs.Lookup(d.Symbol); ok {
		if q.DisplayName == "" {
			q.DisplayName = rec.Name
		}
		if q.Volume <= 0 {
			q.Volume = rec.Volume
		}
		if rec.MarketCap > 0 {
			mc := rec.MarketCap
			q.MarketCap = &mc
		}
		if rec.Supply > 0 {
			sp := rec.Supply
			q.Supply = &sp
		}
		if rec.Rank > 0 {
			rank := rec.Rank
			q.Rank = &rank
		}
		q.Category = rec.Category
	}
	if q.DisplayName == "" {
		q.DisplayName = p.FallbackName(d.Symbol)
	}

	var industry string
	if p.FetchesCompanyProfile && mode == ModeDefault {
		if prof, perr := f.provider.CompanyProfile(ctx, p.ProfileSymbol(d.Symbol)); perr == nil {
			if prof.Name != "" {
				q.DisplayName = prof.Name
			}
			if prof.MarketCapMillions > 0 {
				mc := prof.MarketCapMillions * 1e6
				q.MarketCap = &mc
			}
			if q.Volume <= 0 && prof.ShareOutstanding > 0 {
				q.Volume = prof.ShareOutstanding
			}
			industry = prof.Industry
		}
	}

	if cat := p.CategoryFor(d.Symbol, industry); cat != "" {
		q.Category = cat
	}
	if q.Category == "" {
		q.Category = p.DefaultCategory
	}
	return domain.Fetched(q)
}
