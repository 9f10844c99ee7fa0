package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"marketdata-service/internal/domain"
)

var ErrProviderDown = errors.New("provider down")

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeRefs struct {
	records  []domain.ReferenceRecord
	indices  map[string]domain.IndexQuote
	overview *domain.CryptoOverview
	stats    *domain.CryptoStats
	status   domain.MarketStatusInfo
}

func newFakeRefs(records ...domain.ReferenceRecord) *fakeRefs {
	return &fakeRefs{records: records}
}

func (f *fakeRefs) Lookup(symbol string) (domain.ReferenceRecord, bool) {
	for _, rec := range f.records {
		if rec.Symbol == symbol {
			return rec, true
		}
	}
	return domain.ReferenceRecord{}, false
}

func (f *fakeRefs) All() []domain.ReferenceRecord { return f.records }

func (f *fakeRefs) Size() int { return len(f.records) }

func (f *fakeRefs) Indices() map[string]domain.IndexQuote { return f.indices }

func (f *fakeRefs) CryptoOverview() (domain.CryptoOverview, bool) {
	if f.overview == nil {
		return domain.CryptoOverview{}, false
	}
	return *f.overview, true
}

func (f *fakeRefs) CryptoStats() (domain.CryptoStats, bool) {
	if f.stats == nil {
		return domain.CryptoStats{}, false
	}
	return *f.stats, true
}

func (f *fakeRefs) Status() domain.MarketStatusInfo { return f.status }

// fakeProvider serves quotes keyed by provider key. Per-key errors and
// delays simulate outages and slow upstreams.
type fakeProvider struct {
	mu       sync.Mutex
	quotes   map[string]RawQuote
	profiles map[string]CompanyProfile
	errs     map[string]error
	delays   map[string]time.Duration
	err      error

	quoteCalls   []string
	profileCalls []string
}

func (f *fakeProvider) Quote(_ context.Context, key string) (RawQuote, error) {
	f.mu.Lock()
	f.quoteCalls = append(f.quoteCalls, key)
	delay := f.delays[key]
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if f.err != nil {
		return RawQuote{}, f.err
	}
	if err, ok := f.errs[key]; ok {
		return RawQuote{}, err
	}
	q, ok := f.quotes[key]
	if !ok {
		return RawQuote{}, ErrProviderDown
	}
	return q, nil
}

func (f *fakeProvider) CompanyProfile(_ context.Context, symbol string) (CompanyProfile, error) {
	f.mu.Lock()
	f.profileCalls = append(f.profileCalls, symbol)
	f.mu.Unlock()
	p, ok := f.profiles[symbol]
	if !ok {
		return CompanyProfile{}, ErrProviderDown
	}
	return p, nil
}

type fakeSearcher struct {
	results []domain.Candidate
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, _ domain.Market, query string) ([]domain.Candidate, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func testQuorums() domain.Quorums { return domain.Quorums{Default: 5, Search: 1} }

func cryptoRecords() []domain.ReferenceRecord {
	names := map[string]string{
		"BTC": "Bitcoin", "ETH": "Ethereum", "BNB": "BNB", "SOL": "Solana",
		"XRP": "XRP", "ADA": "Cardano", "AVAX": "Avalanche", "DOT": "Polkadot",
		"MATIC": "Polygon", "LTC": "Litecoin", "LINK": "Chainlink", "UNI": "Uniswap",
	}
	out := make([]domain.ReferenceRecord, 0, len(names))
	rank := 1
	for _, sym := range []string{"BTC", "ETH", "BNB", "SOL", "XRP", "ADA", "AVAX", "DOT", "MATIC", "LTC", "LINK", "UNI"} {
		out = append(out, domain.ReferenceRecord{
			Symbol:        sym,
			Name:          names[sym],
			Price:         float64(1000 * rank),
			Change:        5,
			ChangePercent: 1.2,
			Volume:        1e9,
			MarketCap:     1e11,
			Category:      "Digital Asset",
			Supply:        1e7,
			Rank:          rank,
		})
		rank++
	}
	return out
}
