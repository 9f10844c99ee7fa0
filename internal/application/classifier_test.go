package application

import (
	"testing"

	"marketdata-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func newTestClassifier(p *domain.MarketProfile, refs ReferenceSet) *Classifier {
	return NewClassifier(p, refs, Synthesizer{Seed: 1}, fakeClock{t: testNow})
}

func aggResult(provenance domain.ResultProvenance, live int, items ...domain.Quote) domain.AggregateResult {
	return domain.AggregateResult{
		Items:        items,
		Provenance:   provenance,
		TotalResults: len(items),
		LiveCount:    live,
	}
}

func Test_Classify_SourceLabels(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(cryptoProfile(), newFakeRefs(cryptoRecords()...))
	q := domain.Quote{Symbol: "BTC", Price: 67000, Provenance: domain.ProvenanceLive, Timestamp: testNow}

	cases := []struct {
		name       string
		provenance domain.ResultProvenance
		mode       Mode
		source     string
	}{
		{"live watchlist", domain.ResultLive, ModeDefault, SourceLive},
		{"live search", domain.ResultLive, ModeSearch, SourceLiveSearch},
		{"mixed watchlist", domain.ResultMixed, ModeDefault, SourceHybrid},
		{"mixed search", domain.ResultMixed, ModeSearch, SourceHybrid},
		{"synthetic", domain.ResultSynthetic, ModeDefault, SourceDummy},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			env := c.Classify(aggResult(tc.provenance, 1, q), tc.mode, "")
			require.True(t, env.Success)
			require.Equal(t, tc.source, env.Source)
		})
	}
}

func Test_Classify_Notes(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(cryptoProfile(), newFakeRefs(cryptoRecords()...))
	live := domain.Quote{Symbol: "BTC", Provenance: domain.ProvenanceLive}
	demo := domain.Quote{Symbol: "ETH", Provenance: domain.ProvenanceSynthetic}

	env := c.Classify(aggResult(domain.ResultMixed, 3, live, demo), ModeDefault, "")
	require.Equal(t, "Enhanced data with 3 live prices", env.Note)

	env = c.Classify(aggResult(domain.ResultSynthetic, 0, demo), ModeSearch, "eth")
	require.Equal(t, "Using dummy data - API limitations or search failures", env.Note)

	env = c.Classify(aggResult(domain.ResultLive, 1, live), ModeDefault, "")
	require.Empty(t, env.Note)
}

func Test_Classify_SearchQueryEcho(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(cryptoProfile(), newFakeRefs(cryptoRecords()...))
	q := domain.Quote{Symbol: "BTC", Provenance: domain.ProvenanceLive}

	env := c.Classify(aggResult(domain.ResultLive, 1, q), ModeSearch, "btc")
	require.NotNil(t, env.SearchQuery)
	require.Equal(t, "btc", *env.SearchQuery)

	env = c.Classify(aggResult(domain.ResultLive, 1, q), ModeDefault, "")
	require.Nil(t, env.SearchQuery)
}

func Test_Payload_CryptoBlocks(t *testing.T) {
	t.Parallel()
	refs := newFakeRefs(cryptoRecords()...)
	refs.stats = &domain.CryptoStats{TotalMarketCap: 2.1e12, TotalVolume: 8.95e10, BTCDominance: 52.3, FearGreedIndex: 74, FearGreedLabel: "Greed"}
	refs.status = domain.MarketStatusInfo{IsOpen: true, TradingType: "24/7 Global Trading"}
	c := newTestClassifier(cryptoProfile(), refs)

	env := c.Classify(aggResult(domain.ResultLive, 1, domain.Quote{Symbol: "BTC", Provenance: domain.ProvenanceLive}), ModeDefault, "")
	require.Contains(t, env.Data, "cryptos")
	require.Contains(t, env.Data, "marketStats")
	require.Contains(t, env.Data, "marketStatus")

	stats, ok := env.Data["marketStats"].(domain.CryptoStats)
	require.True(t, ok)
	require.InEpsilon(t, 2.1e12, stats.TotalMarketCap, 0.051)
	require.Equal(t, "Greed", stats.FearGreedLabel)

	status, ok := env.Data["marketStatus"].(domain.MarketStatusInfo)
	require.True(t, ok)
	require.True(t, status.IsOpen)
	require.Equal(t, "2025-06-15T12:00:00Z", status.LastUpdated)
}

func Test_Payload_EquitiesBlocks(t *testing.T) {
	t.Parallel()
	refs := newFakeRefs()
	refs.indices = map[string]domain.IndexQuote{"sp500": {Value: 4327.89}}
	refs.status = domain.MarketStatusInfo{IsOpen: true, NextClose: "4:00 PM ET"}
	c := newTestClassifier(usProfile(), refs)

	env := c.Classify(aggResult(domain.ResultLive, 1, domain.Quote{Symbol: "AAPL", Provenance: domain.ProvenanceLive}), ModeDefault, "")
	require.Contains(t, env.Data, "stocks")
	require.Contains(t, env.Data, "indices")
	require.Contains(t, env.Data, "marketStatus")
	require.NotContains(t, env.Data, "marketStats")
}

func Test_Payload_GeneralBlocks(t *testing.T) {
	t.Parallel()
	refs := newFakeRefs()
	refs.indices = map[string]domain.IndexQuote{"nse": {Value: 18275}}
	refs.overview = &domain.CryptoOverview{TotalMarketCap: 2.2e12, Change: 9.5e10, ChangePercent: 4.55}
	p := domain.NewGeneralProfile([]string{"AAPL"}, nil, testQuorums())
	c := newTestClassifier(p, refs)

	env := c.Classify(aggResult(domain.ResultLive, 1, domain.Quote{Symbol: "AAPL", Provenance: domain.ProvenanceLive}), ModeDefault, "")
	require.Contains(t, env.Data, "watchlistStocks")
	overview, ok := env.Data["marketOverview"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, overview, "indices")
	require.Contains(t, overview, "crypto")
}

func Test_FullFallback(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(cryptoProfile(), newFakeRefs(cryptoRecords()...))

	env := c.FullFallback()
	require.True(t, env.Success)
	require.Equal(t, SourceDummy, env.Source)
	require.Equal(t, "Using dummy data due to API issues", env.Note)
	require.Equal(t, 12, env.TotalResults)
	require.Nil(t, env.SearchQuery)

	items, ok := env.Data["cryptos"].([]QuoteDTO)
	require.True(t, ok)
	require.Len(t, items, 12)
	for _, it := range items {
		require.Equal(t, domain.ProvenanceSynthetic, it.Provenance)
		require.Greater(t, it.Price, 0.0)
	}
	require.Equal(t, "BTC", items[0].Symbol)
}

func Test_SearchFailed(t *testing.T) {
	t.Parallel()
	c := newTestClassifier(cryptoProfile(), newFakeRefs(cryptoRecords()...))

	env := c.SearchFailed("unknowncoin")
	require.False(t, env.Success)
	require.Equal(t, SourceSearchFailed, env.Source)
	require.Equal(t, "No results found matching your search", env.Error)
	require.Equal(t, 0, env.TotalResults)
	require.NotNil(t, env.SearchQuery)
	require.Equal(t, "unknowncoin", *env.SearchQuery)

	items, ok := env.Data["cryptos"].([]QuoteDTO)
	require.True(t, ok)
	require.Empty(t, items)
}
