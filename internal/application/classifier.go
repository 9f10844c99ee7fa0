package application

import (
	"fmt"
	"time"

	"marketdata-service/internal/domain"
)

// External source vocabulary. Every aggregate maps to exactly one label; the
// UI renders its live/demo badge from this field, never from HTTP status.
const (
	SourceLive         = "finnhub"
	SourceLiveSearch   = "finnhub_search"
	SourceHybrid       = "hybrid"
	SourceDummy        = "dummy"
	SourceSearchFailed = "search_failed"
)

// Envelope is the response shape shared by all market endpoints.
type Envelope struct {
	Success      bool           `json:"success"`
	Source       string         `json:"source"`
	SearchQuery  *string        `json:"searchQuery"`
	Data         map[string]any `json:"data"`
	Timestamp    string         `json:"timestamp"`
	TotalResults int            `json:"totalResults"`
	Note         string         `json:"note,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// QuoteDTO is the wire form of a Quote.
type QuoteDTO struct {
	Symbol        string            `json:"symbol"`
	Name          string            `json:"name"`
	Price         float64           `json:"price"`
	Change        float64           `json:"change"`
	ChangePercent float64           `json:"changePercent"`
	Volume        float64           `json:"volume"`
	MarketCap     *float64          `json:"marketCap"`
	Category      string            `json:"category"`
	Supply        *float64          `json:"supply,omitempty"`
	Rank          *int              `json:"rank"`
	Provenance    domain.Provenance `json:"provenance"`
	LastUpdated   string            `json:"lastUpdated"`
}

// Classifier maps aggregate results to response envelopes for one market
// profile. The mapping is pure and total.
type Classifier struct {
	profile *domain.MarketProfile
	refs    ReferenceSet
	synth   Synthesizer
	clock   Clock
}

func NewClassifier(p *domain.MarketProfile, refs ReferenceSet, synth Synthesizer, clock Clock) *Classifier {
	return &Classifier{profile: p, refs: refs, synth: synth, clock: clock}
}

// Classify labels a quorum-satisfying aggregate.
func (c *Classifier) Classify(res domain.AggregateResult, mode Mode, query string) Envelope {
	var source string
	switch res.Provenance {
	case domain.ResultLive:
		source = SourceLive
		if mode == ModeSearch {
			source = SourceLiveSearch
		}
	case domain.ResultMixed:
		source = SourceHybrid
	default:
		source = SourceDummy
	}

	env := Envelope{
		Success:      true,
		Source:       source,
		SearchQuery:  optional(query),
		Data:         c.payload(res.Items),
		Timestamp:    c.timestamp(),
		TotalResults: res.TotalResults,
	}
	switch res.Provenance {
	case domain.ResultMixed:
		env.Note = fmt.Sprintf("Enhanced data with %d live prices", res.LiveCount)
	case domain.ResultSynthetic:
		env.Note = "Using dummy data - API limitations or search failures"
	}
	return env
}

// FullFallback is the watchlist-mode escalation: the entire reference
// dataset, every item synthetic.
func (c *Classifier) FullFallback() Envelope {
	now := c.clock.Now()
	records := c.refs.All()
	items := make([]domain.Quote, 0, len(records))
	for _, rec := range records {
		items = append(items, c.synth.QuoteFrom(rec, now))
	}
	return Envelope{
		Success:      true,
		Source:       SourceDummy,
		SearchQuery:  nil,
		Data:         c.payload(items),
		Timestamp:    c.timestamp(),
		TotalResults: len(items),
		Note:         "Using dummy data due to API issues",
	}
}

// SearchFailed is the search-mode escalation: an explicitly empty result.
// Search never fabricates items for a query nothing matched.
func (c *Classifier) SearchFailed(query string) Envelope {
	return Envelope{
		Success:      false,
		Source:       SourceSearchFailed,
		SearchQuery:  optional(query),
		Data:         c.payload(nil),
		Timestamp:    c.timestamp(),
		TotalResults: 0,
		Error:        "No results found matching your search",
	}
}

func (c *Classifier) payload(items []domain.Quote) map[string]any {
	now := c.clock.Now()
	data := map[string]any{
		c.profile.ItemsKey: toDTOs(items),
	}
	switch c.profile.Market {
	case domain.MarketGeneral:
		overview := map[string]any{"indices": c.refs.Indices()}
		if co, ok := c.refs.CryptoOverview(); ok {
			overview["crypto"] = co
		}
		data["marketOverview"] = overview
	case domain.MarketEquities:
		data["indices"] = c.refs.Indices()
		data["marketStatus"] = c.refs.Status()
	case domain.MarketCrypto:
		if stats, ok := c.refs.CryptoStats(); ok {
			data["marketStats"] = c.synth.StatsFrom(stats, now)
		}
		status := c.refs.Status()
		status.LastUpdated = now.UTC().Format(time.RFC3339)
		data["marketStatus"] = status
	}
	return data
}

func (c *Classifier) timestamp() string {
	return c.clock.Now().UTC().Format(time.RFC3339)
}

func toDTOs(items []domain.Quote) []QuoteDTO {
	out := make([]QuoteDTO, 0, len(items))
	for _, q := range items {
		out = append(out, QuoteDTO{
			Symbol:        q.Symbol,
			Name:          q.DisplayName,
			Price:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
			Volume:        q.Volume,
			MarketCap:     q.MarketCap,
			Category:      q.Category,
			Supply:        q.Supply,
			Rank:          q.Rank,
			Provenance:    q.Provenance,
			LastUpdated:   q.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
