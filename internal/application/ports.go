package application

import (
	"context"
	"time"

	"marketdata-service/internal/domain"
)

// RawQuote is the provider's quote payload, untranslated. Volume is zero when
// the provider does not report it.
type RawQuote struct {
	Price         float64
	Change        float64
	ChangePercent float64
	High          float64
	Low           float64
	Open          float64
	PreviousClose float64
	Volume        float64
}

// CompanyProfile is the provider's company metadata. MarketCapMillions keeps
// the provider's unit; callers convert to absolute figures.
type CompanyProfile struct {
	Name              string
	MarketCapMillions float64
	ShareOutstanding  float64
	Industry          string
	Exchange          string
	Country           string
	Currency          string
}

type QuoteProvider interface {
	Quote(ctx context.Context, providerKey string) (RawQuote, error)
	CompanyProfile(ctx context.Context, symbol string) (CompanyProfile, error)
}

type SymbolSearcher interface {
	Search(ctx context.Context, market domain.Market, query string) ([]domain.Candidate, error)
}

// ReferenceSet is the static fallback dataset for one market: records keyed
// by symbol plus the static overview blocks shown alongside quote lists.
// Implementations are read-only after construction and safe for concurrent use.
type ReferenceSet interface {
	Lookup(symbol string) (domain.ReferenceRecord, bool)
	All() []domain.ReferenceRecord
	Size() int

	Indices() map[string]domain.IndexQuote
	CryptoOverview() (domain.CryptoOverview, bool)
	CryptoStats() (domain.CryptoStats, bool)
	Status() domain.MarketStatusInfo
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
