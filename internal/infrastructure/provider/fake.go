package provider

import (
	"context"

	"marketdata-service/internal/application"
	"marketdata-service/internal/domain"
)

// Fake serves a fixed price for every symbol and no search results. Useful
// for local development without upstream credentials.
type Fake struct {
	price float64
}

var (
	_ application.QuoteProvider  = (*Fake)(nil)
	_ application.SymbolSearcher = (*Fake)(nil)
)

func NewFake(price float64) *Fake { return &Fake{price: price} }

func (f *Fake) Quote(context.Context, string) (application.RawQuote, error) {
	return application.RawQuote{Price: f.price, Change: 1.5, ChangePercent: 0.5}, nil
}

func (f *Fake) CompanyProfile(context.Context, string) (application.CompanyProfile, error) {
	return application.CompanyProfile{}, nil
}

func (f *Fake) Search(context.Context, domain.Market, string) ([]domain.Candidate, error) {
	return nil, nil
}
