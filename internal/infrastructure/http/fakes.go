package httpserver

import (
	"context"
	"errors"

	"marketdata-service/internal/application"
	"marketdata-service/internal/domain"
)

var errUpstreamDown = errors.New("upstream down")

var _ application.QuoteProvider = (*fakeProvider)(nil)
var _ application.SymbolSearcher = (*fakeProvider)(nil)

// fakeProvider backs router tests: quotes keyed by provider key, search
// candidates keyed by market.
type fakeProvider struct {
	quotes     map[string]application.RawQuote
	candidates map[domain.Market][]domain.Candidate
	searchErr  error
}

func (f *fakeProvider) Quote(_ context.Context, key string) (application.RawQuote, error) {
	q, ok := f.quotes[key]
	if !ok {
		return application.RawQuote{}, errUpstreamDown
	}
	return q, nil
}

func (f *fakeProvider) CompanyProfile(context.Context, string) (application.CompanyProfile, error) {
	return application.CompanyProfile{}, errUpstreamDown
}

func (f *fakeProvider) Search(_ context.Context, market domain.Market, _ string) ([]domain.Candidate, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates[market], nil
}
