package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"marketdata-service/internal/application"
	"marketdata-service/internal/domain"
	"marketdata-service/internal/infrastructure/httpx"
	"marketdata-service/internal/infrastructure/metrics"
	redisstore "marketdata-service/internal/infrastructure/redis"
)

const (
	quotePath        = "/api/v1/quote"
	profilePath      = "/api/v1/stock/profile2"
	searchPath       = "/api/v1/search"
	cryptoSymbolPath = "/api/v1/crypto/symbol"
)

// ErrMissingAPIKey means the client was constructed without credentials.
// Callers treat every request as a provider failure in that case.
var ErrMissingAPIKey = errors.New("finnhub: missing api key")

// Finnhub talks to the Finnhub REST API. Responses are cached by URL
// (token excluded) so repeated snapshot requests inside the TTL window
// reuse upstream payloads, and all network calls go through the shared
// rate limiter.
type Finnhub struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
	Limiter *rate.Limiter

	Cache     redisstore.Cache
	QuoteTTL  time.Duration
	SearchTTL time.Duration
}

var (
	_ application.QuoteProvider  = (*Finnhub)(nil)
	_ application.SymbolSearcher = (*Finnhub)(nil)
)

type fhQuoteResp struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Volume        float64 `json:"v"`
}

type fhProfileResp struct {
	Name             string  `json:"name"`
	MarketCap        float64 `json:"marketCapitalization"`
	ShareOutstanding float64 `json:"shareOutstanding"`
	Industry         string  `json:"finnhubIndustry"`
	Exchange         string  `json:"exchange"`
	Country          string  `json:"country"`
	Currency         string  `json:"currency"`
}

type fhSearchResp struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

type fhCryptoSymbol struct {
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Symbol        string `json:"symbol"`
}

func (p *Finnhub) Quote(ctx context.Context, providerKey string) (application.RawQuote, error) {
	var body fhQuoteResp
	if err := p.get(ctx, quotePath, url.Values{"symbol": {providerKey}}, p.QuoteTTL, &body); err != nil {
		return application.RawQuote{}, err
	}
	return application.RawQuote{
		Price:         body.Current,
		Change:        body.Change,
		ChangePercent: body.ChangePercent,
		High:          body.High,
		Low:           body.Low,
		Open:          body.Open,
		PreviousClose: body.PreviousClose,
		Volume:        body.Volume,
	}, nil
}

func (p *Finnhub) CompanyProfile(ctx context.Context, symbol string) (application.CompanyProfile, error) {
	var body fhProfileResp
	if err := p.get(ctx, profilePath, url.Values{"symbol": {symbol}}, p.SearchTTL, &body); err != nil {
		return application.CompanyProfile{}, err
	}
	return application.CompanyProfile{
		Name:              body.Name,
		MarketCapMillions: body.MarketCap,
		ShareOutstanding:  body.ShareOutstanding,
		Industry:          body.Industry,
		Exchange:          body.Exchange,
		Country:           body.Country,
		Currency:          body.Currency,
	}, nil
}

// Search lists candidates for a query. For crypto markets the provider has no
// query endpoint, so the full Binance pair listing is fetched and the caller
// filters it; other markets use the symbol lookup endpoint.
func (p *Finnhub) Search(ctx context.Context, market domain.Market, query string) ([]domain.Candidate, error) {
	if market == domain.MarketCrypto {
		var pairs []fhCryptoSymbol
		if err := p.get(ctx, cryptoSymbolPath, url.Values{"exchange": {"binance"}}, p.SearchTTL, &pairs); err != nil {
			return nil, err
		}
		out := make([]domain.Candidate, 0, len(pairs))
		for _, s := range pairs {
			out = append(out, domain.Candidate{
				Symbol:      strings.TrimPrefix(s.Symbol, "BINANCE:"),
				Description: s.Description,
				Type:        "crypto",
			})
		}
		return out, nil
	}

	var body fhSearchResp
	if err := p.get(ctx, searchPath, url.Values{"q": {query}}, p.SearchTTL, &body); err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(body.Result))
	for _, r := range body.Result {
		out = append(out, domain.Candidate{
			Symbol:      r.Symbol,
			Description: r.Description,
			Type:        r.Type,
		})
	}
	return out, nil
}

// get fetches path with params, consulting the cache first. The cache key is
// the URL without the token so credentials never land in Redis.
func (p *Finnhub) get(ctx context.Context, path string, params url.Values, ttl time.Duration, out any) error {
	if p.APIKey == "" {
		return ErrMissingAPIKey
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("finnhub: invalid base url: %w", err)
	}
	u.Path = path
	u.RawQuery = params.Encode()
	cacheKey := "finnhub:" + u.Path + "?" + u.RawQuery

	endpoint := strings.TrimPrefix(path, "/api/v1/")
	if p.Cache != nil {
		if raw, ok, err := p.Cache.Get(ctx, cacheKey); err == nil && ok {
			metrics.RecordCacheLookup(endpoint, "hit")
			return json.Unmarshal(raw, out)
		}
		metrics.RecordCacheLookup(endpoint, "miss")
	}

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	q := u.Query()
	q.Set("token", p.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("finnhub: create request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}

	var raw json.RawMessage
	if err := client.DoJSON(ctx, req, &raw); err != nil {
		metrics.RecordProviderCall(endpoint, "error")
		return fmt.Errorf("finnhub: %s: %w", endpoint, err)
	}
	metrics.RecordProviderCall(endpoint, "ok")

	if p.Cache != nil && ttl > 0 {
		// Best effort; a failed write only costs a future upstream call.
		_ = p.Cache.Set(ctx, cacheKey, raw, ttl)
	}
	return json.Unmarshal(raw, out)
}
