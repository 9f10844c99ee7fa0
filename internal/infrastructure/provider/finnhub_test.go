package provider_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"marketdata-service/internal/domain"
	"marketdata-service/internal/infrastructure/httpx"
	"marketdata-service/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func httpClient(fn func(*http.Request) (string, int)) *httpx.Client {
	return &httpx.Client{HTTP: &http.Client{
		Timeout: 2 * time.Second,
		Transport: roundTripFunc(func(r *http.Request) *http.Response {
			body, code := fn(r)
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(http.Header),
				Request:    r,
			}
		}),
	}}
}

func fixedBody(body string, code int) *httpx.Client {
	return httpClient(func(*http.Request) (string, int) { return body, code })
}

func TestQuote_HappyPath(t *testing.T) {
	var gotURL string
	p := &provider.Finnhub{
		BaseURL: "https://finnhub.io",
		APIKey:  "test-key",
		Client: httpClient(func(r *http.Request) (string, int) {
			gotURL = r.URL.String()
			return `{"c": 178.25, "d": 2.15, "dp": 1.22, "h": 179.5, "l": 176.1, "o": 176.8, "pc": 176.1}`, 200
		}),
	}

	q, err := p.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.InDelta(t, 178.25, q.Price, 0.0001)
	require.InDelta(t, 2.15, q.Change, 0.0001)
	require.InDelta(t, 1.22, q.ChangePercent, 0.0001)
	require.Contains(t, gotURL, "/api/v1/quote")
	require.Contains(t, gotURL, "symbol=AAPL")
	require.Contains(t, gotURL, "token=test-key")
}

func TestQuote_MissingAPIKey(t *testing.T) {
	p := &provider.Finnhub{BaseURL: "https://finnhub.io"}
	_, err := p.Quote(context.Background(), "AAPL")
	require.ErrorIs(t, err, provider.ErrMissingAPIKey)
}

func TestQuote_Upstream403(t *testing.T) {
	p := &provider.Finnhub{
		BaseURL: "https://finnhub.io",
		APIKey:  "expired",
		Client:  fixedBody(`{"error":"Invalid API key"}`, 403),
	}
	_, err := p.Quote(context.Background(), "AAPL")
	require.Error(t, err)
}

func TestCompanyProfile(t *testing.T) {
	body := `{"name":"Apple Inc","marketCapitalization":2800000,"shareOutstanding":15500,"finnhubIndustry":"Technology","exchange":"NASDAQ","country":"US","currency":"USD"}`
	p := &provider.Finnhub{
		BaseURL: "https://finnhub.io",
		APIKey:  "test-key",
		Client:  fixedBody(body, 200),
	}

	cp, err := p.CompanyProfile(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc", cp.Name)
	require.InDelta(t, 2800000.0, cp.MarketCapMillions, 0.01)
	require.Equal(t, "Technology", cp.Industry)
}

func TestSearch_Equities(t *testing.T) {
	var gotURL string
	body := `{"count":2,"result":[
		{"description":"APPLE INC","displaySymbol":"AAPL","symbol":"AAPL","type":"Common Stock"},
		{"description":"APPLE HOSPITALITY","displaySymbol":"APLE","symbol":"APLE","type":"Common Stock"}]}`
	p := &provider.Finnhub{
		BaseURL: "https://finnhub.io",
		APIKey:  "test-key",
		Client: httpClient(func(r *http.Request) (string, int) {
			gotURL = r.URL.String()
			return body, 200
		}),
	}

	got, err := p.Search(context.Background(), domain.MarketEquities, "apple")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "AAPL", got[0].Symbol)
	require.Equal(t, "Common Stock", got[0].Type)
	require.Contains(t, gotURL, "/api/v1/search")
	require.Contains(t, gotURL, "q=apple")
}

func TestSearch_CryptoListsBinancePairs(t *testing.T) {
	var gotURL string
	body := `[
		{"description":"Binance BTCUSDT","displaySymbol":"BTC/USDT","symbol":"BINANCE:BTCUSDT"},
		{"description":"Binance ETHUSDT","displaySymbol":"ETH/USDT","symbol":"BINANCE:ETHUSDT"}]`
	p := &provider.Finnhub{
		BaseURL: "https://finnhub.io",
		APIKey:  "test-key",
		Client: httpClient(func(r *http.Request) (string, int) {
			gotURL = r.URL.String()
			return body, 200
		}),
	}

	got, err := p.Search(context.Background(), domain.MarketCrypto, "btc")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "BTCUSDT", got[0].Symbol)
	require.Contains(t, gotURL, "/api/v1/crypto/symbol")
	require.Contains(t, gotURL, "exchange=binance")
}

func TestQuote_CachesByURLWithoutToken(t *testing.T) {
	calls := 0
	cache := newMemCache()
	p := &provider.Finnhub{
		BaseURL: "https://finnhub.io",
		APIKey:  "secret-token",
		Client: httpClient(func(*http.Request) (string, int) {
			calls++
			return `{"c": 100.0}`, 200
		}),
		Cache:    cache,
		QuoteTTL: time.Minute,
	}

	ctx := context.Background()
	_, err := p.Quote(ctx, "AAPL")
	require.NoError(t, err)
	_, err = p.Quote(ctx, "AAPL")
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	for key := range cache.entries {
		require.NotContains(t, key, "secret-token")
	}
}

type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	m.entries[key] = val
	return nil
}
