package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"marketdata-service/internal/application"
	"marketdata-service/internal/config"
	"marketdata-service/internal/domain"
	"marketdata-service/internal/infrastructure/httpx"
	"marketdata-service/internal/infrastructure/logx"
	"marketdata-service/internal/infrastructure/provider"
	redisstore "marketdata-service/internal/infrastructure/redis"
	"marketdata-service/internal/infrastructure/refdata"

	"github.com/redis/go-redis/v9"
)

// BuildCache builds the provider response cache based on CACHE_BACKEND
// ("redis" or "none").
func BuildCache(cfg config.Config) (redisstore.Cache, func(), error) {
	if cfg.CacheBackend != "redis" {
		return redisstore.NoopCache{}, func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cleanup := func() { _ = rdb.Close() }
	return redisstore.New(rdb), cleanup, nil
}

// BuildProvider returns the quote source selected by PROVIDER ("finnhub" or
// "fake"). A missing API key is not an error here: every call then fails fast
// and the pipeline serves reference data.
func BuildProvider(cfg config.Config, cache redisstore.Cache) (application.QuoteProvider, application.SymbolSearcher) {
	if cfg.Provider == "fake" {
		f := provider.NewFake(123.45)
		return f, f
	}
	fh := &provider.Finnhub{
		BaseURL: cfg.FinnhubBaseURL,
		APIKey:  cfg.FinnhubAPIKey,
		Client: &httpx.Client{HTTP: &http.Client{
			Timeout: cfg.SearchFetchTimeout + time.Second,
		}},
		Limiter:   rate.NewLimiter(rate.Limit(cfg.ProviderRPS), cfg.ProviderBurst),
		Cache:     cache,
		QuoteTTL:  cfg.QuoteCacheTTL,
		SearchTTL: cfg.SearchCacheTTL,
	}
	return fh, fh
}

// BuildServices loads the reference datasets and assembles one market
// service per profile, all sharing the provider.
func BuildServices(cfg config.Config, quotes application.QuoteProvider, search application.SymbolSearcher) ([]*application.MarketService, error) {
	log := logx.L()
	quorums := domain.Quorums{Default: cfg.QuorumDefault, Search: cfg.QuorumSearch}
	timeouts := application.FetchTimeouts{
		Default: cfg.FetchTimeout,
		Search:  cfg.SearchFetchTimeout,
	}
	synth := application.Synthesizer{Seed: cfg.SynthSeed}

	general, err := refdata.Load(domain.MarketGeneral, cfg.RefDataDir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	us, err := refdata.Load(domain.MarketEquities, cfg.RefDataDir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	crypto, err := refdata.Load(domain.MarketCrypto, cfg.RefDataDir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	build := func(p *domain.MarketProfile, refs application.ReferenceSet) *application.MarketService {
		return application.NewMarketService(p, quotes, search, refs, timeouts, log,
			application.WithSynthesizer(synth))
	}
	return []*application.MarketService{
		build(domain.NewGeneralProfile(cfg.WatchlistGeneral, general.Sectors(), quorums), general),
		build(domain.NewEquitiesProfile(cfg.WatchlistEquities, us.Sectors(), quorums), us),
		build(domain.NewCryptoProfile(cfg.WatchlistCrypto, crypto.Categories(), quorums), crypto),
	}, nil
}
