package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	Port     string
	// Provider
	Provider       string
	FinnhubBaseURL string
	FinnhubAPIKey  string
	ProviderRPS    int
	ProviderBurst  int
	// Pipeline
	FetchTimeout       time.Duration
	SearchFetchTimeout time.Duration
	QuorumDefault      int
	QuorumSearch       int
	SynthSeed          uint64
	// Watchlists (caller-independent default symbol sets)
	WatchlistGeneral  []string
	WatchlistEquities []string
	WatchlistCrypto   []string
	// Reference data
	RefDataDir string
	// Cache (transport-layer revalidation horizons)
	CacheBackend   string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	QuoteCacheTTL  time.Duration
	SearchCacheTTL time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func durMS(key string, defMS int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, strconv.Itoa(defMS)), defMS)) * time.Millisecond
}

func csvDef(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

var (
	defaultWatchlistGeneral = []string{
		"AAPL", "GOOGL", "MSFT", "TSLA", "NVDA",
		"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS",
	}
	defaultWatchlistEquities = []string{
		"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA",
		"NVDA", "META", "JPM", "UNH", "JNJ",
	}
	defaultWatchlistCrypto = []string{
		"BTC", "ETH", "BNB", "SOL", "XRP",
		"ADA", "AVAX", "DOT", "MATIC", "LTC",
	}
)

// Load reads environment variables and applies defaults.
func Load() Config {
	seed, _ := strconv.ParseUint(getEnv("SYNTH_SEED", "0"), 10, 64)
	return Config{
		Env:                getEnv("ENV", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnv("PORT", "8080"),
		Provider:           getEnv("PROVIDER", "finnhub"),
		FinnhubBaseURL:     getEnv("FINNHUB_BASE_URL", "https://finnhub.io"),
		FinnhubAPIKey:      getEnv("FINNHUB_API_KEY", ""),
		ProviderRPS:        atoiDef(getEnv("PROVIDER_RPS", "25"), 25),
		ProviderBurst:      atoiDef(getEnv("PROVIDER_BURST", "25"), 25),
		FetchTimeout:       durMS("FETCH_TIMEOUT_MS", 5000),
		SearchFetchTimeout: durMS("SEARCH_FETCH_TIMEOUT_MS", 8000),
		QuorumDefault:      atoiDef(getEnv("QUORUM_DEFAULT", "5"), 5),
		QuorumSearch:       atoiDef(getEnv("QUORUM_SEARCH", "1"), 1),
		SynthSeed:          seed,
		WatchlistGeneral:   csvDef("WATCHLIST_GENERAL", defaultWatchlistGeneral),
		WatchlistEquities:  csvDef("WATCHLIST_US", defaultWatchlistEquities),
		WatchlistCrypto:    csvDef("WATCHLIST_CRYPTO", defaultWatchlistCrypto),
		RefDataDir:         getEnv("REFDATA_DIR", ""),
		CacheBackend:       getEnv("CACHE_BACKEND", "none"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            atoiDef(getEnv("REDIS_DB", "0"), 0),
		QuoteCacheTTL:      durMS("QUOTE_CACHE_TTL_MS", 300000),
		SearchCacheTTL:     durMS("SEARCH_CACHE_TTL_MS", 3600000),
	}
}
