package domain

import (
	"regexp"
	"strings"
)

// Market identifies one of the served symbol universes.
type Market string

const (
	MarketGeneral  Market = "general"
	MarketEquities Market = "us"
	MarketCrypto   Market = "crypto"
)

// Quorums holds the minimum acceptable item counts per request mode.
type Quorums struct {
	Default int
	Search  int
}

// MarketProfile parametrizes the aggregation pipeline for one endpoint:
// symbol universe, provider-key format, search filtering and payload naming.
// One pipeline, three profiles, instead of three near-identical handlers.
type MarketProfile struct {
	Market    Market
	Watchlist []string
	Quorums   Quorums

	// MaxSearchResults caps the descriptors produced from one search call.
	MaxSearchResults int

	// FetchesCompanyProfile enables the extra profile round trip in
	// watchlist mode.
	FetchesCompanyProfile bool

	// ItemsKey names the quote array in the response payload.
	ItemsKey string

	// DefaultCategory labels quotes for which neither the provider nor the
	// reference dataset supplies one.
	DefaultCategory string

	ProviderKey     func(symbol string) string
	ProfileSymbol   func(symbol string) string
	FilterCandidate func(c Candidate) bool
	CandidateSymbol func(c Candidate) string
	CandidateKey    func(c Candidate) string
	FallbackName    func(symbol string) string

	// CategoryFor resolves a category from the symbol and the provider's
	// industry label; empty means unknown.
	CategoryFor func(symbol, industry string) string
}

// Descriptor builds a descriptor for an explicit or watchlist symbol.
func (p *MarketProfile) Descriptor(symbol, displayName string) SymbolDescriptor {
	if displayName == "" {
		displayName = p.FallbackName(symbol)
	}
	return SymbolDescriptor{
		Symbol:      symbol,
		DisplayName: displayName,
		ProviderKey: p.ProviderKey(symbol),
	}
}

var usSymbolRe = regexp.MustCompile(`^[A-Z]{1,5}$`)

var leveragedSuffixes = []string{"UP", "DOWN", "BULL", "BEAR"}

func hasLeveragedSuffix(base string) bool {
	for _, s := range leveragedSuffixes {
		if len(base) > len(s) && strings.HasSuffix(base, s) {
			return true
		}
	}
	return false
}

// NewCryptoProfile serves Binance USDT pairs. Search candidates are the raw
// exchange pair listing, so the filter keeps USDT pairs and drops leveraged
// tokens before the substring match.
func NewCryptoProfile(watchlist []string, categories map[string]string, q Quorums) *MarketProfile {
	return &MarketProfile{
		Market:           MarketCrypto,
		Watchlist:        watchlist,
		Quorums:          q,
		MaxSearchResults: 25,
		ItemsKey:         "cryptos",
		DefaultCategory:  "Digital Asset",
		ProviderKey: func(symbol string) string {
			return "BINANCE:" + symbol + "USDT"
		},
		ProfileSymbol: func(symbol string) string { return symbol },
		FilterCandidate: func(c Candidate) bool {
			if !strings.HasSuffix(c.Symbol, "USDT") {
				return false
			}
			return !hasLeveragedSuffix(strings.TrimSuffix(c.Symbol, "USDT"))
		},
		CandidateSymbol: func(c Candidate) string {
			return strings.TrimSuffix(c.Symbol, "USDT")
		},
		CandidateKey: func(c Candidate) string {
			return "BINANCE:" + c.Symbol
		},
		FallbackName: func(symbol string) string { return symbol + " Token" },
		CategoryFor: func(symbol, _ string) string {
			return categories[symbol]
		},
	}
}

// NewEquitiesProfile serves US-listed common stock. Sector names from the
// provider's industry taxonomy are normalized through the supplied map.
func NewEquitiesProfile(watchlist []string, sectors map[string]string, q Quorums) *MarketProfile {
	return &MarketProfile{
		Market:                MarketEquities,
		Watchlist:             watchlist,
		Quorums:               q,
		MaxSearchResults:      20,
		FetchesCompanyProfile: true,
		ItemsKey:              "stocks",
		DefaultCategory:       "Technology",
		ProviderKey:           func(symbol string) string { return symbol },
		ProfileSymbol:         func(symbol string) string { return symbol },
		FilterCandidate:       usCommonStock,
		CandidateSymbol:       func(c Candidate) string { return c.Symbol },
		CandidateKey:          func(c Candidate) string { return c.Symbol },
		FallbackName:          func(symbol string) string { return symbol },
		CategoryFor:           sectorMapper(sectors),
	}
}

// NewGeneralProfile serves the mixed default watchlist (US plus NSE-suffixed
// symbols). Company-profile lookups drop the ".NS" suffix, matching the
// provider's profile endpoint conventions.
func NewGeneralProfile(watchlist []string, sectors map[string]string, q Quorums) *MarketProfile {
	return &MarketProfile{
		Market:                MarketGeneral,
		Watchlist:             watchlist,
		Quorums:               q,
		MaxSearchResults:      20,
		FetchesCompanyProfile: true,
		ItemsKey:              "watchlistStocks",
		DefaultCategory:       "Technology",
		ProviderKey:           func(symbol string) string { return symbol },
		ProfileSymbol: func(symbol string) string {
			return strings.TrimSuffix(symbol, ".NS")
		},
		FilterCandidate: usCommonStock,
		CandidateSymbol: func(c Candidate) string { return c.Symbol },
		CandidateKey:    func(c Candidate) string { return c.Symbol },
		FallbackName:    func(symbol string) string { return symbol },
		CategoryFor:     sectorMapper(sectors),
	}
}

func usCommonStock(c Candidate) bool {
	if c.Type != "Common Stock" {
		return false
	}
	if strings.Contains(c.Symbol, ":") {
		return false
	}
	return usSymbolRe.MatchString(c.Symbol) || strings.Contains(c.Symbol, ".")
}

func sectorMapper(sectors map[string]string) func(string, string) string {
	return func(_, industry string) string {
		if v, ok := sectors[industry]; ok {
			return v
		}
		return industry
	}
}
