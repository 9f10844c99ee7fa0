package domain

import "strings"

// SymbolDescriptor identifies one requested instrument before any provider call.
// Symbol is the canonical uppercase ticker; ProviderKey is the provider-specific
// identifier (possibly exchange-qualified, e.g. "BINANCE:BTCUSDT").
type SymbolDescriptor struct {
	Symbol      string
	DisplayName string
	ProviderKey string
}

// Candidate is one raw row returned by the provider's symbol-search endpoint,
// before any filtering.
type Candidate struct {
	Symbol      string
	Description string
	Type        string
}

// NormalizeSymbols uppercases, trims and deduplicates symbols preserving
// the order of first occurrence.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
