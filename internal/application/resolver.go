package application

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"marketdata-service/internal/domain"
)

// Mode selects the request shape: the fixed watchlist or a caller-driven
// search (free text or explicit symbols).
type Mode int

const (
	ModeDefault Mode = iota
	ModeSearch
)

// ResolveInput carries the caller's symbol selection. Query wins over
// Symbols; both empty means watchlist mode.
type ResolveInput struct {
	Query   string
	Symbols []string
}

// Resolver turns a request into an ordered list of symbol descriptors,
// enriched with display names from the reference dataset before any
// provider call.
type Resolver struct {
	searcher SymbolSearcher
	refs     ReferenceSet
	log      *zap.Logger
}

func NewResolver(searcher SymbolSearcher, refs ReferenceSet, log *zap.Logger) *Resolver {
	return &Resolver{searcher: searcher, refs: refs, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, p *domain.MarketProfile, in ResolveInput) ([]domain.SymbolDescriptor, Mode) {
	switch {
	case strings.TrimSpace(in.Query) != "":
		return r.search(ctx, p, strings.TrimSpace(in.Query)), ModeSearch
	case len(in.Symbols) > 0:
		return r.explicit(p, in.Symbols), ModeSearch
	default:
		return r.explicit(p, p.Watchlist), ModeDefault
	}
}

func (r *Resolver) explicit(p *domain.MarketProfile, symbols []string) []domain.SymbolDescriptor {
	normalized := domain.NormalizeSymbols(symbols)
	out := make([]domain.SymbolDescriptor, 0, len(normalized))
	for _, sym := range normalized {
		out = append(out, p.Descriptor(sym, r.displayName(sym)))
	}
	return out
}

// search performs one symbol-search call and applies the filter chain:
// profile predicate, case-insensitive substring match, result cap. A search
// transport failure degrades to zero candidates, which the caller resolves
// through the quorum path; it is never an error here. An empty filter result
// for a reachable search endpoint yields a single best-effort exact-symbol
// guess, which is allowed to fail downstream.
func (r *Resolver) search(ctx context.Context, p *domain.MarketProfile, query string) []domain.SymbolDescriptor {
	candidates, err := r.searcher.Search(ctx, p.Market, query)
	if err != nil {
		r.log.Warn("symbol search unavailable",
			zap.String("market", string(p.Market)),
			zap.String("query", query),
			zap.Error(err))
		return nil
	}

	needle := strings.ToLower(query)
	out := make([]domain.SymbolDescriptor, 0, p.MaxSearchResults)
	for _, c := range candidates {
		if len(out) == p.MaxSearchResults {
			break
		}
		if !p.FilterCandidate(c) {
			continue
		}
		if !strings.Contains(strings.ToLower(c.Symbol), needle) &&
			!strings.Contains(strings.ToLower(c.Description), needle) {
			continue
		}
		sym := strings.ToUpper(p.CandidateSymbol(c))
		name := c.Description
		if name == "" {
			name = r.displayName(sym)
		}
		if name == "" {
			name = p.FallbackName(sym)
		}
		out = append(out, domain.SymbolDescriptor{
			Symbol:      sym,
			DisplayName: name,
			ProviderKey: p.CandidateKey(c),
		})
	}

	if len(out) == 0 {
		guess := strings.ToUpper(query)
		return []domain.SymbolDescriptor{p.Descriptor(guess, r.displayName(guess))}
	}
	return out
}

func (r *Resolver) displayName(symbol string) string {
	if rec, ok := r.refs.Lookup(symbol); ok {
		return rec.Name
	}
	return ""
}
