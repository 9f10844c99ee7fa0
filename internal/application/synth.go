package application

import (
	"hash/fnv"
	"math"
	"time"

	"marketdata-service/internal/domain"
)

// Synthesizer turns reference records into synthetic quotes with a small,
// deterministic perturbation. The factor depends only on (seed, key, day), so
// repeated calls within a day produce identical output and tests can assert
// exact values.
type Synthesizer struct {
	Seed uint64
}

// factor returns a value in (-spread, +spread), stable for (key, day, salt).
func (s Synthesizer) factor(key string, at time.Time, spread float64, salt uint64) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	_, _ = h.Write([]byte(at.UTC().Format("2006-01-02")))
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(s.Seed >> (8 * i))
		buf[8+i] = byte(salt >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	unit := float64(h.Sum64()%100000)/100000.0*2 - 1
	return unit * spread
}

// QuoteFrom synthesizes a fallback quote from a reference record.
// Perturbation stays within ±5% on price fields and ±10% on volume, so a
// positive reference price always yields a positive synthetic price.
func (s Synthesizer) QuoteFrom(rec domain.ReferenceRecord, at time.Time) domain.Quote {
	pv := s.factor(rec.Symbol, at, 0.05, 1)
	vv := s.factor(rec.Symbol, at, 0.10, 2)

	q := domain.Quote{
		Symbol:        rec.Symbol,
		DisplayName:   rec.Name,
		Price:         rec.Price * (1 + pv),
		Change:        rec.Change * (1 + pv),
		ChangePercent: rec.ChangePercent * (1 + pv),
		Volume:        rec.Volume * (1 + vv),
		Category:      rec.Category,
		Timestamp:     at,
		Provenance:    domain.ProvenanceSynthetic,
	}
	if rec.MarketCap > 0 {
		mc := rec.MarketCap
		q.MarketCap = &mc
	}
	if rec.Supply > 0 {
		sp := rec.Supply
		q.Supply = &sp
	}
	if rec.Rank > 0 {
		rank := rec.Rank
		q.Rank = &rank
	}
	return q
}

// StatsFrom perturbs the static crypto overview the same deterministic way.
func (s Synthesizer) StatsFrom(st domain.CryptoStats, at time.Time) domain.CryptoStats {
	out := st
	out.TotalMarketCap = st.TotalMarketCap * (1 + s.factor("marketcap", at, 0.05, 3))
	out.TotalVolume = st.TotalVolume * (1 + s.factor("volume", at, 0.10, 4))
	out.BTCDominance = st.BTCDominance * (1 + s.factor("dominance", at, 0.025, 5))
	out.FearGreedIndex = math.Max(1, math.Min(100, st.FearGreedIndex+s.factor("feargreed", at, 10, 6)))
	return out
}
