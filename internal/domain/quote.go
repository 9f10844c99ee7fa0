package domain

import "time"

// Provenance classifies whether a quote came from a live provider call or was
// synthesized from the reference dataset.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceSynthetic Provenance = "demo"
)

// Quote is one aggregated market quote. A live quote always has Price > 0;
// a non-positive provider price is a fetch failure, never a Quote.
type Quote struct {
	Symbol        string
	DisplayName   string
	Price         float64
	Change        float64
	ChangePercent float64
	Volume        float64
	MarketCap     *float64
	Category      string
	Supply        *float64
	Rank          *int
	Timestamp     time.Time
	Provenance    Provenance
}
