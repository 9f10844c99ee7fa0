package domain

// ReferenceRecord is one entry of the static fallback dataset: plausible
// figures for a known symbol, used to synthesize a Quote when live data is
// unavailable. Read-only at runtime.
type ReferenceRecord struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	Category      string  `json:"category"`
	Supply        float64 `json:"supply,omitempty"`
	Rank          int     `json:"rank"`
}

// IndexQuote is a static market index snapshot shown alongside quote lists.
type IndexQuote struct {
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// CryptoOverview is the aggregate crypto block of the general market overview.
type CryptoOverview struct {
	TotalMarketCap float64 `json:"totalMarketCap"`
	Change         float64 `json:"change"`
	ChangePercent  float64 `json:"changePercent"`
}

// CryptoStats is the crypto market overview block.
type CryptoStats struct {
	TotalMarketCap       float64 `json:"totalMarketCap"`
	TotalMarketCapChange float64 `json:"totalMarketCapChange"`
	TotalVolume          float64 `json:"totalVolume"`
	VolumeChange         float64 `json:"volumeChange"`
	BTCDominance         float64 `json:"btcDominance"`
	BTCDominanceChange   float64 `json:"btcDominanceChange"`
	FearGreedIndex       float64 `json:"fearGreedIndex"`
	FearGreedLabel       string  `json:"fearGreedLabel"`
}

// MarketStatusInfo describes trading-session state for an endpoint's payload.
type MarketStatusInfo struct {
	IsOpen         bool   `json:"isOpen"`
	TradingType    string `json:"tradingType,omitempty"`
	NextClose      string `json:"nextClose,omitempty"`
	TimeUntilClose string `json:"timeUntilClose,omitempty"`
	LastUpdated    string `json:"lastUpdated,omitempty"`
}
