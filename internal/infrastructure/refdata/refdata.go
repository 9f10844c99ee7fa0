package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"marketdata-service/internal/application"
	"marketdata-service/internal/domain"
)

//go:embed data/*.json
var embedded embed.FS

// file is the on-disk dataset shape. Optional blocks are per market:
// categories and cryptoStats for crypto, sectors for equity markets,
// cryptoOverview for the general overview.
type file struct {
	Records        []domain.ReferenceRecord     `json:"records"`
	Categories     map[string]string            `json:"categories,omitempty"`
	Sectors        map[string]string            `json:"sectors,omitempty"`
	Indices        map[string]domain.IndexQuote `json:"indices,omitempty"`
	CryptoOverview *domain.CryptoOverview       `json:"cryptoOverview,omitempty"`
	CryptoStats    *domain.CryptoStats          `json:"cryptoStats,omitempty"`
	Status         domain.MarketStatusInfo      `json:"status"`
}

// Dataset is one market's reference data, loaded once at startup.
type Dataset struct {
	records  []domain.ReferenceRecord
	bySymbol map[string]domain.ReferenceRecord

	categories map[string]string
	sectors    map[string]string
	indices    map[string]domain.IndexQuote
	overview   *domain.CryptoOverview
	stats      *domain.CryptoStats
	status     domain.MarketStatusInfo
}

var _ application.ReferenceSet = (*Dataset)(nil)

// Load reads the dataset for a market. With a non-empty dir, <market>.json is
// read from there instead of the embedded copy, so operators can swap the
// fallback universe without a rebuild.
func Load(market domain.Market, dir string) (*Dataset, error) {
	name := string(market) + ".json"

	var raw []byte
	var err error
	if dir != "" {
		raw, err = os.ReadFile(filepath.Join(dir, name))
	} else {
		raw, err = embedded.ReadFile("data/" + name)
	}
	if err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", name, err)
	}

	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("refdata: parse %s: %w", name, err)
	}
	if len(f.Records) == 0 {
		return nil, fmt.Errorf("refdata: %s has no records", name)
	}

	ds := &Dataset{
		records:    f.Records,
		bySymbol:   make(map[string]domain.ReferenceRecord, len(f.Records)),
		categories: f.Categories,
		sectors:    f.Sectors,
		indices:    f.Indices,
		overview:   f.CryptoOverview,
		stats:      f.CryptoStats,
		status:     f.Status,
	}
	for _, rec := range f.Records {
		ds.bySymbol[rec.Symbol] = rec
	}
	return ds, nil
}

func (d *Dataset) Lookup(symbol string) (domain.ReferenceRecord, bool) {
	rec, ok := d.bySymbol[symbol]
	return rec, ok
}

// All returns the records in dataset order.
func (d *Dataset) All() []domain.ReferenceRecord {
	out := make([]domain.ReferenceRecord, len(d.records))
	copy(out, d.records)
	return out
}

func (d *Dataset) Size() int { return len(d.records) }

func (d *Dataset) Indices() map[string]domain.IndexQuote { return d.indices }

func (d *Dataset) CryptoOverview() (domain.CryptoOverview, bool) {
	if d.overview == nil {
		return domain.CryptoOverview{}, false
	}
	return *d.overview, true
}

func (d *Dataset) CryptoStats() (domain.CryptoStats, bool) {
	if d.stats == nil {
		return domain.CryptoStats{}, false
	}
	return *d.stats, true
}

func (d *Dataset) Status() domain.MarketStatusInfo { return d.status }

// Categories maps symbols to category labels for crypto profiles.
func (d *Dataset) Categories() map[string]string { return d.categories }

// Sectors maps provider industry names to display sectors for equity profiles.
func (d *Dataset) Sectors() map[string]string { return d.sectors }
