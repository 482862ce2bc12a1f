package ledger

import (
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/corfou/ledger/date"
)

// PricePoint is one observed price for an asset on a date.
type PricePoint struct {
	Asset string
	On    date.Date
	Price Money
}

// PriceStore holds the known price history per asset. It is fed by the
// price ingestion collaborators (file import, market-data feed).
type PriceStore struct {
	mu        sync.RWMutex
	histories map[string]*date.History[Money]
}

// NewPriceStore creates an empty price store.
func NewPriceStore() *PriceStore {
	return &PriceStore{histories: make(map[string]*date.History[Money])}
}

// Add records a price point. An existing point for the same asset and date
// is overwritten: the last data wins.
func (ps *PriceStore) Add(points ...PricePoint) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, p := range points {
		h, ok := ps.histories[p.Asset]
		if !ok {
			h = &date.History[Money]{}
			ps.histories[p.Asset] = h
		}
		h.Append(p.On, p.Price)
	}
}

// Assets returns the sorted list of assets with at least one price point.
func (ps *PriceStore) Assets() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	assets := slices.Collect(maps.Keys(ps.histories))
	slices.Sort(assets)
	return assets
}

// Points returns an iterator over the asset's price points in
// chronological order.
func (ps *PriceStore) Points(asset string) iter.Seq[PricePoint] {
	ps.mu.RLock()
	h, ok := ps.histories[asset]
	ps.mu.RUnlock()
	return func(yield func(PricePoint) bool) {
		if !ok {
			return
		}
		for on, price := range h.Values() {
			if !yield(PricePoint{Asset: asset, On: on, Price: price}) {
				return
			}
		}
	}
}

func (ps *PriceStore) asOf(asset string, on date.Date) (Money, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	h, ok := ps.histories[asset]
	if !ok {
		return Money{}, false
	}
	return h.ValueAsOf(on)
}

// ResolverConfig configures price resolution.
type ResolverConfig struct {
	// Currency is the currency in which cash equivalents are priced.
	Currency string

	// CashEquivalents lists asset symbols that are stable-value
	// instruments, always priced at 1.0 without a lookup (e.g. money
	// market sweep funds). An explicit table, not scattered symbol
	// comparisons.
	CashEquivalents []string
}

// PriceResolver answers strict as-of price queries: the latest point at or
// before the query date, never interpolated.
type PriceResolver struct {
	store *PriceStore
	cur   string
	cash  map[string]struct{}
}

// NewPriceResolver creates a resolver backed by the given store.
func NewPriceResolver(store *PriceStore, cfg ResolverConfig) *PriceResolver {
	cash := make(map[string]struct{}, len(cfg.CashEquivalents))
	for _, sym := range cfg.CashEquivalents {
		cash[sym] = struct{}{}
	}
	return &PriceResolver{store: store, cur: cfg.Currency, cash: cash}
}

// IsCashEquivalent reports whether the asset is configured as a
// stable-value instrument.
func (r *PriceResolver) IsCashEquivalent(asset string) bool {
	_, ok := r.cash[asset]
	return ok
}

// PriceAsOf returns the asset's price as of 'on'.
//
// Cash equivalents resolve to 1.0 without a lookup. Otherwise the latest
// point at or before 'on' is used. When no such point exists, ok is false:
// the asset is unpriced at that date, which is distinct from a price of
// zero. Callers must exclude unpriced positions from totals instead of
// counting them as zero value.
func (r *PriceResolver) PriceAsOf(asset string, on date.Date) (price Money, ok bool) {
	if r.IsCashEquivalent(asset) {
		return M(1, r.cur), true
	}
	return r.store.asOf(asset, on)
}
