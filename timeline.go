package ledger

import (
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/corfou/ledger/date"
)

// Timeline is the derived, stepwise-constant curve of one (account, asset)
// cumulative position over time. For a cash timeline the value is the
// balance in major units of one currency; for an asset it is the signed
// quantity held.
//
// A timeline is a view: it is rebuilt from the journal on demand and never
// cached authoritatively.
type Timeline struct {
	Account string
	Asset   string // empty for cash timelines
	// Currency is set on cash timelines; cash balances never blend
	// currencies, each currency folds into its own curve.
	Currency string
	hist     date.History[Quantity]
}

// ValueAsOf returns the cumulative value at the latest point at or before
// 'on', or zero before the first posting.
func (t *Timeline) ValueAsOf(on date.Date) Quantity {
	v, ok := t.hist.ValueAsOf(on)
	if !ok {
		return Q(0)
	}
	return v
}

// Len returns the number of steps in the timeline.
func (t *Timeline) Len() int { return t.hist.Len() }

// Points returns an iterator over the (date, cumulative value) steps in
// chronological order.
func (t *Timeline) Points() iter.Seq2[date.Date, Quantity] { return t.hist.Values() }

// Latest returns the date and value of the last step, or zero values for an
// empty timeline.
func (t *Timeline) Latest() (date.Date, Quantity) { return t.hist.Latest() }

// buildPositionTimeline folds the account's postings for one asset in
// (date, seq) order into a cumulative quantity curve. The fold direction
// comes from the single (class × side) sign table, never from asset symbol
// comparisons.
func buildPositionTimeline(j *Journal, account, asset string) *Timeline {
	t := &Timeline{Account: account, Asset: asset}
	acc := Q(0)
	for p := range j.AllPostings(account) {
		if p.Class != Asset || p.Asset != asset {
			continue
		}
		acc = acc.Add(p.SignedQuantity())
		// Postings arrive in (date, seq) order; appending the running
		// total overwrites earlier steps on the same date, leaving the
		// end-of-day value.
		t.hist.Append(p.On, acc)
	}
	return t
}

// buildCashTimeline folds the account's cash postings of one currency into
// a cumulative balance curve.
func buildCashTimeline(j *Journal, account, currency string) *Timeline {
	t := &Timeline{Account: account, Currency: currency}
	acc := Q(0)
	for p := range j.AllPostings(account) {
		if p.Class != Cash || p.Amount.Currency() != currency {
			continue
		}
		acc = acc.Add(Q(p.SignedAmount().Amount()))
		t.hist.Append(p.On, acc)
	}
	return t
}

// TimelineSet is an arena of timelines for one account, built once per
// request and reused by every downstream query. It replaces the naive
// filter-and-sort per sample date, which is the dominant cost at scale.
type TimelineSet struct {
	Account   string
	timelines map[string]*Timeline // keyed by asset symbol
	cash      map[string]*Timeline // keyed by currency
}

// Assets returns the sorted asset keys present in the set.
func (ts *TimelineSet) Assets() []string {
	assets := slices.Collect(maps.Keys(ts.timelines))
	slices.Sort(assets)
	return assets
}

// Currencies returns the sorted currencies with a cash timeline in the set.
func (ts *TimelineSet) Currencies() []string {
	currencies := slices.Collect(maps.Keys(ts.cash))
	slices.Sort(currencies)
	return currencies
}

// Timeline returns the position timeline for the given asset. An asset
// never posted yields an empty timeline, valued zero everywhere.
func (ts *TimelineSet) Timeline(asset string) *Timeline {
	if t, ok := ts.timelines[asset]; ok {
		return t
	}
	return &Timeline{Account: ts.Account, Asset: asset}
}

// Cash returns the account's cash balance timeline for one currency. A
// currency never posted yields an empty timeline, valued zero everywhere.
func (ts *TimelineSet) Cash(currency string) *Timeline {
	if t, ok := ts.cash[currency]; ok {
		return t
	}
	return &Timeline{Account: ts.Account, Currency: currency}
}

// BuildTimelines reconstructs every (account, asset) timeline for the
// account, plus one cash timeline per currency posted. Folds for
// independent keys are pure and read-only, so they run in parallel.
func BuildTimelines(j *Journal, account string) *TimelineSet {
	assetSet := make(map[string]struct{})
	currencySet := make(map[string]struct{})
	for p := range j.AllPostings(account) {
		if p.Class == Asset && p.Asset != "" {
			assetSet[p.Asset] = struct{}{}
		}
		if p.Class == Cash {
			currencySet[p.Amount.Currency()] = struct{}{}
		}
	}
	assets := slices.Collect(maps.Keys(assetSet))
	currencies := slices.Collect(maps.Keys(currencySet))

	ts := &TimelineSet{
		Account:   account,
		timelines: make(map[string]*Timeline, len(assets)),
		cash:      make(map[string]*Timeline, len(currencies)),
	}
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, asset := range assets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := buildPositionTimeline(j, account, asset)
			mu.Lock()
			ts.timelines[asset] = t
			mu.Unlock()
		}()
	}
	for _, currency := range currencies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := buildCashTimeline(j, account, currency)
			mu.Lock()
			ts.cash[currency] = t
			mu.Unlock()
		}()
	}
	wg.Wait()
	return ts
}
