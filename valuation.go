package ledger

import (
	"sync"

	"github.com/corfou/ledger/date"
	"github.com/shopspring/decimal"
)

// CashAsset is the symbol under which the cash balance appears in
// allocation results.
const CashAsset = "cash"

// ValuationOptions configures sampling and dust filtering.
type ValuationOptions struct {
	Granularity date.Period
	// DustQuantity is the minimum absolute quantity for a position to be
	// valued at all.
	DustQuantity Quantity
	// DustValue is the minimum absolute market value for a position to
	// enter the total.
	DustValue Money
	// IncludeCash adds the account's cash balance in the valuation
	// currency, priced at 1, to the allocation.
	IncludeCash bool
}

// NewValuationOptions returns the conventional defaults: monthly samples,
// 1e-4 quantity dust, 0.01 value dust, cash included.
func NewValuationOptions(currency string) ValuationOptions {
	return ValuationOptions{
		Granularity:  date.Monthly,
		DustQuantity: Q(decimal.New(1, -4)),
		DustValue:    M(decimal.New(1, -2), currency),
		IncludeCash:  true,
	}
}

// AssetValue is one asset's valuation at a sample date.
type AssetValue struct {
	Asset    string
	Quantity Quantity
	Price    Money
	Value    Money
	Percent  Percent
}

// Valuation is the portfolio valuation and allocation at one sample date.
type Valuation struct {
	On     date.Date
	Values []AssetValue
	Total  Money

	// Unpriced lists assets holding a position with no price point at or
	// before the date. They are excluded from Total rather than counted
	// as zero; reporting them keeps the exclusion visible.
	Unpriced []string

	// Degenerate is true when the total was not positive: no allocation
	// points are produced for such a date.
	Degenerate bool
}

// AllocationAt values every non-dust position of the timeline set at 'on'
// and derives each asset's percentage of the total.
func AllocationAt(ts *TimelineSet, res *PriceResolver, on date.Date, opts ValuationOptions) Valuation {
	v := Valuation{On: on}

	type holding struct {
		asset string
		qty   Quantity
		price Money
	}
	var holdings []holding

	for _, asset := range ts.Assets() {
		qty := ts.Timeline(asset).ValueAsOf(on)
		if !qty.Abs().GreaterThan(opts.DustQuantity) {
			continue
		}
		price, ok := res.PriceAsOf(asset, on)
		if !ok {
			v.Unpriced = append(v.Unpriced, asset)
			continue
		}
		holdings = append(holdings, holding{asset: asset, qty: qty, price: price})
	}
	if opts.IncludeCash {
		balance := ts.Cash(opts.DustValue.Currency()).ValueAsOf(on)
		if balance.Abs().GreaterThan(Q(opts.DustValue.Amount())) {
			holdings = append(holdings, holding{asset: CashAsset, qty: balance, price: M(1, opts.DustValue.Currency())})
		}
	}

	total := M(0, opts.DustValue.Currency())
	values := make([]AssetValue, 0, len(holdings))
	for _, h := range holdings {
		value := h.price.Mul(h.qty)
		if value.Abs().LessThan(opts.DustValue) {
			continue
		}
		values = append(values, AssetValue{Asset: h.asset, Quantity: h.qty, Price: h.price, Value: value})
		total = total.Add(value)
	}
	v.Total = total

	if !total.IsPositive() {
		// A zero or negative total has no meaningful allocation; yield no
		// points instead of dividing by it.
		v.Degenerate = len(values) > 0
		return v
	}
	for i := range values {
		values[i].Percent = Percent(values[i].Value.Ratio(total).Mul(Q(100)).Decimal().InexactFloat64())
	}
	v.Values = values
	return v
}

// AllocationSeries samples the range one granularity period at a time and
// values the portfolio at each sample date. Sample dates are independent,
// so they are valued in parallel.
func AllocationSeries(ts *TimelineSet, res *PriceResolver, r date.Range, opts ValuationOptions) []Valuation {
	var samples []date.Date
	for on := range r.Samples(opts.Granularity) {
		samples = append(samples, on)
	}

	out := make([]Valuation, len(samples))
	var wg sync.WaitGroup
	for i, on := range samples {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = AllocationAt(ts, res, on, opts)
		}()
	}
	wg.Wait()
	return out
}
