package ledger

import (
	"github.com/corfou/ledger/date"
)

// HoldingSummary is one asset line of a current summary.
type HoldingSummary struct {
	Asset     string
	Quantity  Quantity
	Price     Money
	Value     Money
	Percent   Percent
	CostBasis Money
	Gain      Money // unrealized, market value minus cost basis
	Unpriced  bool
}

// Summary is the as-of-now view of one account: positions, values,
// allocation and cost basis.
type Summary struct {
	Account  string
	On       date.Date
	Cash     Money
	Holdings []HoldingSummary
	Total    Money
	Unpriced []string
}

// costBasis folds the asset's buy/sell postings into an average-cost basis
// of the position still held at 'on'.
func costBasis(j *Journal, account, asset string, on date.Date) Money {
	var totalQty Quantity
	var totalCost Money
	for p := range j.AllPostings(account) {
		if p.On.After(on) {
			break
		}
		if p.Class != Asset || p.Asset != asset {
			continue
		}
		if Effect(p.Class, p.Side) > 0 {
			totalQty = totalQty.Add(p.Quantity)
			totalCost = totalCost.Add(p.Amount)
		} else {
			if !totalQty.IsZero() {
				costOfSale := totalCost.Mul(p.Quantity).Div(totalQty)
				totalCost = totalCost.Sub(costOfSale)
			}
			totalQty = totalQty.Sub(p.Quantity)
		}
	}
	return totalCost
}

// CurrentSummary computes the account's positions, market values,
// allocation percentages and cost basis as of 'on'.
func CurrentSummary(j *Journal, ts *TimelineSet, res *PriceResolver, account string, on date.Date, opts ValuationOptions) *Summary {
	s := &Summary{Account: account, On: on}
	s.Cash = M(ts.Cash(opts.DustValue.Currency()).ValueAsOf(on).Decimal(), opts.DustValue.Currency())

	alloc := AllocationAt(ts, res, on, opts)
	s.Total = alloc.Total
	s.Unpriced = alloc.Unpriced

	for _, v := range alloc.Values {
		if v.Asset == CashAsset {
			continue
		}
		basis := costBasis(j, account, v.Asset, on)
		s.Holdings = append(s.Holdings, HoldingSummary{
			Asset:     v.Asset,
			Quantity:  v.Quantity,
			Price:     v.Price,
			Value:     v.Value,
			Percent:   v.Percent,
			CostBasis: basis,
			Gain:      v.Value.Sub(basis),
		})
	}
	for _, asset := range alloc.Unpriced {
		s.Holdings = append(s.Holdings, HoldingSummary{
			Asset:     asset,
			Quantity:  ts.Timeline(asset).ValueAsOf(on),
			CostBasis: costBasis(j, account, asset, on),
			Unpriced:  true,
		})
	}
	return s
}
