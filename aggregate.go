package ledger

import (
	"slices"
	"strings"
	"time"

	"github.com/corfou/ledger/date"
)

// Mode selects the aggregation output shape.
type Mode int

const (
	// Flow yields the per-bucket sum.
	Flow Mode = iota
	// Cumulative yields the running total per group across buckets,
	// ascending by period.
	Cumulative
)

// Dimension maps a posting to its grouping key.
type Dimension func(Posting) string

// Grouping dimensions.
var (
	ByCategory    Dimension = func(p Posting) string { return p.Category }
	ByType        Dimension = func(p Posting) string { return p.Type }
	ByTopCategory Dimension = Posting.TopCategory
	ByAsset       Dimension = func(p Posting) string { return p.Asset }
)

// AggregateOptions configures bucketing.
type AggregateOptions struct {
	Granularity date.Period
	// FirstWeekday is the first day of the week for weekly buckets.
	// The zero value is time.Sunday; NewAggregateOptions defaults to Monday.
	FirstWeekday time.Weekday
	GroupBy      Dimension
	Mode         Mode
}

// NewAggregateOptions returns options with the conventional defaults:
// monthly flow buckets grouped by category, weeks starting on Monday.
func NewAggregateOptions() AggregateOptions {
	return AggregateOptions{
		Granularity:  date.Monthly,
		FirstWeekday: time.Monday,
		GroupBy:      ByCategory,
		Mode:         Flow,
	}
}

// BucketStart returns the start of the bucket containing d.
// Weekly buckets subtract (weekday - FirstWeekday) mod 7 days; monthly
// buckets truncate to the first of the month.
func (o AggregateOptions) BucketStart(d date.Date) date.Date {
	if o.Granularity == date.Weekly {
		return d.StartOfWeek(o.FirstWeekday)
	}
	return d.StartOf(o.Granularity)
}

// Bucket is one (period start, group key, currency) aggregate. The
// currency is carried by Amount.
type Bucket struct {
	Start  date.Date
	Group  string
	Amount Money
}

// Aggregate buckets the account's posting flows within the range by
// calendar period and grouping dimension.
//
// In Cumulative mode buckets are sorted ascending by date before folding,
// regardless of input order; nondeterministic ordering here is a
// correctness bug class this guards against explicitly.
func Aggregate(j *Journal, account string, r date.Range, opts AggregateOptions) []Bucket {
	groupBy := opts.GroupBy
	if groupBy == nil {
		groupBy = ByCategory
	}

	// Currency is part of the bucket key: amounts in different currencies
	// never sum, each currency gets its own bucket.
	type key struct {
		start    date.Date
		group    string
		currency string
	}
	sums := make(map[key]Money)
	for p := range j.Postings(account, r) {
		k := key{start: opts.BucketStart(p.On), group: groupBy(p), currency: p.Amount.Currency()}
		sums[k] = sums[k].Add(p.SignedAmount())
	}

	buckets := make([]Bucket, 0, len(sums))
	for k, amount := range sums {
		buckets = append(buckets, Bucket{Start: k.start, Group: k.group, Amount: amount})
	}
	slices.SortFunc(buckets, func(a, b Bucket) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		if c := strings.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return strings.Compare(a.Amount.Currency(), b.Amount.Currency())
	})

	if opts.Mode == Cumulative {
		type series struct {
			group    string
			currency string
		}
		running := make(map[series]Money)
		for i, b := range buckets {
			s := series{group: b.Group, currency: b.Amount.Currency()}
			running[s] = running[s].Add(b.Amount)
			buckets[i].Amount = running[s]
		}
	}
	return buckets
}
