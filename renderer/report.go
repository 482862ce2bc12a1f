package renderer

import (
	"github.com/corfou/ledger"
	"github.com/corfou/ledger/date"
)

// TransactionsMarkdown renders a transaction listing to markdown.
func TransactionsMarkdown(txs []ledger.Transaction) string {
	return renderTemplate("transactions", "transactions.md", nil, txs)
}

// timelineRow is one rendered point of a position timeline.
type timelineRow struct {
	On       date.Date
	Quantity ledger.Quantity
}

type timelineReport struct {
	Account string
	Asset   string
	Rows    []timelineRow
}

// TimelineMarkdown renders a position timeline to markdown.
func TimelineMarkdown(account, asset string, t *ledger.Timeline) string {
	report := timelineReport{Account: account, Asset: asset}
	for on, q := range t.Points() {
		report.Rows = append(report.Rows, timelineRow{On: on, Quantity: q})
	}
	return renderTemplate("timeline", "timeline.md", nil, report)
}

type aggregateReport struct {
	Account string
	Buckets []ledger.Bucket
}

// AggregateMarkdown renders aggregation buckets to markdown.
func AggregateMarkdown(account string, buckets []ledger.Bucket) string {
	return renderTemplate("aggregate", "aggregate.md", nil, aggregateReport{Account: account, Buckets: buckets})
}
