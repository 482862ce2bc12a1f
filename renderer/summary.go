package renderer

import (
	"github.com/corfou/ledger"
)

// SummaryMarkdown renders the as-of-now account summary to markdown.
func SummaryMarkdown(s *ledger.Summary) string {
	return renderTemplate("summary", "summary.md", nil, s)
}

// AllocationMarkdown renders a sampled allocation series to markdown.
func AllocationMarkdown(series []ledger.Valuation) string {
	return renderTemplate("allocation", "allocation.md", nil, series)
}

// SessionMarkdown renders a reconciliation session report to markdown.
func SessionMarkdown(s *ledger.Session) string {
	return renderTemplate("reconcile", "reconcile.md", nil, s)
}
