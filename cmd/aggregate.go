package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/corfou/ledger"
	"github.com/corfou/ledger/date"
	"github.com/corfou/ledger/renderer"
	"github.com/google/subcommands"
)

type aggregateCmd struct {
	account     string
	granularity string
	weekStart   string
	by          string
	cumulative  bool
	start       string
	end         string
}

func (*aggregateCmd) Name() string     { return "aggregate" }
func (*aggregateCmd) Synopsis() string { return "fold postings into time buckets crossed with a dimension" }
func (*aggregateCmd) Usage() string {
	return `lgr aggregate [-account <name>] [-g <granularity>] [-by <dimension>] [-cumulative] [-s <start>] [-d <end>]

  Aggregates an account's postings into daily, weekly, monthly,
  quarterly or yearly buckets, grouped by category, top-category, type
  or asset. Buckets hold net flows, or running totals with -cumulative.
`
}

func (c *aggregateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account to aggregate")
	f.StringVar(&c.granularity, "g", "monthly", "Bucket granularity (daily, weekly, monthly, quarterly, yearly)")
	f.StringVar(&c.weekStart, "week-start", "monday", "First day of weekly buckets")
	f.StringVar(&c.by, "by", "category", "Grouping dimension (category, top-category, type, asset)")
	f.BoolVar(&c.cumulative, "cumulative", false, "Report running totals instead of per-bucket flows")
	f.StringVar(&c.start, "s", "", "Start date; defaults to the oldest posting")
	f.StringVar(&c.end, "d", "", "End date; defaults to today")
}

// parseDimension maps a dimension name to its grouping function.
func parseDimension(s string) (ledger.Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category":
		return ledger.ByCategory, nil
	case "top-category":
		return ledger.ByTopCategory, nil
	case "type":
		return ledger.ByType, nil
	case "asset":
		return ledger.ByAsset, nil
	default:
		return nil, fmt.Errorf("unknown dimension %q", s)
	}
}

// parseWeekday accepts full lowercase weekday names.
func parseWeekday(s string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(s, wd.String()) {
			return wd, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday %q", s)
}

func (c *aggregateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	opts := ledger.NewAggregateOptions()
	if opts.Granularity, err = date.ParsePeriod(c.granularity); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if opts.FirstWeekday, err = parseWeekday(c.weekStart); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if opts.GroupBy, err = parseDimension(c.by); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.cumulative {
		opts.Mode = ledger.Cumulative
	}

	r, st := reportRange(j, c.account, c.start, c.end)
	if st != subcommands.ExitSuccess {
		return st
	}

	buckets := ledger.Aggregate(j, c.account, r, opts)
	printMarkdown(renderer.AggregateMarkdown(c.account, buckets))
	return subcommands.ExitSuccess
}

// reportRange resolves a reporting range, defaulting to the account's
// full posting history up to today.
func reportRange(j *ledger.Journal, account, start, end string) (date.Range, subcommands.ExitStatus) {
	from := j.OldestPostingDate(account)
	if start != "" {
		var err error
		if from, err = date.Parse(start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return date.Range{}, subcommands.ExitUsageError
		}
	}
	to := date.Today()
	if end != "" {
		var err error
		if to, err = date.Parse(end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return date.Range{}, subcommands.ExitUsageError
		}
	}
	return date.NewRange(from, to), subcommands.ExitSuccess
}
