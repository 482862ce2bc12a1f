package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corfou/ledger"
	"github.com/corfou/ledger/date"
	"github.com/corfou/ledger/renderer"
	"github.com/google/subcommands"
)

type allocationCmd struct {
	account     string
	granularity string
	start       string
	end         string
	noCash      bool
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "value holdings and report each one's share of the total" }
func (*allocationCmd) Usage() string {
	return `lgr allocation [-account <name>] [-d <date>] [-s <start> -g <granularity>] [-no-cash]

  Values every holding at one or more sample dates and reports each
  holding's percentage of the priced total. With -s, samples a whole
  range at the given granularity.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account to report on")
	f.StringVar(&c.granularity, "g", "monthly", "Sampling granularity for a range")
	f.StringVar(&c.start, "s", "", "Start date of a sampled range; single date if empty")
	f.StringVar(&c.end, "d", date.Today().String(), "Sample date, or end of the sampled range")
	f.BoolVar(&c.noCash, "no-cash", false, "Exclude the cash balance from the allocation")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	store, err := DecodePriceStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	end, err := date.Parse(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	opts := ledger.NewValuationOptions(*currency)
	opts.IncludeCash = !c.noCash
	if opts.Granularity, err = date.ParsePeriod(c.granularity); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ts := ledger.BuildTimelines(j, c.account)
	res := Resolver(store)

	var series []ledger.Valuation
	if c.start == "" {
		series = []ledger.Valuation{ledger.AllocationAt(ts, res, end, opts)}
	} else {
		start, err := date.Parse(c.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
		series = ledger.AllocationSeries(ts, res, date.NewRange(start, end), opts)
	}

	printMarkdown(renderer.AllocationMarkdown(series))
	return subcommands.ExitSuccess
}
