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

type summaryCmd struct {
	account string
	date    string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display holdings, values and cost basis for an account" }
func (*summaryCmd) Usage() string {
	return `lgr summary [-account <name>] [-d <date>]

  Displays a summary of the account's holdings: quantity, as-of value,
  share of the total and average cost basis.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account to summarize")
	f.StringVar(&c.date, "d", date.Today().String(), "Date for the summary")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

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

	ts := ledger.BuildTimelines(j, c.account)
	s := ledger.CurrentSummary(j, ts, Resolver(store), c.account, on, ledger.NewValuationOptions(*currency))
	printMarkdown(renderer.SummaryMarkdown(s))
	return subcommands.ExitSuccess
}
