package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corfou/ledger"
	"github.com/corfou/ledger/renderer"
	"github.com/google/subcommands"
)

type timelineCmd struct {
	account string
	asset   string
}

func (*timelineCmd) Name() string     { return "timeline" }
func (*timelineCmd) Synopsis() string { return "display the reconstructed position curve of one holding" }
func (*timelineCmd) Usage() string {
	return `lgr timeline [-account <name>] [-asset <symbol>]

  Replays the journal into the cumulative position curve of one
  holding. Without -asset, shows the cash balance curve in the
  reporting currency.
`
}

func (c *timelineCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account to report on")
	f.StringVar(&c.asset, "asset", "", "Asset symbol; empty for cash")
}

func (c *timelineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ts := ledger.BuildTimelines(j, c.account)
	if c.asset == "" {
		printMarkdown(renderer.TimelineMarkdown(c.account, ledger.CashAsset, ts.Cash(*currency)))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TimelineMarkdown(c.account, c.asset, ts.Timeline(c.asset)))
	return subcommands.ExitSuccess
}
