package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/corfou/ledger"
	"github.com/google/subcommands"
)

type importPricesCmd struct {
	asset    string
	currency string
	dates    string
	closes   string
}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "import end-of-day prices from a JSON feed" }
func (*importPricesCmd) Usage() string {
	return `lgr import-prices -asset <symbol> [-c <currency>] [<feed.json>]

  Reads an end-of-day JSON feed (from the file argument or stdin) and
  merges its prices into the price history file. The feed layout is
  addressed with JSONPath; the defaults fit the usual list of
  {date, close} objects.
`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset symbol the prices belong to")
	f.StringVar(&c.currency, "c", *currency, "Currency the feed quotes in")
	f.StringVar(&c.dates, "dates", ledger.EODFeed.Dates, "JSONPath to the feed dates")
	f.StringVar(&c.closes, "closes", ledger.EODFeed.Closes, "JSONPath to the feed closing prices")
}

func (c *importPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var in io.Reader = os.Stdin
	if f.NArg() > 0 {
		feed, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening feed %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		defer feed.Close()
		in = feed
	}

	points, err := ledger.ParseFeed(in, c.asset, c.currency, ledger.FeedSpec{Dates: c.dates, Closes: c.closes})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing feed: %v\n", err)
		return subcommands.ExitFailure
	}

	store, err := DecodePriceStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	store.Add(points...)

	out, err := os.Create(*pricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening prices %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := ledger.EncodePrices(out, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing prices %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d price(s) for %s into %s\n", len(points), c.asset, *pricesFile)
	return subcommands.ExitSuccess
}
