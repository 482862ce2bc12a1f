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

type txCmd struct {
	account string
	period  string
	start   string
	date    string
	head    int
	tail    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions of an account" }
func (*txCmd) Usage() string {
	return `lgr tx [-account <name>] [-p <period> | -s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>]

  Lists transactions of an account, with options for filtering and
  limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account to list")
	f.StringVar(&c.period, "p", "", "Predefined period (daily, weekly, monthly, quarterly, yearly).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Without date flags, list the full account history.
	useFullRange := c.start == "" && c.date == "" && c.period == ""

	var filter date.Range
	if !useFullRange {
		filter, err = rangeFromFlags(c.period, c.start, c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	var transactions []ledger.Transaction
	for _, tx := range j.Transactions(c.account) {
		if useFullRange || filter.Contains(tx.On) {
			transactions = append(transactions, tx)
		}
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}

// rangeFromFlags resolves the conventional -p/-s/-d range flags. The start
// date wins over the period; the end date defaults to today.
func rangeFromFlags(period, start, end string) (date.Range, error) {
	endDate := date.Today()
	if end != "" {
		var err error
		endDate, err = date.Parse(end)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing end date: %w", err)
		}
	}
	if start != "" {
		startDate, err := date.Parse(start)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing start date: %w", err)
		}
		return date.NewRange(startDate, endDate), nil
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return date.Range{}, err
	}
	return p.Range(endDate), nil
}
