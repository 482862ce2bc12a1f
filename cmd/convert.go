package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corfou/ledger"
	"github.com/google/subcommands"
)

// --- Convert Command ---

type convertCmd struct {
	common
	from    float64
	fromCur string
	to      float64
	toCur   string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "exchange cash from one currency to another" }
func (*convertCmd) Usage() string {
	return `lgr convert -from <amount> -from-c <currency> -to <amount> -to-c <currency> [-on <date>] [-memo <memo>]

  Records a currency exchange. The legs settle in different currencies,
  so the transaction is marked cross-currency and allowed the 0.01
  per-currency rounding epsilon.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.from, "from", 0, "Amount sold")
	f.StringVar(&c.fromCur, "from-c", "", "Currency sold")
	f.Float64Var(&c.to, "to", 0, "Amount bought")
	f.StringVar(&c.toCur, "to-c", "", "Currency bought")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from <= 0 || c.to <= 0 || c.fromCur == "" || c.toCur == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.fromCur == c.toCur {
		fmt.Fprintln(os.Stderr, "Error: convert needs two different currencies.")
		return subcommands.ExitUsageError
	}
	day, st := c.day()
	if st != subcommands.ExitSuccess {
		return st
	}
	sold := ledger.M(c.from, c.fromCur)
	bought := ledger.M(c.to, c.toCur)
	// Each currency balances against an equity leg; the cross-currency
	// flag tolerates up to 0.01 of rate-rounding residue per currency.
	return AppendTransaction(ledger.Transaction{
		Account: c.account, On: day, Memo: c.memo, CrossCurrency: true,
		Postings: []ledger.Posting{
			{Side: ledger.Debit, Class: ledger.Cash, Amount: bought, Type: "convert"},
			{Side: ledger.Credit, Class: ledger.Equity, Amount: bought, Type: "convert"},
			{Side: ledger.Debit, Class: ledger.Equity, Amount: sold, Type: "convert"},
			{Side: ledger.Credit, Class: ledger.Cash, Amount: sold, Type: "convert"},
		},
	})
}
