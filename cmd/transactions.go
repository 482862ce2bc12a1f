package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corfou/ledger"
	"github.com/corfou/ledger/date"
	"github.com/google/subcommands"
)

// common holds the flags shared by every intent command.
type common struct {
	account string
	on      string
	memo    string
}

func (c *common) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account the transaction belongs to")
	f.StringVar(&c.on, "on", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.memo, "memo", "", "An optional note for the transaction")
}

func (c *common) day() (date.Date, subcommands.ExitStatus) {
	day, err := date.Parse(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return day, subcommands.ExitUsageError
	}
	return day, subcommands.ExitSuccess
}

// --- Deposit Command ---

type depositCmd struct {
	common
	amount   float64
	currency string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record cash put into the account" }
func (*depositCmd) Usage() string {
	return `lgr deposit -a <amount> [-c <currency>] [-on <date>] [-memo <memo>]

  Records a cash deposit: cash is debited, equity credited.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.amount, "a", 0, "Amount deposited")
	f.StringVar(&c.currency, "c", *currency, "Currency of the amount")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, st := c.day()
	if st != subcommands.ExitSuccess {
		return st
	}
	amount := ledger.M(c.amount, c.currency)
	return AppendTransaction(ledger.Transaction{
		Account: c.account, On: day, Memo: c.memo,
		Postings: []ledger.Posting{
			{Side: ledger.Debit, Class: ledger.Cash, Amount: amount},
			{Side: ledger.Credit, Class: ledger.Equity, Amount: amount, Type: "deposit"},
		},
	})
}

// --- Withdraw Command ---

type withdrawCmd struct {
	common
	amount   float64
	currency string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record cash taken out of the account" }
func (*withdrawCmd) Usage() string {
	return `lgr withdraw -a <amount> [-c <currency>] [-on <date>] [-memo <memo>]

  Records a cash withdrawal: equity is debited, cash credited.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.amount, "a", 0, "Amount withdrawn")
	f.StringVar(&c.currency, "c", *currency, "Currency of the amount")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, st := c.day()
	if st != subcommands.ExitSuccess {
		return st
	}
	amount := ledger.M(c.amount, c.currency)
	return AppendTransaction(ledger.Transaction{
		Account: c.account, On: day, Memo: c.memo,
		Postings: []ledger.Posting{
			{Side: ledger.Debit, Class: ledger.Equity, Amount: amount, Type: "withdrawal"},
			{Side: ledger.Credit, Class: ledger.Cash, Amount: amount},
		},
	})
}

// --- Income Command ---

type incomeCmd struct {
	common
	amount   float64
	currency string
	category string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record income received in cash" }
func (*incomeCmd) Usage() string {
	return `lgr income -a <amount> [-c <currency>] [-category <category>] [-on <date>] [-memo <memo>]

  Records income: cash is debited, the income category credited.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.amount, "a", 0, "Amount received")
	f.StringVar(&c.currency, "c", *currency, "Currency of the amount")
	f.StringVar(&c.category, "category", "", "Income category, ':' separates levels (e.g. salary)")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, st := c.day()
	if st != subcommands.ExitSuccess {
		return st
	}
	amount := ledger.M(c.amount, c.currency)
	return AppendTransaction(ledger.Transaction{
		Account: c.account, On: day, Memo: c.memo,
		Postings: []ledger.Posting{
			{Side: ledger.Debit, Class: ledger.Cash, Amount: amount},
			{Side: ledger.Credit, Class: ledger.Income, Amount: amount, Category: c.category, Type: "income"},
		},
	})
}

// --- Expense Command ---

type expenseCmd struct {
	common
	amount   float64
	currency string
	category string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record a cash expense" }
func (*expenseCmd) Usage() string {
	return `lgr expense -a <amount> [-c <currency>] [-category <category>] [-on <date>] [-memo <memo>]

  Records an expense: the expense category is debited, cash credited.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.amount, "a", 0, "Amount spent")
	f.StringVar(&c.currency, "c", *currency, "Currency of the amount")
	f.StringVar(&c.category, "category", "", "Expense category, ':' separates levels (e.g. food:restaurant)")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, st := c.day()
	if st != subcommands.ExitSuccess {
		return st
	}
	amount := ledger.M(c.amount, c.currency)
	return AppendTransaction(ledger.Transaction{
		Account: c.account, On: day, Memo: c.memo,
		Postings: []ledger.Posting{
			{Side: ledger.Debit, Class: ledger.Expense, Amount: amount, Category: c.category, Type: "expense"},
			{Side: ledger.Credit, Class: ledger.Cash, Amount: amount},
		},
	})
}

// --- Buy Command ---

type buyCmd struct {
	common
	asset    string
	quantity float64
	amount   float64
	currency string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase an asset to open or add to a position" }
func (*buyCmd) Usage() string {
	return `lgr buy -asset <symbol> -q <quantity> -a <amount> [-c <currency>] [-on <date>] [-memo <memo>]

  Purchases an asset. The total cost is credited from the cash account.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.asset, "asset", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Quantity bought")
	f.Float64Var(&c.amount, "a", 0, "Total cost")
	f.StringVar(&c.currency, "c", *currency, "Currency of the cost")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, st := c.day()
	if st != subcommands.ExitSuccess {
		return st
	}
	amount := ledger.M(c.amount, c.currency)
	return AppendTransaction(ledger.Transaction{
		Account: c.account, On: day, Memo: c.memo,
		Postings: []ledger.Posting{
			{Side: ledger.Debit, Class: ledger.Asset, Asset: c.asset, Amount: amount, Quantity: ledger.Q(c.quantity), Type: "buy"},
			{Side: ledger.Credit, Class: ledger.Cash, Amount: amount},
		},
	})
}

// --- Sell Command ---

type sellCmd struct {
	common
	asset    string
	quantity float64
	amount   float64
	currency string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell an asset to trim or close a position" }
func (*sellCmd) Usage() string {
	return `lgr sell -asset <symbol> -q <quantity> -a <amount> [-c <currency>] [-on <date>] [-memo <memo>]

  Sells an asset. The proceeds are debited to the cash account.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.asset, "asset", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Quantity sold")
	f.Float64Var(&c.amount, "a", 0, "Total proceeds")
	f.StringVar(&c.currency, "c", *currency, "Currency of the proceeds")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, st := c.day()
	if st != subcommands.ExitSuccess {
		return st
	}
	amount := ledger.M(c.amount, c.currency)
	return AppendTransaction(ledger.Transaction{
		Account: c.account, On: day, Memo: c.memo,
		Postings: []ledger.Posting{
			{Side: ledger.Debit, Class: ledger.Cash, Amount: amount},
			{Side: ledger.Credit, Class: ledger.Asset, Asset: c.asset, Amount: amount, Quantity: ledger.Q(c.quantity), Type: "sell"},
		},
	})
}
