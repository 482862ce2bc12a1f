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

type reverseCmd struct {
	account string
	id      int64
	on      string
	source  string
}

func (*reverseCmd) Name() string     { return "reverse" }
func (*reverseCmd) Synopsis() string { return "cancel a transaction or drop an import batch" }
func (*reverseCmd) Usage() string {
	return `lgr reverse -id <tx> [-on <date>] | -source <tag>

  With -id, appends the reversal of the given transaction, preserving
  full history. With -source, removes the whole import batch tagged
  with that source, atomically.
`
}

func (c *reverseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account the transaction belongs to")
	f.Int64Var(&c.id, "id", 0, "Transaction to reverse")
	f.StringVar(&c.on, "on", date.Today().String(), "Date of the reversal")
	f.StringVar(&c.source, "source", "", "Import batch to remove")
}

func (c *reverseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.id == 0) == (c.source == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -id and -source is required.")
		return subcommands.ExitUsageError
	}

	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}

	if c.source != "" {
		n := j.RemoveBatch(c.account, c.source)
		if n == 0 {
			fmt.Fprintf(os.Stderr, "Error: no batch %q in account %q\n", c.source, c.account)
			return subcommands.ExitFailure
		}
		if st := rewriteJournal(j); st != subcommands.ExitSuccess {
			return st
		}
		fmt.Printf("Removed %d transaction(s) of batch %q from %s\n", n, c.source, *journalFile)
		return subcommands.ExitSuccess
	}

	day, err := date.Parse(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx, err := j.Transaction(c.account, ledger.TxID(c.id))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return AppendTransaction(tx.Reversed(day))
}

// rewriteJournal writes the whole journal back in canonical form.
func rewriteJournal(j *ledger.Journal) subcommands.ExitStatus {
	f, err := os.Create(*journalFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()
	if err := ledger.EncodeJournal(f, j); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
