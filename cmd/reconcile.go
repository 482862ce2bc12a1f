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

type reconcileCmd struct {
	account    string
	statements string
	apply      bool
	iterations int
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "check computed balances against statement balances" }
func (*reconcileCmd) Usage() string {
	return `lgr reconcile -statements <file> [-account <name>] [-apply] [-iterations <n>]

  Compares the account's computed cash balances against asserted
  statement balances (JSONL: date, balance, currency). Mismatches
  beyond one minor currency unit are reported as discrepancies.

  With -apply, balancing adjustments are proposed and, when they
  verifiably shrink the delta, appended to the journal file. The
  resolve loop is bounded; hitting the cap is reported, not an error.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "main", "Account to reconcile")
	f.StringVar(&c.statements, "statements", "", "Statement balances file (JSONL)")
	f.BoolVar(&c.apply, "apply", false, "Append verified balancing adjustments to the journal")
	f.IntVar(&c.iterations, "iterations", 3, "Maximum resolve iterations")
}

func (c *reconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.statements == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	sf, err := os.Open(c.statements)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening statements %q: %v\n", c.statements, err)
		return subcommands.ExitFailure
	}
	asserted, err := ledger.DecodeAssertedBalances(sf)
	sf.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statements %q: %v\n", c.statements, err)
		return subcommands.ExitFailure
	}

	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	opts := ledger.NewReconcileOptions(*currency)
	opts.MaxIterations = c.iterations
	if c.apply {
		opts.Proposer = ledger.AdjustmentProposer{}
	}

	session, err := ledger.Reconcile(ctx, j, c.account, asserted, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.apply && session.FixesApplied > 0 {
		if st := rewriteJournal(j); st != subcommands.ExitSuccess {
			return st
		}
	}

	printMarkdown(renderer.SessionMarkdown(session))
	if !session.FullyReconciled {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
