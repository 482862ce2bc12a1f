package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `lgr fmt

  Reads all transactions, validates them, sorts them by date then
  identifier, and writes them back in a canonical JSONL format.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	if st := rewriteJournal(j); st != subcommands.ExitSuccess {
		return st
	}
	fmt.Printf("Formatted %s\n", *journalFile)
	return subcommands.ExitSuccess
}
