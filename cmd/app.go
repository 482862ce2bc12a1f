// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/corfou/ledger"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&depositCmd{}, "journal")
	c.Register(&withdrawCmd{}, "journal")
	c.Register(&incomeCmd{}, "journal")
	c.Register(&expenseCmd{}, "journal")
	c.Register(&buyCmd{}, "journal")
	c.Register(&sellCmd{}, "journal")
	c.Register(&convertCmd{}, "journal")
	c.Register(&reverseCmd{}, "journal")
	c.Register(&fmtCmd{}, "journal")

	c.Register(&txCmd{}, "reports")
	c.Register(&timelineCmd{}, "reports")
	c.Register(&aggregateCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&reconcileCmd{}, "reconciliation")
	c.Register(&importPricesCmd{}, "prices")

	c.Register(&topicCmd{}, "")
}

// As a CLI application the process is short lived, so globals are fine.

var journalFile = flag.String("journal-file", "journal.jsonl", "Path to the journal file (JSONL format)")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the price history file (JSONL format)")
var currency = flag.String("currency", "EUR", "Reporting currency")
var cashEquivalents = flag.String("cash-equivalents", "", "Comma-separated assets always priced at 1.0")

// DecodeJournal loads the app journal file. A missing file yields an
// empty journal so that the first append just works.
func DecodeJournal() (*ledger.Journal, error) {
	f, err := os.Open(*journalFile)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.NewJournal(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ledger.DecodeJournal(f)
}

// DecodePriceStore loads the app price history file, empty if missing.
func DecodePriceStore() (*ledger.PriceStore, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.NewPriceStore(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ledger.DecodePrices(f)
}

// Resolver builds the price resolver from the app flags.
func Resolver(store *ledger.PriceStore) *ledger.PriceResolver {
	cfg := ledger.ResolverConfig{Currency: *currency}
	for _, a := range strings.Split(*cashEquivalents, ",") {
		if a = strings.TrimSpace(a); a != "" {
			cfg.CashEquivalents = append(cfg.CashEquivalents, a)
		}
	}
	return ledger.NewPriceResolver(store, cfg)
}

// AppendTransaction validates a transaction against the journal and
// appends it to the app journal file.
func AppendTransaction(tx ledger.Transaction) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	id, err := j.Append(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(*journalFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	stamped, err := j.Transaction(tx.Account, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.EncodeTransaction(f, stamped); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Appended transaction %d to %s\n", id, *journalFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
