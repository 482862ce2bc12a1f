package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/corfou/ledger/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion takes over and exits when invoked by the shell.
	completion().Complete("lgr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	periods := predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"}
	dimensions := predict.Set{"category", "top-category", "type", "asset"}
	sub := map[string]*complete.Command{
		"deposit":  {},
		"withdraw": {},
		"income":   {},
		"expense":  {},
		"buy":      {},
		"sell":     {},
		"convert":  {},
		"reverse":  {},
		"fmt":      {},
		"tx":       {Flags: map[string]complete.Predictor{"p": periods}},
		"timeline": {},
		"aggregate": {Flags: map[string]complete.Predictor{
			"g":  periods,
			"by": dimensions,
		}},
		"allocation": {Flags: map[string]complete.Predictor{"g": periods}},
		"summary":    {},
		"reconcile": {Flags: map[string]complete.Predictor{
			"statements": predict.Files("*.jsonl"),
		}},
		"import-prices": {Args: predict.Files("*.json")},
		"topic":         {Args: predict.Set{"readme", "journal", "prices", "aggregation", "allocation", "reconcile", "*"}},
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"journal-file": predict.Files("*.jsonl"),
			"prices-file":  predict.Files("*.jsonl"),
		},
	}
}
