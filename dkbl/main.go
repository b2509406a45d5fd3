// Command dkbl maintains a household ledger from DKB bank exports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/dkbl/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.RegisterFlags(flag.CommandLine)
	cmd.Register(commander)

	completion().Complete("dkbl")

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !registered(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	ctx := cmd.NewContext(context.Background())
	os.Exit(int(commander.Execute(ctx)))
}

func registered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, e := range cmd.Commands {
		if e.Command.Name() == name {
			return true
		}
	}
	return false
}

// predictors of the flags that take a value, by name.
var predictors = map[string]complete.Predictor{
	"o":       predict.Dirs("*"),
	"confirm": predict.Set{cmd.ConfirmAsk, cmd.ConfirmYes, cmd.ConfirmNo},
	"f":       predict.Files("*.csv"),
	"bank":    predict.Set{"dkb"},
	"period":  predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
	"engine":  predict.Set{"bayes", "gemini"},
	"db":      predict.Files("*.sqlite"),
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine),
	}
	for _, e := range cmd.Commands {
		f := flag.NewFlagSet(e.Command.Name(), flag.ContinueOnError)
		e.Command.SetFlags(f)
		root.Sub[e.Command.Name()] = &complete.Command{Flags: flags(f)}
	}
	return root
}

func flags(f *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = predict.Nothing
			return
		}
		if p, ok := predictors[fl.Name]; ok {
			m[fl.Name] = p
			return
		}
		m[fl.Name] = predict.Something
	})
	return m
}
