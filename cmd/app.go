// Package cmd implements the CLI application to manage a DKB ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/logger"
	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Commands lists the subcommands and their group.
var Commands = []struct {
	Command subcommands.Command
	Group   string
}{
	{&createLedgerCmd{}, "ledger"},
	{&appendLedgerCmd{}, "ledger"},
	{&updateMappingTableCmd{}, "ledger"},
	{&updateLedgerMappingsCmd{}, "ledger"},
	{&updateHistoryCmd{}, "ledger"},
	{&distributeLedgerCmd{}, "ledger"},
	{&summaryCmd{}, "reports"},
	{&suggestLabelsCmd{}, "labels"},
	{&fmtCmd{}, "ledger"},
	{&exportSQLiteCmd{}, "archive"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range Commands {
		c.Register(e.Command, e.Group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var config Config

// stdout receives the command reports.
var stdout io.Writer = os.Stdout

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

// RegisterFlags loads the configuration from the environment and registers the
// global flags that override it.
func RegisterFlags(f *flag.FlagSet) {
	config = LoadConfig()
	f.StringVar(&config.Output, "o", config.Output, "output folder holding the ledger files (env "+EnvOutput+")")
	f.StringVar(&config.Confirm, "confirm", config.Confirm, "confirmation of overwrites: ask, yes or no (env "+EnvConfirm+")")
	f.BoolVar(&config.Verbose, "v", config.Verbose, "verbose logging (env "+EnvVerbose+")")
}

// NewContext returns the context passed to commands, carrying the logger.
func NewContext(ctx context.Context) context.Context {
	return logger.WithContext(ctx, logger.New(os.Stderr, config.Verbose))
}

// confirmer returns the Confirmer for the configured mode.
// Asking requires a terminal, otherwise overwrites are declined.
func confirmer(ctx context.Context) dkbl.Confirmer {
	switch config.Confirm {
	case ConfirmYes:
		return dkbl.AlwaysConfirm
	case ConfirmAsk:
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return dkbl.NewPrompt(os.Stdin, os.Stderr)
		}
		log := logger.FromContext(ctx)
		log.Debug().Msg("stdin is not a terminal, overwrites will be declined")
	}
	return dkbl.NeverConfirm
}

// openFolder validates the configuration and opens the output folder.
func openFolder(ctx context.Context) (*dkbl.Folder, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return dkbl.OpenFolder(config.Output, confirmer(ctx))
}

// fail reports err and returns the failure status.
func fail(ctx context.Context, msg string, err error) subcommands.ExitStatus {
	log := logger.FromContext(ctx)
	log.Debug().Err(err).Msg(msg)
	failure.Fprintf(os.Stderr, "Error %s: %v\n", msg, err)
	return subcommands.ExitFailure
}

// done prints a success line for a written file.
func done(folder *dkbl.Folder, name, format string, a ...any) {
	success.Fprintf(stdout, "✔ %s: ", folder.Path(name))
	fmt.Fprintf(stdout, format+"\n", a...)
}

// printMarkdown renders md for the terminal, or prints it as is when raw or
// when stdout is not a terminal.
func printMarkdown(md string, raw bool) error {
	if raw || stdout != os.Stdout || !isatty.IsTerminal(os.Stdout.Fd()) {
		_, err := io.WriteString(stdout, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, out)
	return err
}
