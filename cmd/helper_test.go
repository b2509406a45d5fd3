package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/dkbl"
	"github.com/google/subcommands"
	"golang.org/x/text/encoding/charmap"
)

const januaryExport = `"Kontonummer:";"DE12 1203 0000 1234 5678 90 / Girokonto";

"Von:";"01.01.2022";
"Bis:";"31.01.2022";
"Kontostand vom 31.01.2022:";"1.234,56 EUR";

"Buchungstag";"Wertstellung";"Buchungstext";"Auftraggeber / Begünstigter";"Verwendungszweck";"Kontonummer";"BLZ";"Betrag (EUR)";
"31.01.2022";"31.01.2022";"Lastschrift";"Bäckerei Müller";"Brot";"DE00";"";"-3,50";
"15.01.2022";"15.01.2022";"Gutschrift";"ACME GmbH";"Gehalt";"DE01";"";"2.500,00";
"02.01.2022";"02.01.2022";"Abschluss";"";"Kontoführung";"";"";"-4,90";
`

// februaryExport overlaps january's last day.
const februaryExport = `"Von:";"31.01.2022";
"Bis:";"28.02.2022";
"Kontostand vom 28.02.2022:";"1.110,56 EUR";

"Buchungstag";"Wertstellung";"Buchungstext";"Auftraggeber / Begünstigter";"Verwendungszweck";"Kontonummer";"BLZ";"Betrag (EUR)";
"03.02.2022";"03.02.2022";"Lastschrift";"Bäckerei Schmidt";"Kuchen";"DE02";"";"-4,00";
"01.02.2022";"01.02.2022";"Lastschrift";"Stadtwerke";"Strom";"DE03";"";"-120,00";
"31.01.2022";"31.01.2022";"Lastschrift";"Bäckerei Müller";"Brot";"DE00";"";"-3,50";
`

// setup configures the commands for a test, and captures their reports in out.
func setup(t *testing.T, cfg Config, out io.Writer) {
	t.Helper()
	oldConfig, oldStdout := config, stdout
	t.Cleanup(func() { config, stdout = oldConfig, oldStdout })
	config = cfg
	if out == nil {
		out = io.Discard
	}
	stdout = out
}

// newFolder configures the commands to use a new temporary output folder.
func newFolder(t *testing.T, out io.Writer) string {
	t.Helper()
	dir := t.TempDir()
	setup(t, Config{Output: dir, Confirm: ConfirmYes, Bank: "dkb"}, out)
	return dir
}

// writeExport writes a Latin-1 encoded export file, as the bank does.
func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	if err != nil {
		t.Fatalf("could not encode export: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes a command with args.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: invalid arguments %q: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

// mustRun executes a command and fails the test unless it succeeds.
func mustRun(t *testing.T, c subcommands.Command, args ...string) {
	t.Helper()
	if got := run(t, c, args...); got != subcommands.ExitSuccess {
		t.Fatalf("%s %q exit status = %v, want success", c.Name(), args, got)
	}
}

// folder opens the configured output folder.
func folder(t *testing.T) *dkbl.Folder {
	t.Helper()
	f, err := dkbl.OpenFolder(config.Output, nil)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// label sets mappings in the output folder's mapping table.
func label(t *testing.T, updates ...dkbl.Mapping) {
	t.Helper()
	f := folder(t)
	table, err := f.LoadMappingTable()
	if err != nil {
		t.Fatal(err)
	}
	if table, err = table.With(updates...); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveMappingTable(table); err != nil {
		t.Fatal(err)
	}
}
