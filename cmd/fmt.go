package cmd

import (
	"context"
	"flag"

	"github.com/etnz/dkbl"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger and mapping table into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `dkbl [-o folder] fmt

  Validates the ledger, sorts it by date, recomputes the balances and writes
  it back with the canonical columns, e.g. after editing it in a spreadsheet.
  Legacy column names are renamed. The mapping table, if any, is sorted by
  recipient.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	ledger, err := folder.LoadLedger()
	if err != nil {
		return fail(ctx, "loading ledger", err)
	}
	table, err := loadMappingTable(folder)
	if err != nil {
		return fail(ctx, "loading mapping table", err)
	}

	ledger, err = dkbl.RecomputeBalance(ledger)
	if err != nil {
		return fail(ctx, "formatting ledger", err)
	}
	if err := folder.SaveLedger(ledger); err != nil {
		return fail(ctx, "saving ledger", err)
	}
	done(folder, dkbl.LedgerFile, "%d transactions, balance %s", ledger.Len(), dkbl.FormatMoney(ledger.Total()))

	if table == nil {
		return subcommands.ExitSuccess
	}
	if err := folder.SaveMappingTable(table); err != nil {
		return fail(ctx, "saving mapping table", err)
	}
	done(folder, dkbl.MappingFile, "%d recipients", table.Len())
	return subcommands.ExitSuccess
}
