package cmd

import (
	"context"
	"flag"

	"github.com/etnz/dkbl"
	"github.com/google/subcommands"
)

type updateMappingTableCmd struct {
	keepStale bool
}

func (*updateMappingTableCmd) Name() string { return "update-maptab" }
func (*updateMappingTableCmd) Synopsis() string {
	return "refreshes the mapping table with the ledger's recipients"
}
func (*updateMappingTableCmd) Usage() string {
	return `dkbl [-o folder] update-maptab [-keep-stale]

  Rebuilds maptab.csv with one row per distinct recipient of the ledger.
  Curated rows are kept, new recipients get a blank row to fill in.
  Recipients that are no longer in the ledger are dropped unless -keep-stale
  is set.
`
}

func (c *updateMappingTableCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.keepStale, "keep-stale", false, "keep recipients that are not in the ledger")
}

func (c *updateMappingTableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	ledger, err := folder.LoadLedger()
	if err != nil {
		return fail(ctx, "loading ledger", err)
	}
	stale, err := loadMappingTable(folder)
	if err != nil {
		return fail(ctx, "loading mapping table", err)
	}

	table := dkbl.UpdateMappingTable(ledger, stale, dkbl.MappingOptions{KeepStale: c.keepStale})
	if err := folder.SaveMappingTable(table); err != nil {
		return fail(ctx, "saving mapping table", err)
	}
	blank := 0
	for m := range table.Entries() {
		if m.IsBlank() {
			blank++
		}
	}
	done(folder, dkbl.MappingFile, "%d recipients, %d to categorize", table.Len(), blank)
	return subcommands.ExitSuccess
}
