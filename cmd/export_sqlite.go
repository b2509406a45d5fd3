package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/dkbl/archive"
	"github.com/etnz/dkbl/logger"
	"github.com/google/subcommands"
)

type exportSQLiteCmd struct {
	db string
}

func (*exportSQLiteCmd) Name() string { return "export-sqlite" }
func (*exportSQLiteCmd) Synopsis() string {
	return "copies the output folder into an SQLite database"
}
func (*exportSQLiteCmd) Usage() string {
	return `dkbl [-o folder] export-sqlite [-db path]

  Replaces the tables of the SQLite archive with the ledger, mapping table,
  history and distributed ledger of the output folder, and records a
  snapshot. The files remain the source of truth.

  The database defaults to dkbl.sqlite in the output folder (env ` + EnvSQLitePath + `).
`
}

func (c *exportSQLiteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db, "db", "", "SQLite database path")
}

func (c *exportSQLiteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	snapshot := archive.Snapshot{Source: config.Output}
	if snapshot.Ledger, err = folder.LoadLedger(); err != nil {
		return fail(ctx, "loading ledger", err)
	}
	if snapshot.Mappings, err = folder.LoadMappingTable(); err != nil {
		return fail(ctx, "loading mapping table", err)
	}
	if snapshot.History, err = loadHistory(folder); err != nil {
		return fail(ctx, "loading history", err)
	}
	if snapshot.Distributed, err = loadDistributed(folder); err != nil {
		return fail(ctx, "distributing ledger", err)
	}

	path := c.db
	if path == "" {
		path = config.DatabasePath()
	}
	a, err := archive.Open(ctx, path)
	if err != nil {
		return fail(ctx, "opening archive", err)
	}
	defer a.Close()

	info, err := a.Write(ctx, snapshot)
	if err != nil {
		return fail(ctx, "writing archive", err)
	}
	log := logger.FromContext(ctx)
	log.Info().Str("snapshot", info.ID).Str("db", path).Msg("archive written")
	success.Fprintf(stdout, "✔ %s: ", path)
	fmt.Fprintf(stdout, "snapshot %s, %d transactions\n", info.ID, info.LedgerRows)
	return subcommands.ExitSuccess
}
