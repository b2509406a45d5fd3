// Package archive keeps a queryable SQLite copy of the output folder.
//
// Each Write replaces the tables with the current state of the files and
// records a snapshot row, so that the files stay the source of truth.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/dkbl"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Snapshot is the state of an output folder to archive.
// History and Distributed are optional.
type Snapshot struct {
	Source      string // output folder
	Ledger      *dkbl.Ledger
	Mappings    *dkbl.MappingTable
	History     dkbl.History
	Distributed *dkbl.DistributedLedger
}

// Info describes a recorded snapshot.
type Info struct {
	ID         string
	CreatedAt  time.Time
	Source     string
	LedgerRows int
}

// Archive is an SQLite database holding the last written snapshot.
type Archive struct {
	db *sql.DB
}

// Open opens, or creates, the archive database at path and migrates its schema.
func Open(ctx context.Context, path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

// Close closes the database.
func (a *Archive) Close() error { return a.db.Close() }

// Write replaces the archived tables with the snapshot, in a single SQL transaction.
func (a *Archive) Write(ctx context.Context, s Snapshot) (Info, error) {
	if s.Ledger == nil || s.Mappings == nil {
		return Info{}, fmt.Errorf("snapshot needs a ledger and a mapping table")
	}
	info := Info{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		Source:     s.Source,
		LedgerRows: s.Ledger.Len(),
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return Info{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"ledger", "dist_ledger", "maptab", "history"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return Info{}, fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := insertTransactions(ctx, tx, "ledger", s.Ledger.Slice()); err != nil {
		return Info{}, err
	}
	if s.Distributed != nil {
		var rows []dkbl.Transaction
		for _, t := range s.Distributed.Transactions() {
			rows = append(rows, t)
		}
		if err := insertTransactions(ctx, tx, "dist_ledger", rows); err != nil {
			return Info{}, err
		}
	}
	if err := insertMappings(ctx, tx, s.Mappings); err != nil {
		return Info{}, err
	}
	if err := insertHistory(ctx, tx, s.History); err != nil {
		return Info{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, source, ledger_rows) VALUES (?, ?, ?, ?)`,
		info.ID, info.CreatedAt.Format(time.RFC3339), info.Source, info.LedgerRows); err != nil {
		return Info{}, fmt.Errorf("record snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Info{}, fmt.Errorf("commit snapshot: %w", err)
	}
	return info, nil
}

// Snapshots lists the recorded snapshots, latest first.
func (a *Archive) Snapshots(ctx context.Context) ([]Info, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, created_at, source, ledger_rows FROM snapshots ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var created string
		if err := rows.Scan(&info.ID, &created, &info.Source, &info.LedgerRows); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("invalid snapshot time %q: %w", created, err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func insertTransactions(ctx context.Context, tx *sql.Tx, table string, txs []dkbl.Transaction) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+` (
		position, date, recipient, amount, type, balance, occurrence,
		recipient_clean, label1, label2, label3,
		date_custom, amount_custom, occurrence_custom,
		recipient_clean_custom, label1_custom, label2_custom, label3_custom
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i, t := range txs {
		if _, err := stmt.ExecContext(ctx,
			i, t.Date.String(), t.Recipient, t.Amount.String(), string(t.Type()), t.Balance.String(), t.Occurrence,
			t.RecipientClean, t.Label1, t.Label2, t.Label3,
			nullString(t.Custom.Date.String()), nullAmount(t.Custom.Amount), nullInt(t.Custom.Occurrence),
			t.Custom.RecipientClean, t.Custom.Label1, t.Custom.Label2, t.Custom.Label3,
		); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

func insertMappings(ctx context.Context, tx *sql.Tx, m *dkbl.MappingTable) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO maptab (recipient, recipient_clean, label1, label2, label3, occurrence) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare maptab insert: %w", err)
	}
	defer stmt.Close()

	for e := range m.Entries() {
		if _, err := stmt.ExecContext(ctx, e.Recipient, e.RecipientClean, e.Label1, e.Label2, e.Label3, e.Occurrence); err != nil {
			return fmt.Errorf("insert mapping %q: %w", e.Recipient, err)
		}
	}
	return nil
}

func insertHistory(ctx context.Context, tx *sql.Tx, h dkbl.History) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO history (position, date, amount, initial_balance, balance) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range h {
		if _, err := stmt.ExecContext(ctx, i, e.Date.String(), e.Amount.String(), e.InitialBalance.String(), e.Balance.String()); err != nil {
			return fmt.Errorf("insert history row %d: %w", i, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString { return sql.NullString{String: s, Valid: s != ""} }

func nullInt(i int) sql.NullInt64 { return sql.NullInt64{Int64: int64(i), Valid: i != 0} }

func nullAmount(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}
