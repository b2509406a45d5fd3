package dkbl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// File names in the output folder.
const (
	LedgerFile      = "ledger.csv"
	MappingFile     = "maptab.csv"
	HistoryFile     = "history.csv"
	DistributedFile = "dist_ledger.csv"
)

// Folder is the output folder holding the ledger, mapping table, history and
// distributed ledger files.
//
// Files are plain text written in place; there is no locking and a single
// process is assumed to use the folder at a time.
type Folder struct {
	path    string
	confirm Confirmer
}

// OpenFolder opens an existing output folder. confirm is asked before an
// existing ledger is overwritten, nil means NeverConfirm.
func OpenFolder(path string, confirm Confirmer) (*Folder, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not open output folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output folder %q is not a directory", path)
	}
	if confirm == nil {
		confirm = NeverConfirm
	}
	return &Folder{path: path, confirm: confirm}, nil
}

// Path returns the path of a file in the folder.
func (f *Folder) Path(name string) string { return filepath.Join(f.path, name) }

// Exists reports whether the file exists in the folder.
func (f *Folder) Exists(name string) bool {
	_, err := os.Stat(f.Path(name))
	return err == nil
}

// ConfirmOverwrite asks the user before an existing file is replaced.
// It returns ErrDeclined if the user refuses, nil if the file does not exist.
func (f *Folder) ConfirmOverwrite(ctx context.Context, name string) error {
	if !f.Exists(name) {
		return nil
	}
	return confirmOverwrite(ctx, f.confirm, name)
}

// LoadLedger decodes the ledger file. See DecodeLedger for required.
func (f *Folder) LoadLedger(required ...string) (*Ledger, error) {
	var l *Ledger
	err := f.read(LedgerFile, func(r io.Reader) (err error) {
		l, err = DecodeLedger(r, required...)
		return
	})
	return l, err
}

// LoadMappingTable decodes the mapping table file.
// The error wraps fs.ErrNotExist if there is no mapping table yet.
func (f *Folder) LoadMappingTable() (*MappingTable, error) {
	var m *MappingTable
	err := f.read(MappingFile, func(r io.Reader) (err error) {
		m, err = DecodeMappingTable(r)
		return
	})
	return m, err
}

// LoadHistory decodes the history file.
// The error wraps fs.ErrNotExist if there is no history yet.
func (f *Folder) LoadHistory() (History, error) {
	var h History
	err := f.read(HistoryFile, func(r io.Reader) (err error) {
		h, err = DecodeHistory(r)
		return
	})
	return h, err
}

// SaveLedger writes the ledger file.
func (f *Folder) SaveLedger(l *Ledger) error {
	return f.write(LedgerFile, func(w io.Writer) error { return EncodeLedger(w, l) })
}

// SaveMappingTable writes the mapping table file.
func (f *Folder) SaveMappingTable(m *MappingTable) error {
	return f.write(MappingFile, func(w io.Writer) error { return EncodeMappingTable(w, m) })
}

// SaveHistory writes the history file.
func (f *Folder) SaveHistory(h History) error {
	return f.write(HistoryFile, func(w io.Writer) error { return EncodeHistory(w, h) })
}

// SaveDistributedLedger writes the distributed ledger file.
func (f *Folder) SaveDistributedLedger(d *DistributedLedger) error {
	return f.write(DistributedFile, func(w io.Writer) error { return EncodeDistributedLedger(w, d) })
}

func (f *Folder) read(name string, decode func(io.Reader) error) error {
	path := f.Path(name)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", name, err)
	}
	defer file.Close()

	if err := decode(file); err != nil {
		return fmt.Errorf("could not decode %q: %w", path, err)
	}
	return nil
}

func (f *Folder) write(name string, encode func(io.Writer) error) error {
	path := f.Path(name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	if err := encode(file); err != nil {
		file.Close()
		return fmt.Errorf("could not encode %q: %w", path, err)
	}
	return file.Close()
}

// IsNotExist reports whether err is caused by a missing file.
func IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
