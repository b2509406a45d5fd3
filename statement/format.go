// Package statement normalizes bank statement exports into dkbl records.
package statement

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/etnz/dkbl"
)

// Format parses a bank's export file.
type Format interface {
	// Name is the identifier used on the command line, e.g. "dkb".
	Name() string
	// Parse reads a whole export. It fails with dkbl.ErrEmptyImport if it contains no record.
	Parse(r io.Reader) (dkbl.Export, error)
}

var formats = map[string]Format{}

// Register makes a format available by name. It panics if the name is already used.
func Register(f Format) {
	if _, dup := formats[f.Name()]; dup {
		panic(fmt.Sprintf("statement format %q registered twice", f.Name()))
	}
	formats[f.Name()] = f
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown bank format %q, known formats are %v", name, Formats())
	}
	return f, nil
}

// Formats returns the sorted names of the registered formats.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFile parses the export file at path.
func ParseFile(f Format, path string) (dkbl.Export, error) {
	file, err := os.Open(path)
	if err != nil {
		return dkbl.Export{}, fmt.Errorf("could not open export: %w", err)
	}
	defer file.Close()

	export, err := f.Parse(file)
	if err != nil {
		return export, fmt.Errorf("could not parse %s export %q: %w", f.Name(), path, err)
	}
	return export, nil
}

func init() {
	Register(DKB{Locale: German})
}
