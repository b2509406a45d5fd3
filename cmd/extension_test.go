package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script needs a unix shell")
	}
	dir := t.TempDir()
	script := `#!/bin/sh
echo "args=$*"
echo "DKBL_OUTPUT=$DKBL_OUTPUT"
echo "DKBL_CONFIRM=$DKBL_CONFIRM"
echo "DKBL_VERBOSE=$DKBL_VERBOSE"
exit 3
`
	if err := os.WriteFile(filepath.Join(dir, "dkbl-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	var out bytes.Buffer
	setup(t, Config{Output: "/some/folder", Confirm: ConfirmNo, Bank: "dkb", Verbose: true}, &out)

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatal("RunExtension() did not find dkbl-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	for _, want := range []string{
		"args=a b",
		"DKBL_OUTPUT=/some/folder",
		"DKBL_CONFIRM=no",
		"DKBL_VERBOSE=true",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("does-not-exist", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
