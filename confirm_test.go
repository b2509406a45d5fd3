package dkbl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPrompt_Confirm(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    bool
		reasked bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "long yes", input: " YES \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "asks again", input: "maybe\nyes\n", want: true, reasked: true},
		{name: "closed input declines", input: "", want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompt(strings.NewReader(tc.input), &out)
			got, err := p.Confirm(context.Background(), "Overwrite?")
			if err != nil {
				t.Fatalf("Confirm() unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Confirm() = %v, want %v", got, tc.want)
			}
			if reasked := strings.Contains(out.String(), "Please enter y or n."); reasked != tc.reasked {
				t.Errorf("Confirm() asked again = %v, want %v, output %q", reasked, tc.reasked, out.String())
			}
		})
	}
}

func TestPrompt_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPrompt(strings.NewReader("y\n"), &bytes.Buffer{})
	if _, err := p.Confirm(ctx, "Overwrite?"); !errors.Is(err, context.Canceled) {
		t.Errorf("Confirm() error = %v, want %v", err, context.Canceled)
	}
}

func TestConfirmOverwrite(t *testing.T) {
	ctx := context.Background()
	if err := confirmOverwrite(ctx, AlwaysConfirm, LedgerFile); err != nil {
		t.Errorf("confirmOverwrite(AlwaysConfirm) error = %v, want nil", err)
	}
	if err := confirmOverwrite(ctx, NeverConfirm, LedgerFile); !errors.Is(err, ErrDeclined) {
		t.Errorf("confirmOverwrite(NeverConfirm) error = %v, want %v", err, ErrDeclined)
	}
	failing := ConfirmFunc(func(context.Context, string) (bool, error) { return false, errors.New("boom") })
	if err := confirmOverwrite(ctx, failing, LedgerFile); err == nil || errors.Is(err, ErrDeclined) {
		t.Errorf("confirmOverwrite(failing) error = %v, want the confirmer's error", err)
	}
}
