package dkbl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrDeclined is returned when the user refuses a confirmation.
var ErrDeclined = errors.New("declined by user")

// Confirmer asks the user to confirm an action.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

var (
	// AlwaysConfirm confirms every question, for non-interactive use.
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	// NeverConfirm declines every question: the fail-closed default of non-interactive use.
	NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
)

// Prompt asks questions on a terminal and reads y/n answers.
type Prompt struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompt creates a Prompt reading answers from in and writing questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewScanner(in), out: out}
}

var (
	questionColor = color.New(color.FgYellow, color.Bold)
	hintColor     = color.New(color.FgHiBlack)
)

// Confirm asks the question until the answer is "y" or "n".
// A closed input declines.
func (p *Prompt) Confirm(ctx context.Context, question string) (bool, error) {
	ask := question
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		questionColor.Fprint(p.out, ask)
		hintColor.Fprintln(p.out, " [y/n]")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return false, fmt.Errorf("could not read answer: %w", err)
			}
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(p.in.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		ask = "Please enter y or n. " + question
	}
}

// confirmOverwrite returns ErrDeclined unless the user accepts to overwrite the file.
func confirmOverwrite(ctx context.Context, c Confirmer, file string) error {
	ok, err := c.Confirm(ctx, fmt.Sprintf("Do you want to overwrite the existing %s?", file))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not overwriting %s: %w", file, ErrDeclined)
	}
	return nil
}
