package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Notifier shows the outcome of a user action.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// WriterNotifier prints notifications as single lines.
type WriterNotifier struct {
	Out io.Writer
}

func (n WriterNotifier) Success(msg string) { fmt.Fprintf(n.Out, "✓ %s\n", msg) }
func (n WriterNotifier) Error(msg string)   { fmt.Fprintf(n.Out, "✗ %s\n", msg) }

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// PromptConfirmer asks on Out and reads a y/N answer from In.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.Out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
