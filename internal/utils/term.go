package utils

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const defaultTermWidth = 80

// TermWidth returns the current terminal width. $COLUMNS takes precedence,
// and 80 is used when no terminal is attached, as in tests or pipes.
func TermWidth() int {
	if c := os.Getenv("COLUMNS"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n
		}
	}
	w, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

// IsInteractive reports if both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
