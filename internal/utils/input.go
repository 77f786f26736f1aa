package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
)

var ErrUserInitiatedExit = errors.New("user exit")

var quitters = []string{"q", "quit", "exit"}

// IsQuitWord reports if the trimmed input asks to leave the session.
func IsQuitWord(input string) bool {
	return slices.Contains(quitters, strings.ToLower(strings.TrimSpace(input)))
}

// ReadUserInput reads one line from r. Interrupts, quit words and a closed
// input all yield ErrUserInitiatedExit.
func ReadUserInput(ctx context.Context, r *bufio.Reader) (string, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)

	type result struct {
		line string
		err  error
	}
	resChan := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		resChan <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrUserInitiatedExit
	case <-sigChan:
		return "", ErrUserInitiatedExit
	case res := <-resChan:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("failed to read user input: %w", res.err)
		}
		trimmed := strings.TrimSpace(res.line)
		if IsQuitWord(trimmed) || (res.err != nil && trimmed == "") {
			return "", ErrUserInitiatedExit
		}
		return trimmed, nil
	}
}
