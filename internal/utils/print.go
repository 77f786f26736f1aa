package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/baalimago/solvr/internal/models"
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown with glamour, wrapping at width. Falls back to the content
// as is if rendering fails.
func RenderMarkdown(content string, width int) (rendered string) {
	defer func() {
		if r := recover(); r != nil {
			rendered = content
		}
	}()
	if width <= 0 {
		width = defaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

// AttemptPrettyPrint the turn prefixed by its colored role. Unless raw, the
// content is rendered as markdown.
func AttemptPrettyPrint(w io.Writer, turn models.Turn, raw bool) error {
	if raw {
		_, err := fmt.Fprintln(w, turn.Content)
		return err
	}
	label := Colorize(RoleColor(turn.Role), string(turn.Role))
	content := strings.TrimRight(RenderMarkdown(turn.Content, TermWidth()), "\n")
	if _, err := fmt.Fprintf(w, "%v:\n%v\n", label, content); err != nil {
		return fmt.Errorf("failed to print turn: %w", err)
	}
	return nil
}
