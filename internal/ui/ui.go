// Package ui holds what the terminal surfaces have in common: titles, help
// and slash commands.
package ui

import (
	"fmt"
	"strings"

	"github.com/baalimago/solvr/internal/router"
	"github.com/baalimago/solvr/internal/utils"
)

const (
	Title   = "🧠 Math Problem Solver AI"
	Caption = "Solve math, algebra, derivatives, and word problems step-by-step."
)

// Examples shown under 'Try asking'.
var Examples = []string{
	"Derivative of x^3 + 2x?",
	"Solve 2x² - 5x + 3 = 0",
	"What is 15% of 840?",
	"A train at 60mph for 2.5hrs, distance?",
}

type Command int

const (
	CmdNone Command = iota
	CmdClear
	CmdHelp
	CmdQuit
)

// ParseCommand checks if the input is a slash command or a quit word.
func ParseCommand(input string) Command {
	in := strings.ToLower(strings.TrimSpace(input))
	switch {
	case in == "/clear":
		return CmdClear
	case in == "/help":
		return CmdHelp
	case utils.IsQuitWord(in):
		return CmdQuit
	default:
		return CmdNone
	}
}

// HelpText as markdown.
func HelpText() string {
	var sb strings.Builder
	sb.WriteString("### 🧰 Tools Used\n\n")
	sb.WriteString("- ✅ Reasoning Tool (Algebra & Calculus)\n")
	sb.WriteString("- ✅ Math Tool (Numeric Only)\n\n")
	sb.WriteString("### 💡 Try asking\n\n")
	for _, e := range Examples {
		sb.WriteString(fmt.Sprintf("- `%v`\n", e))
	}
	sb.WriteString("\n### ⚙️ Commands\n\n")
	sb.WriteString("- `/clear` clears the chat\n")
	sb.WriteString("- `/help` shows this help\n")
	sb.WriteString("- `quit`, `exit` or `q` leaves\n")
	return sb.String()
}

// FormatStep as a compact, single-block description of one router step.
func FormatStep(n int, s router.Step) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("step %v", n))
	if s.Thought != "" {
		sb.WriteString(fmt.Sprintf("\n  thought: %v", oneLine(s.Thought)))
	}
	sb.WriteString(fmt.Sprintf("\n  action: %v", s.Tool))
	sb.WriteString(fmt.Sprintf("\n  input: %v", oneLine(s.Input)))
	sb.WriteString(fmt.Sprintf("\n  observation: %v", oneLine(s.Observation)))
	return sb.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
