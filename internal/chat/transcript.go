package chat

import (
	"github.com/baalimago/solvr/internal/models"
)

// DefaultGreeting seeds every new or cleared transcript.
const DefaultGreeting = "Hi 👋 Ask me any math question!"

// Transcript is the ordered list of turns displayed to the user. It's
// append-only apart from Clear, and not safe for concurrent writers.
type Transcript struct {
	greeting string
	turns    []models.Turn
}

// NewTranscript seeded with one assistant greeting. Empty greeting uses
// DefaultGreeting.
func NewTranscript(greeting string) *Transcript {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	t := &Transcript{greeting: greeting}
	t.Clear()
	return t
}

func (t *Transcript) Append(turn models.Turn) {
	t.turns = append(t.turns, turn)
}

// Clear resets the transcript to only the greeting.
func (t *Transcript) Clear() {
	t.turns = []models.Turn{{Role: models.RoleAssistant, Content: t.greeting}}
}

// Turns returns a copy of all turns, oldest first.
func (t *Transcript) Turns() []models.Turn {
	cp := make([]models.Turn, len(t.turns))
	copy(cp, t.turns)
	return cp
}

func (t *Transcript) Len() int {
	return len(t.turns)
}
