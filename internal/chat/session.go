// Package chat keeps the conversation of one interactive session.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/fallback"
	"github.com/baalimago/solvr/internal/models"
	"github.com/google/uuid"
)

var ErrEmptyInput = errors.New("input is empty")

// Answerer is satisfied by the fallback controller.
type Answerer interface {
	Answer(ctx context.Context, question string, transcript fallback.Appender) string
}

// Session binds a transcript to the controller answering into it.
type Session struct {
	ID         string
	transcript *Transcript
	answerer   Answerer
	debug      bool
}

func NewSession(a Answerer, greeting string) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		transcript: NewTranscript(greeting),
		answerer:   a,
		debug:      misc.Truthy(os.Getenv("DEBUG")),
	}
	if s.debug {
		ancli.PrintOK(fmt.Sprintf("started session: '%v'\n", s.ID))
	}
	return s
}

// Submit the input as a user turn and return the assistant turn answering it.
func (s *Session) Submit(ctx context.Context, input string) (models.Turn, error) {
	q := strings.TrimSpace(input)
	if q == "" {
		return models.Turn{}, ErrEmptyInput
	}
	s.transcript.Append(models.Turn{Role: models.RoleUser, Content: q})
	answer := s.answerer.Answer(ctx, q, s.transcript)
	if s.debug {
		ancli.PrintOK(fmt.Sprintf("session: '%v', turns: %v\n", s.ID, s.transcript.Len()))
	}
	return models.Turn{Role: models.RoleAssistant, Content: answer}, nil
}

func (s *Session) Clear() {
	s.transcript.Clear()
}

func (s *Session) Turns() []models.Turn {
	return s.transcript.Turns()
}
