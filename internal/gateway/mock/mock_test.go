package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/solvr/internal/models"
)

func TestEcho(t *testing.T) {
	out, err := Echo{}.Complete(context.Background(), models.CompletionRequest{Prompt: "Rules\n\nQuestion: what is 2+2?\nThought:"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, out, "Final Answer: what is 2+2?")
}

func TestEcho_ContextCancel(t *testing.T) {
	models.Completer_Test(t, Echo{})
}

func TestScripted(t *testing.T) {
	s := &Scripted{Responses: []Response{
		{Text: "first"},
		{Err: errors.New("boom")},
	}}
	ctx := context.Background()

	out, err := s.Complete(ctx, models.CompletionRequest{Prompt: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, out, "first")

	_, err = s.Complete(ctx, models.CompletionRequest{Prompt: "b"})
	if !errors.Is(err, models.ErrGateway) {
		t.Fatalf("expected ErrGateway, got: %v", err)
	}

	_, err = s.Complete(ctx, models.CompletionRequest{Prompt: "c"})
	if !errors.Is(err, ErrScriptExhausted) {
		t.Fatalf("expected ErrScriptExhausted, got: %v", err)
	}
	testboil.FailTestIfDiff(t, s.Calls(), 3)
	testboil.FailTestIfDiff(t, s.Requests()[1].Prompt, "b")
}

func TestScripted_Repeat(t *testing.T) {
	s := NewScripted("same")
	s.Repeat = true
	for range 3 {
		out, err := s.Complete(context.Background(), models.CompletionRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, out, "same")
	}
}
