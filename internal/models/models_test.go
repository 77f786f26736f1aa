package models

import (
	"context"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestLastQuestion(t *testing.T) {
	tcs := []struct {
		name   string
		prompt string
		want   string
	}{
		{"no question line", "just text", "just text"},
		{"single", "Rules...\n\nQuestion: What is 2+2?\n", "What is 2+2?"},
		{"picks last", "Question: the input question\nBegin!\n\nQuestion: 15% of 840?\nThought:", "15% of 840?"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			testboil.FailTestIfDiff(t, LastQuestion(tc.prompt), tc.want)
		})
	}
}

func TestCompleterFunc(t *testing.T) {
	var got CompletionRequest
	c := CompleterFunc(func(_ context.Context, req CompletionRequest) (string, error) {
		got = req
		return "ok", nil
	})
	out, err := c.Complete(context.Background(), CompletionRequest{Prompt: "p", Stop: []string{"\nObservation"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, out, "ok")
	testboil.FailTestIfDiff(t, got.Prompt, "p")
	testboil.FailTestIfDiff(t, len(got.Stop), 1)
}
