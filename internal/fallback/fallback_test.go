package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/solvr/internal/models"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type routerFunc func(ctx context.Context, q string) (string, error)

func (f routerFunc) Route(ctx context.Context, q string) (string, error) {
	return f(ctx, q)
}

type solverFunc func(ctx context.Context, q string) (string, error)

func (f solverFunc) Solve(ctx context.Context, q string) (string, error) {
	return f(ctx, q)
}

type turns []models.Turn

func (t *turns) Append(turn models.Turn) {
	*t = append(*t, turn)
}

func routeReturns(out string, err error) routerFunc {
	return func(context.Context, string) (string, error) {
		return out, err
	}
}

func TestAnswer(t *testing.T) {
	solved := "1. 840 * 0.15 = 126\nFinal Answer: 126"
	tcs := []struct {
		desc        string
		router      routerFunc
		wantAnswer  string
		wantSolving bool
	}{
		{
			desc:       "route answer is used",
			router:     routeReturns("126.0", nil),
			wantAnswer: "126.0",
		},
		{
			desc:        "route error falls back",
			router:      routeReturns("", errors.New("failed to parse model output")),
			wantAnswer:  solved,
			wantSolving: true,
		},
		{
			desc:        "empty route output falls back",
			router:      routeReturns("", nil),
			wantAnswer:  solved,
			wantSolving: true,
		},
		{
			desc:        "whitespace route output falls back",
			router:      routeReturns(" \n\t", nil),
			wantAnswer:  solved,
			wantSolving: true,
		},
		{
			desc:        "early stop marker falls back",
			router:      routeReturns("Agent stopped due to iteration limit or time limit.", nil),
			wantAnswer:  solved,
			wantSolving: true,
		},
		{
			desc:        "marker substring anywhere falls back",
			router:      routeReturns("well... Agent stopped thinking", nil),
			wantAnswer:  solved,
			wantSolving: true,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.desc, func(t *testing.T) {
			solverCalls := 0
			c := New(tc.router, solverFunc(func(_ context.Context, q string) (string, error) {
				solverCalls++
				testboil.FailTestIfDiff(t, q, "What is 15% of 840?")
				return solved, nil
			}))
			var tr turns
			var got string
			testboil.CaptureStdout(t, func(t *testing.T) {
				got = c.Answer(context.Background(), "What is 15% of 840?", &tr)
			})
			testboil.FailTestIfDiff(t, got, tc.wantAnswer)
			testboil.FailTestIfDiff(t, solverCalls == 1, tc.wantSolving)
			want := turns{{Role: models.RoleAssistant, Content: tc.wantAnswer}}
			if diff := cmp.Diff(want, tr); diff != "" {
				t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnswer_BothFail(t *testing.T) {
	c := New(
		routeReturns("", errors.New("route broke")),
		solverFunc(func(context.Context, string) (string, error) {
			return "", errors.New("rate limited by vendor")
		}),
	)
	var tr turns
	var got string
	testboil.CaptureStdout(t, func(t *testing.T) {
		got = c.Answer(context.Background(), "q", &tr)
	})
	testboil.AssertStringContains(t, got, "⚠️ Error:")
	testboil.AssertStringContains(t, got, "rate limited by vendor")
	testboil.FailTestIfDiff(t, len(tr), 1)
	testboil.FailTestIfDiff(t, tr[0].Content, got)
}

func TestAnswer_RouterPanicFallsBack(t *testing.T) {
	c := New(
		routerFunc(func(context.Context, string) (string, error) {
			panic("router exploded")
		}),
		solverFunc(func(context.Context, string) (string, error) {
			return "Final Answer: 4", nil
		}),
	)
	var tr turns
	var got string
	testboil.CaptureStdout(t, func(t *testing.T) {
		got = c.Answer(context.Background(), "What is 2+2?", &tr)
	})
	testboil.FailTestIfDiff(t, got, "Final Answer: 4")
	want := turns{{Role: models.RoleAssistant, Content: "Final Answer: 4"}}
	if diff := cmp.Diff(want, tr); diff != "" {
		t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswer_NeverPanics(t *testing.T) {
	c := New(
		routerFunc(func(context.Context, string) (string, error) {
			panic("router exploded")
		}),
		solverFunc(func(context.Context, string) (string, error) {
			panic("solver exploded")
		}),
	)
	var tr turns
	var got string
	testboil.CaptureStdout(t, func(t *testing.T) {
		got = c.Answer(context.Background(), "q", &tr)
	})
	testboil.AssertStringContains(t, got, "⚠️ Error:")
	testboil.AssertStringContains(t, got, "solver exploded")
	testboil.FailTestIfDiff(t, len(tr), 1)
	testboil.FailTestIfDiff(t, tr[0].Content, got)
}
