package generic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/solvr/internal/models"
)

// roundTripFunc allows injecting errors in http.Client
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestCompleter(t *testing.T, url string) *Completer {
	t.Helper()
	temp, maxTokens := 0.0, 2048
	c := &Completer{
		Model:       "llama-3.3-70b-versatile",
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	}
	if err := c.Setup("sekret", url, "DEBUG_TEST"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return c
}

func TestSetup_EmptyKey(t *testing.T) {
	c := &Completer{}
	err := c.Setup("", "http://example.invalid", "")
	if err == nil {
		t.Fatal("expected error on empty api key")
	}
}

func TestComplete_DoError(t *testing.T) {
	c := newTestCompleter(t, "http://example.invalid")
	c.SetHTTPClient(&http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("boom")
	})})

	_, err := c.Complete(context.Background(), models.CompletionRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "failed to execute request") {
		t.Fatalf("expected execute request error, got: %v", err)
	}
	if !errors.Is(err, models.ErrGateway) {
		t.Fatalf("expected ErrGateway, got: %v", err)
	}
}

func TestComplete_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer ts.Close()

	c := newTestCompleter(t, ts.URL)
	_, err := c.Complete(context.Background(), models.CompletionRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	testboil.AssertStringContains(t, err.Error(), "unexpected status code")
	testboil.AssertStringContains(t, err.Error(), "Invalid API Key")
	if !errors.Is(err, models.ErrGateway) {
		t.Fatalf("expected ErrGateway, got: %v", err)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"1","choices":[]}`))
	}))
	defer ts.Close()

	c := newTestCompleter(t, ts.URL)
	_, err := c.Complete(context.Background(), models.CompletionRequest{Prompt: "x"})
	if !errors.Is(err, models.ErrGateway) {
		t.Fatalf("expected ErrGateway, got: %v", err)
	}
}

func TestComplete_HappyPath(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl","choices":[{"index":0,"message":{"role":"assistant","content":"Final Answer: 4"},"finish_reason":"stop"}]}`))
	}))
	defer ts.Close()

	c := newTestCompleter(t, ts.URL)
	out, err := c.Complete(context.Background(), models.CompletionRequest{
		Prompt: "Question: 2+2",
		Stop:   []string{"\nObservation"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	testboil.FailTestIfDiff(t, out, "Final Answer: 4")
	testboil.FailTestIfDiff(t, gotAuth, "Bearer sekret")

	if v, ok := gotBody["stream"].(bool); !ok || v {
		t.Fatalf("expected stream=false, got: %T %v", gotBody["stream"], gotBody["stream"])
	}
	if v, ok := gotBody["temperature"].(float64); !ok || v != 0 {
		t.Fatalf("expected temperature=0 to be sent, got: %v", gotBody["temperature"])
	}
	if v, ok := gotBody["max_tokens"].(float64); !ok || v != 2048 {
		t.Fatalf("expected max_tokens=2048, got: %v", gotBody["max_tokens"])
	}
	stop, ok := gotBody["stop"].([]any)
	if !ok || len(stop) != 1 || stop[0] != "\nObservation" {
		t.Fatalf("unexpected stop: %v", gotBody["stop"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected exactly one message, got: %v", gotBody["messages"])
	}
	first, _ := msgs[0].(map[string]any)
	testboil.FailTestIfDiff(t, first["role"], any("user"))
	testboil.FailTestIfDiff(t, first["content"], any("Question: 2+2"))
}

func TestComplete_UpdatesRateLimiter(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(DefaultRemainingHeader, "12")
		w.Header().Set(DefaultResetHeader, "7.66s")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer ts.Close()

	c := newTestCompleter(t, ts.URL)
	c.SetRateLimiter(NewRateLimiter(DefaultRemainingHeader, DefaultResetHeader))
	if _, err := c.Complete(context.Background(), models.CompletionRequest{Prompt: "x"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	testboil.FailTestIfDiff(t, c.limiter.remainingTokens, 12)
	if c.limiter.resetAt.IsZero() {
		t.Fatal("expected reset time to be set")
	}
}

func TestComplete_RateLimitMaxWaitExceeded(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set(DefaultRemainingHeader, "0")
		w.Header().Set(DefaultResetHeader, "1m")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer ts.Close()

	c := newTestCompleter(t, ts.URL)
	rl := NewRateLimiter(DefaultRemainingHeader, DefaultResetHeader)
	rl.MaxWait = time.Second
	c.SetRateLimiter(rl)
	if _, err := c.Complete(context.Background(), models.CompletionRequest{Prompt: "x"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := c.Complete(context.Background(), models.CompletionRequest{Prompt: "x"})
	var rlErr *models.ErrRateLimit
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected ErrRateLimit, got: %v", err)
	}
	if !errors.Is(err, models.ErrGateway) {
		t.Fatalf("expected ErrGateway, got: %v", err)
	}
	testboil.FailTestIfDiff(t, calls, 1)
}

func TestComplete_ReturnsOnContextCancel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	models.Completer_Test(t, newTestCompleter(t, ts.URL))
}
