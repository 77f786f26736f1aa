package openai

import (
	"fmt"
	"time"

	"github.com/baalimago/solvr/internal/gateway/generic"
)

const ChatURL = "https://api.openai.com/v1/chat/completions"

var GptDefault = ChatGPT{
	Model:       "gpt-4.1-mini",
	Temperature: 0,
	MaxTokens:   2048,
	URL:         ChatURL,
}

type ChatGPT struct {
	generic.Completer
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	URL         string  `json:"url"`
	// RateLimitMaxWait is the longest pause accepted for a spent token
	// budget. Zero waits for however long the vendor asks.
	RateLimitMaxWait time.Duration `json:"rate_limit_max_wait"`
}

func (g *ChatGPT) Setup(apiKey string) error {
	g.Completer.URL = g.URL
	err := g.Completer.Setup(apiKey, ChatURL, "DEBUG_OPENAI")
	if err != nil {
		return fmt.Errorf("failed to setup completer: %w", err)
	}
	g.Completer.Model = g.Model
	g.Completer.MaxTokens = &g.MaxTokens
	g.Completer.Temperature = &g.Temperature
	rl := generic.NewRateLimiter(generic.DefaultRemainingHeader, generic.DefaultResetHeader)
	rl.MaxWait = g.RateLimitMaxWait
	g.Completer.SetRateLimiter(rl)
	return nil
}
