// Package gateway selects and sets up the language model vendor for a model.
package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/gateway/gemini"
	"github.com/baalimago/solvr/internal/gateway/groq"
	"github.com/baalimago/solvr/internal/gateway/mock"
	"github.com/baalimago/solvr/internal/gateway/ollama"
	"github.com/baalimago/solvr/internal/gateway/openai"
	"github.com/baalimago/solvr/internal/models"
)

// TestModel selects the echo gateway, which needs no credential.
const TestModel = "test"

// Settings for constructing a gateway. The APIKey is passed in explicitly,
// it's never looked up from the environment by the gateways themselves.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
	APIKey      string
	// RateLimitMaxWait caps the pause on a spent token budget for vendors
	// reporting one. Zero waits as long as needed.
	RateLimitMaxWait time.Duration
}

type vendor int

const (
	vendorGroq vendor = iota
	vendorOpenAI
	vendorGemini
	vendorOllama
	vendorTest
)

func vendorOf(model string) vendor {
	switch {
	case model == TestModel || strings.HasPrefix(model, "mock"):
		return vendorTest
	case strings.HasPrefix(model, ollama.Prefix):
		return vendorOllama
	case strings.Contains(model, "gpt") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4"):
		return vendorOpenAI
	case strings.Contains(model, "gemini"):
		return vendorGemini
	default:
		// llama, mixtral, qwen, deepseek-r1-distill etc are all served by groq
		return vendorGroq
	}
}

// APIKeyEnv returns the environment variable holding the credential for the
// vendor serving model. Empty if the model needs no credential.
func APIKeyEnv(model string) string {
	switch vendorOf(model) {
	case vendorOpenAI:
		return "OPENAI_API_KEY"
	case vendorGemini:
		return "GEMINI_API_KEY"
	case vendorTest, vendorOllama:
		return ""
	default:
		return "GROQ_API_KEY"
	}
}

// New by checking the model for which vendor to use, then setting up a
// completer for it
func New(ctx context.Context, s Settings) (models.Completer, error) {
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("creating gateway for model: '%v'\n", s.Model))
	}
	switch vendorOf(s.Model) {
	case vendorTest:
		return mock.Echo{}, nil
	case vendorOpenAI:
		g := openai.GptDefault
		g.Model = s.Model
		g.Temperature = s.Temperature
		g.MaxTokens = s.MaxTokens
		g.RateLimitMaxWait = s.RateLimitMaxWait
		if err := g.Setup(s.APIKey); err != nil {
			return nil, fmt.Errorf("failed to setup openai gateway: %w", err)
		}
		return &g, nil
	case vendorGemini:
		g := gemini.Default
		g.Model = s.Model
		g.Temperature = float32(s.Temperature)
		g.MaxTokens = int32(s.MaxTokens)
		if err := g.Setup(ctx, s.APIKey); err != nil {
			return nil, fmt.Errorf("failed to setup gemini gateway: %w", err)
		}
		return &g, nil
	case vendorOllama:
		g := ollama.Default
		g.Model = ollama.ModelName(s.Model)
		g.Temperature = s.Temperature
		g.MaxTokens = s.MaxTokens
		if err := g.Setup(s.APIKey); err != nil {
			return nil, fmt.Errorf("failed to setup ollama gateway: %w", err)
		}
		return &g, nil
	default:
		g := groq.Default
		g.Model = s.Model
		g.Temperature = s.Temperature
		g.MaxTokens = s.MaxTokens
		g.RateLimitMaxWait = s.RateLimitMaxWait
		if err := g.Setup(s.APIKey); err != nil {
			return nil, fmt.Errorf("failed to setup groq gateway: %w", err)
		}
		return &g, nil
	}
}
