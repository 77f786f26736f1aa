package gemini

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/models"
	"google.golang.org/genai"
)

var Default = Gemini{
	Model:       "gemini-2.5-flash",
	Temperature: 0,
	MaxTokens:   2048,
}

// Gemini talks to the Gemini API through the genai SDK.
type Gemini struct {
	Model       string  `json:"model"`
	MaxTokens   int32   `json:"max_tokens"`
	Temperature float32 `json:"temperature"`

	models generator
	debug  bool
}

// generator is the subset of *genai.Models in use, to allow stubbing
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (g *Gemini) Setup(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}
	g.models = client.Models
	g.debug = misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_GEMINI"))
	return nil
}

func (g *Gemini) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	if g.models == nil {
		return "", fmt.Errorf("%w: gemini client not setup", models.ErrGateway)
	}
	temp := g.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: g.MaxTokens,
		StopSequences:   req.Stop,
	}
	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	res, err := g.models.GenerateContent(ctx, g.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate content: %w", models.ErrGateway, err)
	}
	text := res.Text()
	if g.debug {
		ancli.PrintOK(fmt.Sprintf("gemini response: %q\n", text))
	}
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", models.ErrGateway)
	}
	return text, nil
}
