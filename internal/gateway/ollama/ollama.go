package ollama

import (
	"fmt"
	"strings"

	"github.com/baalimago/solvr/internal/gateway/generic"
)

const (
	ChatURL = "http://localhost:11434/v1/chat/completions"
	// Prefix marks a model as served by a local ollama instance, ex: 'ollama:llama3'.
	Prefix = "ollama:"
	// placeholderKey is accepted by ollama, which doesn't authenticate.
	placeholderKey = "ollama"
)

var Default = Ollama{
	Model:       "llama3",
	Temperature: 0,
	MaxTokens:   2048,
	URL:         ChatURL,
}

type Ollama struct {
	generic.Completer
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	URL         string  `json:"url"`
}

// ModelName strips the ollama prefix, ex: 'ollama:llama3' -> 'llama3'.
// Falls back to the default model if nothing remains.
func ModelName(model string) string {
	m := strings.TrimPrefix(model, Prefix)
	if m == "" {
		return Default.Model
	}
	return m
}

func (o *Ollama) Setup(apiKey string) error {
	if apiKey == "" {
		apiKey = placeholderKey
	}
	o.Completer.URL = o.URL
	err := o.Completer.Setup(apiKey, ChatURL, "DEBUG_OLLAMA")
	if err != nil {
		return fmt.Errorf("failed to setup completer: %w", err)
	}
	o.Completer.Model = o.Model
	o.Completer.MaxTokens = &o.MaxTokens
	o.Completer.Temperature = &o.Temperature
	return nil
}
