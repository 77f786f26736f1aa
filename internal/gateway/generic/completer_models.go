package generic

import (
	"net/http"
)

// Completer follows the chat-completions model shared by OpenAI, Groq, Mistral
// and friends. The prompt is sent as one user message, non-streamed.
type Completer struct {
	Model       string
	MaxTokens   *int
	Temperature *float64
	TopP        *float64
	URL         string
	client      *http.Client
	apiKey      string
	limiter     RateLimiter
	debug       bool
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type req struct {
	Model       string    `json:"model,omitempty"`
	Messages    []message `json:"messages,omitempty"`
	Stream      bool      `json:"stream"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
}

type chatCompletion struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int      `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorBody is the error envelope used by OpenAI-compatible vendors.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}
