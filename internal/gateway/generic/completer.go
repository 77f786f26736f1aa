package generic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/solvr/internal/models"
)

// Complete sends the prompt as a single user message and returns the content
// of the first choice.
func (c *Completer) Complete(ctx context.Context, cr models.CompletionRequest) (string, error) {
	if err := c.limiter.WaitIfNeeded(ctx); err != nil {
		return "", fmt.Errorf("%w: failed to wait for rate limit: %w", models.ErrGateway, err)
	}
	req, err := c.createRequest(ctx, cr)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", models.ErrGateway, err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %w", models.ErrGateway, err)
	}
	defer res.Body.Close()

	if err := c.limiter.UpdateFromHeaders(res.Header); err != nil && c.debug {
		ancli.PrintWarn(fmt.Sprintf("failed to update rate limiter: %v\n", err))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %w", models.ErrGateway, err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code: %v, body: %v", models.ErrGateway, res.Status, errorMessage(body))
	}

	var completion chatCompletion
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", models.ErrGateway, err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("generic completer response: %v\n", debug.IndentedJsonFmt(completion)))
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", models.ErrGateway)
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *Completer) createRequest(ctx context.Context, cr models.CompletionRequest) (*http.Request, error) {
	reqData := req{
		Model:       c.Model,
		Messages:    []message{{Role: "user", Content: cr.Prompt}},
		Stream:      false,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		TopP:        c.TopP,
		Stop:        cr.Stop,
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("generic completer request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.apiKey))
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// errorMessage extracts the vendor error message if the body follows the
// usual envelope, otherwise the raw body is returned
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
		return eb.Error.Message
	}
	return strings.TrimSpace(string(body))
}
