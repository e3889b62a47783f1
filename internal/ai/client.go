// Package ai is a thin client for the external text-generation service.
// Inputs are plain-text prompts; outputs are unstructured text. The service
// is best-effort: callers are expected to downgrade every failure to a
// fallback string.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrDisabled is returned when no generation backend is configured. The UI
// must keep working without AI.
var ErrDisabled = errors.New("ai generation is not configured")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls the generation service over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient creates a generation client. Empty endpoint or key yields a
// client that reports ErrDisabled instead of crashing callers.
func NewClient(endpoint, apiKey, model string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Enabled reports whether a generation backend is configured.
func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

// Generate sends the prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	payload, err := json.Marshal(map[string]string{
		"model":  c.model,
		"prompt": prompt,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("generation request failed")
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Msg("generation returned non-success status")
		return "", fmt.Errorf("generation failed (HTTP %d)", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}

	c.log.Debug().
		Str("model", c.model).
		Dur("latency", time.Since(start)).
		Int("prompt_len", len(prompt)).
		Msg("generation request")

	return out.Text, nil
}
