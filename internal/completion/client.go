// Package completion talks to the language model that estimates meals.
package completion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ProviderOpenAI  = "openai"
	ProviderGateway = "gateway"
)

type Config struct {
	Provider       string
	BaseURL        string
	APIKey         string
	Model          string
	ResponseFormat string
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
}

// Request describes a meal either by text or by a JPEG photo.
type Request struct {
	Description string
	Image       []byte
}

// NetworkError reports a failed or unusable call to the completion service.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ResponseFormat == "" {
		cfg.ResponseFormat = FormatJSON
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

type imageURL struct {
	URL string `json:"url"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// Complete sends one prompt and returns the raw model text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	msg := c.buildMessage(req)
	if c.cfg.Provider == ProviderGateway {
		return c.callGateway(ctx, msg)
	}
	return c.chatCompletion(ctx, msg)
}

func (c *Client) buildMessage(req Request) chatMessage {
	if len(req.Image) == 0 {
		return chatMessage{Role: "user", Content: TextPrompt(req.Description, c.cfg.ResponseFormat)}
	}
	return chatMessage{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: ImagePrompt()},
			{Type: "image_url", ImageURL: &imageURL{URL: ImageDataURI(req.Image)}},
		},
	}
}

// ImageDataURI encodes a JPEG as a data URI.
func ImageDataURI(jpeg []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
}

func (c *Client) chatCompletion(ctx context.Context, msg chatMessage) (string, error) {
	body := map[string]interface{}{
		"model":       c.cfg.Model,
		"messages":    []chatMessage{msg},
		"max_tokens":  c.cfg.MaxTokens,
		"temperature": c.cfg.Temperature,
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	if err := c.post(ctx, url, body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", &NetworkError{Op: "chat completion", Err: fmt.Errorf("empty choices")}
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func (c *Client) post(ctx context.Context, url string, payload, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return &NetworkError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return &NetworkError{Op: "read error body", StatusCode: resp.StatusCode, Err: err}
		}
		return &NetworkError{Op: "request failed", StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", strings.TrimSpace(string(bodyBytes)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: "decode response", Err: err}
	}
	return nil
}
