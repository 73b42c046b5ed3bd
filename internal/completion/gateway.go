package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// callGateway asks an MCP proxy to run its create_completion tool.
func (c *Client) callGateway(ctx context.Context, msg chatMessage) (string, error) {
	url := fmt.Sprintf("%s/openrouter-gateway", strings.TrimRight(c.cfg.BaseURL, "/"))

	requestData := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name": "create_completion",
			"arguments": map[string]interface{}{
				"model":       c.cfg.Model,
				"messages":    []chatMessage{msg},
				"max_tokens":  c.cfg.MaxTokens,
				"temperature": c.cfg.Temperature,
			},
		},
	}

	var mcpResponse struct {
		Result *struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := c.post(ctx, url, requestData, &mcpResponse); err != nil {
		return "", err
	}

	if mcpResponse.Error != nil {
		return "", &NetworkError{Op: "gateway call", Err: fmt.Errorf("rpc error %d: %s", mcpResponse.Error.Code, mcpResponse.Error.Message)}
	}
	if mcpResponse.Result == nil || len(mcpResponse.Result.Content) == 0 {
		return "", &NetworkError{Op: "gateway call", Err: fmt.Errorf("unexpected response format")}
	}

	return unwrapGatewayText(mcpResponse.Result.Content[0].Text), nil
}

// unwrapGatewayText returns the "content" field when the gateway wrapped the
// completion in a JSON envelope, and the text unchanged otherwise.
func unwrapGatewayText(text string) string {
	var envelope struct {
		Content *string `json:"content"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err == nil && envelope.Content != nil {
		return strings.TrimSpace(*envelope.Content)
	}
	return strings.TrimSpace(text)
}
