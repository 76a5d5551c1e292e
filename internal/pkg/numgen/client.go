// Package numgen asks an OpenAI-compatible chat-completions endpoint for a
// set of lucky numbers with an explanation. Callers must treat it as
// fallible and have a local fallback ready.
package numgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vietanh2810/lucky-ticket-api/internal/config"
	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 10 * time.Second

	systemPrompt = "You are an expert lottery statistician and data analyst " +
		"specializing in Vietlott Power 6/55. Combine historical frequency data, " +
		"mathematical distribution and advanced patterns."

	userPrompt = `Pick the 6 most promising jackpot numbers, all distinct, between 1 and 55.
Add a short, upbeat one-paragraph analysis of why these numbers are lucky.
Respond with pure JSON only, no markdown, in exactly this shape:
{"numbers": [n1, n2, n3, n4, n5, n6], "explanation": "..."}`
)

var ErrEmptyResponse = errors.New("model returned an empty response")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(conf *config.SuggestConfig) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		model:   defaultModel,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	if conf != nil {
		c.apiKey = conf.APIKey
		if conf.BaseURL != "" {
			c.baseURL = strings.TrimSuffix(conf.BaseURL, "/")
		}
		if conf.Model != "" {
			c.model = conf.Model
		}
		if conf.TimeoutSeconds > 0 {
			c.httpClient.Timeout = time.Duration(conf.TimeoutSeconds) * time.Second
		}
	}

	return c
}

// GenerateNumbers asks the model for a suggestion. The returned numbers are
// not validated here; the caller decides what counts as usable.
func (c *Client) GenerateNumbers(ctx context.Context) (domain.Suggestion, error) {
	if c.apiKey == "" {
		return domain.Suggestion{}, errors.New("suggestion API key is not configured")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Suggestion{}, fmt.Errorf("chat completions returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return domain.Suggestion{}, fmt.Errorf("json.Decode -> %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return domain.Suggestion{}, ErrEmptyResponse
	}

	return parseSuggestion(chatResp.Choices[0].Message.Content)
}

// parseSuggestion extracts the JSON object from the model reply, which may
// be wrapped in prose or a markdown fence.
func parseSuggestion(content string) (domain.Suggestion, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return domain.Suggestion{}, fmt.Errorf("no JSON object in model reply: %q", content)
	}

	var suggestion domain.Suggestion
	if err := json.Unmarshal([]byte(content[start:end+1]), &suggestion); err != nil {
		return domain.Suggestion{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return suggestion, nil
}
