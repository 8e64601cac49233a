package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// OpenAIAPIEndpoint is the chat-completions endpoint.
	OpenAIAPIEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is the model used when a request names none.
	DefaultModel = "gpt-4o"
	// DefaultMaxTokens bounds response length when a request sets none.
	DefaultMaxTokens = 1000
)

// Client wraps the completion capability behind a cached gateway. All calls
// are blocking; cancellation and deadlines come from the caller's context.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
	cache      *Cache
}

// NewClient creates a completion gateway. The cache is injected so callers
// control its bound and lifetime; a nil cache disables caching entirely.
func NewClient(apiKey, model string, cache *Cache) (client *Client) {
	if model == "" {
		model = DefaultModel
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: OpenAIAPIEndpoint,
		cache:    cache,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// Complete issues one completion request and returns the response text. When
// the request (with defaults applied) matches a cached entry and caching is
// enabled, the cached text is returned without a network call. Failures are
// returned as *CompletionError; Complete never retries.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (text string, err error) {
	if req.Model == "" {
		req.Model = c.model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	useCache := c.cache != nil && !req.NoCache
	key := ""
	if c.cache != nil {
		key = cacheKey(req)
	}

	if useCache {
		var ok bool
		text, ok = c.cache.Get(key)
		if ok {
			slog.Debug("completion cache hit", "model", req.Model, "key", key[:12])
			return text, err
		}
	}

	text, err = c.sendRequest(ctx, req)
	if err != nil {
		return text, err
	}

	if c.cache != nil {
		c.cache.Put(key, text)
	}

	return text, err
}

// sendRequest performs the HTTP round trip.
func (c *Client) sendRequest(ctx context.Context, req CompletionRequest) (text string, err error) {
	wireReq := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.WantJSON {
		wireReq.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var reqBody []byte
	reqBody, err = json.Marshal(wireReq)
	if err != nil {
		err = &CompletionError{Cause: errors.Wrap(err, "failed to marshal request")}
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = &CompletionError{Cause: errors.Wrap(err, "failed to create HTTP request")}
		return text, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = &CompletionError{Cause: errors.Wrap(err, "HTTP request failed")}
		return text, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = &CompletionError{Cause: errors.Wrap(err, "failed to read response body")}
		return text, err
	}

	if resp.StatusCode != http.StatusOK {
		err = &CompletionError{
			StatusCode: resp.StatusCode,
			Cause:      errors.Errorf("%s", string(respBody)),
		}
		return text, err
	}

	var wireResp chatResponse
	err = json.Unmarshal(respBody, &wireResp)
	if err != nil {
		err = &CompletionError{Cause: errors.Wrapf(err, "failed to parse completion response: %s", string(respBody))}
		return text, err
	}

	if len(wireResp.Choices) == 0 {
		err = &CompletionError{Cause: errors.New("no choices in completion response")}
		return text, err
	}

	text = strings.TrimSpace(wireResp.Choices[0].Message.Content)
	if req.WantJSON {
		text = StripMarkdownCodeFences(text)
	}

	slog.Debug("completion call finished",
		"model", req.Model,
		"duration", time.Since(start).Round(time.Millisecond),
		"prompt_tokens", wireResp.Usage.PromptTokens,
		"completion_tokens", wireResp.Usage.CompletionTokens)

	return text, err
}

// StripMarkdownCodeFences removes a ```json fence wrapper from a response.
// Models sometimes wrap structured output in fences despite instructions.
func StripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = text

	if len(cleaned) > 7 && cleaned[:7] == "```json" {
		start := 7
		for start < len(cleaned) && cleaned[start] != '\n' {
			start++
		}
		start++

		end := len(cleaned)
		if end > 3 && cleaned[end-3:] == "```" {
			end -= 3
		}

		for end > start && (cleaned[end-1] == '\n' || cleaned[end-1] == ' ' || cleaned[end-1] == '\r') {
			end--
		}

		if start <= end {
			cleaned = cleaned[start:end]
		}
	}

	return cleaned
}
