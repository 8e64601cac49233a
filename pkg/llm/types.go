package llm

import "fmt"

// Message is a role-tagged prompt segment. The gateway does not interpret
// message content.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one call to the completion capability.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"` // empty means the client default
	WantJSON    bool      `json:"want_json,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	NoCache     bool      `json:"-"`
}

// chatRequest is the chat-completions wire format.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the chat-completions response format.
type chatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionError is a transport-level failure from the completion
// capability: network error, auth error, rate limit, or a malformed transport
// response. The gateway never retries; callers own any fallback behavior.
type CompletionError struct {
	StatusCode int // zero when the request never completed
	Cause      error
}

// Error implements the error interface.
func (e *CompletionError) Error() (msg string) {
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("completion request failed with status %d: %v", e.StatusCode, e.Cause)
		return msg
	}
	msg = fmt.Sprintf("completion request failed: %v", e.Cause)
	return msg
}

// Unwrap returns the underlying cause.
func (e *CompletionError) Unwrap() (err error) {
	err = e.Cause
	return err
}
