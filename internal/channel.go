package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the local assistant backend's chat endpoint
const DefaultEndpoint = "http://localhost:5000/api/chat"

// ChatRequest is the outbound payload for one user send action
type ChatRequest struct {
	Message     string `json:"message"`
	Image       string `json:"image,omitempty"`
	PageContent string `json:"page_content"`
	UserName    string `json:"user_name"`
}

// ChatResponse is the backend's reply envelope
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// MessageChannel performs the request/response exchange with the backend.
// Exactly one request is issued per send action; there is no client-side
// retry or queueing. The typing hook brackets each request so the widget
// can show a busy indicator for its duration.
type MessageChannel struct {
	endpoint string
	client   *http.Client
	typing   func(bool)
}

// NewMessageChannel creates a channel for the given endpoint
func NewMessageChannel(endpoint string, timeout time.Duration) *MessageChannel {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &MessageChannel{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// SetTypingFunc installs the typing-indicator hook. It is invoked with
// true when a request starts and false when it completes, on both the
// success and failure paths.
func (c *MessageChannel) SetTypingFunc(fn func(bool)) {
	c.typing = fn
}

// Endpoint returns the configured backend endpoint
func (c *MessageChannel) Endpoint() string {
	return c.endpoint
}

// Send issues one chat request and returns the response text. Network
// failures, non-2xx statuses, unreadable bodies and success=false replies
// all surface as a *TransportError; no distinction matters to the caller,
// which renders a single inline error either way.
func (c *MessageChannel) Send(ctx context.Context, req ChatRequest) (string, error) {
	if c.typing != nil {
		c.typing(true)
		defer c.typing(false)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", &TransportError{Endpoint: c.endpoint, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Endpoint: c.endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &TransportError{Endpoint: c.endpoint, Status: resp.StatusCode, Err: fmt.Errorf("unreadable response: %w", err)}
	}

	if !chatResp.Success {
		reason := chatResp.Error
		if reason == "" {
			reason = "backend reported failure"
		}
		return "", &TransportError{Endpoint: c.endpoint, Status: resp.StatusCode, Err: fmt.Errorf("%s", reason)}
	}

	return chatResp.Response, nil
}

// Health probes the backend's health endpoint, derived from the chat
// endpoint by convention (/api/chat -> /api/health). A nil return means
// the backend answered 200.
func (c *MessageChannel) Health(ctx context.Context) error {
	healthURL, err := healthEndpoint(c.endpoint)
	if err != nil {
		return &TransportError{Endpoint: c.endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return &TransportError{Endpoint: healthURL, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Endpoint: healthURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransportError{Endpoint: healthURL, Status: resp.StatusCode, Err: fmt.Errorf("backend not ready")}
	}
	return nil
}

// healthEndpoint rewrites the chat endpoint path to the health path
func healthEndpoint(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(u.Path, "/chat") {
		u.Path = strings.TrimSuffix(u.Path, "/chat") + "/health"
	} else {
		u.Path = "/api/health"
	}
	return u.String(), nil
}
