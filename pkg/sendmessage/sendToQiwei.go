// Package sendmessage delivers Markdown messages to a WeCom group bot webhook.
package sendmessage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/boqier/qiwei-mcp-server/pkg/config"
)

const DefaultTimeout = 500 * time.Second

// Doer performs an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type OutboundMessage struct {
	Msg string `json:"msg"`
}

type ChatPayload struct {
	MsgType  string          `json:"msgtype"`
	Markdown MarkdownContent `json:"markdown"`
}

type MarkdownContent struct {
	Content string `json:"content"`
}

func NewChatPayload(msg OutboundMessage) ChatPayload {
	return ChatPayload{
		MsgType:  "markdown",
		Markdown: MarkdownContent{Content: msg.Msg},
	}
}

// TransportError reports that the webhook call did not complete.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to send HTTP request: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Client sends messages to one webhook. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	botURL     string
	httpClient Doer
	timeout    time.Duration
	metrics    *Metrics
}

type Option func(*Client)

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithTimeout sets the per-call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New builds a client for cfg.BotURL. When cfg is nil the configuration is
// resolved from the process arguments, environment and ./.env.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load(config.LoadOptions{})
		if err != nil {
			return nil, err
		}
	}
	if cfg.BotURL == "" {
		return nil, &config.Error{Kind: config.MissingRequired, Param: config.BotURL.Name}
	}
	u, err := url.Parse(cfg.BotURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid bot url %q: want an absolute http(s) URL", cfg.BotURL)
	}

	c := &Client{
		botURL:     cfg.BotURL,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send returns the response body as is, without looking at the status code.
// Transport failures come back as *TransportError and are not retried.
func (c *Client) Send(ctx context.Context, msg OutboundMessage) (string, error) {
	// 将消息内容序列化为 JSON
	body, err := json.Marshal(NewChatPayload(msg))
	if err != nil {
		return "", fmt.Errorf("failed to marshal message to JSON: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.botURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// 发出请求，不重试

	start := time.Now()
	text, err := c.do(req)
	c.metrics.observe(text, err, time.Since(start))
	return text, err
}

func (c *Client) do(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Cause: fmt.Errorf("failed to read response body: %w", err)}
	}
	return string(raw), nil
}
