// Package api wraps the OpenAI chat-completions API used by gptchat.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	apierrors "github.com/diogo/gptchat/internal/errors"
)

// Endpoint names used in error messages
const (
	EndpointModels          = "models"
	EndpointChatCompletions = "chat/completions"
)

// DefaultBaseURL is the public OpenAI endpoint.
const DefaultBaseURL = "https://api.openai.com/v1/"

// ModelLister lists the model identifiers the API offers.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Streamer streams a chat completion for a message history.
type Streamer interface {
	StreamChat(ctx context.Context, model string, messages []Message, onDelta func(string)) (string, error)
}

// ChatClient is everything the chat loop needs from the API.
type ChatClient interface {
	ModelLister
	Streamer
}

// Client talks to an OpenAI-compatible API.
type Client struct {
	client     openai.Client
	baseURL    string
	maxRetries int
	timeout    time.Duration
	httpClient *http.Client
}

// Ensure Client implements ChatClient
var _ ChatClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithBaseURL points the client at another OpenAI-compatible endpoint.
// An empty url keeps the default.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithMaxRetries sets how many times failed requests are retried.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithTimeout bounds each request, including the full streamed body.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, apierrors.NewCredentialError("OPENAI_API_KEY")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		maxRetries: 2,
	}
	for _, opt := range opts {
		opt(c)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithMaxRetries(c.maxRetries),
	}
	if c.timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(c.timeout))
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}

	c.client = openai.NewClient(reqOpts...)
	return c, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels returns the raw model identifiers from the API.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, wrapAPIError(err, EndpointModels)
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// wrapAPIError converts SDK errors into *errors.APIError so callers can
// classify them without importing the SDK.
func wrapAPIError(err error, endpoint string) error {
	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		msg := oaiErr.Message
		if msg == "" {
			msg = http.StatusText(oaiErr.StatusCode)
		}
		return apierrors.NewAPIError(oaiErr.StatusCode, endpoint, msg)
	}
	return fmt.Errorf("%s request failed: %w", endpoint, err)
}
