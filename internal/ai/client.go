package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/packvision/internal/domain"
)

// Retry budgets per completion kind.
const (
	TextMaxRetries   = 2
	VisionMaxRetries = 3
)

// Provider is a generative-AI backend able to complete text prompts and
// prompts with an attached image.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Client calls a Provider with the rate-limit retry policy applied.
// Construct one per process and pass it to the services that need it.
type Client struct {
	provider Provider
	unit     time.Duration
	sleep    Sleeper
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBackoffUnit overrides DefaultBackoffUnit.
func WithBackoffUnit(d time.Duration) Option {
	return func(c *Client) { c.unit = d }
}

// WithSleeper replaces the timer used between retries.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient wraps p.
func NewClient(p Provider, opts ...Option) *Client {
	c := &Client{provider: p, unit: DefaultBackoffUnit, log: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) policy(maxRetries int) RetryPolicy {
	return RetryPolicy{MaxRetries: maxRetries, Unit: c.unit, Sleep: c.sleep, Logger: c.log}
}

// Text completes prompt, retrying up to TextMaxRetries times on rate limits.
func (c *Client) Text(ctx context.Context, prompt string) (string, error) {
	out, err := Retry(ctx, c.policy(TextMaxRetries), func(ctx context.Context) (string, error) {
		return c.provider.GenerateText(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("ai.Client.Text: %w", err)
	}
	return out, nil
}

// Vision completes prompt with an attached image, retrying up to
// VisionMaxRetries times on rate limits. A blank answer is an error.
func (c *Client) Vision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	out, err := Retry(ctx, c.policy(VisionMaxRetries), func(ctx context.Context) (string, error) {
		text, err := c.provider.GenerateVision(ctx, prompt, image, mimeType)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", domain.ErrEmptyResponse
		}
		return text, nil
	})
	if err != nil {
		return "", fmt.Errorf("ai.Client.Vision: %w", err)
	}
	return out, nil
}

// Unconfigured is the Provider used when no API key is available. Every
// call fails with domain.ErrAINotConfigured.
type Unconfigured struct{}

func (Unconfigured) GenerateText(context.Context, string) (string, error) {
	return "", domain.ErrAINotConfigured
}

func (Unconfigured) GenerateVision(context.Context, string, []byte, string) (string, error) {
	return "", domain.ErrAINotConfigured
}
