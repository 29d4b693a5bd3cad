// Package ai wraps the OpenAI chat-completion API with a classification-driven
// retry mechanism: transient failures back off exponentially, terminal ones
// (bad key, rate limit, exhausted quota) abort immediately with a typed error.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	Model = openai.GPT3Dot5Turbo

	MaxRetries     = 3
	InitialBackoff = time.Second
	MaxBackoff     = 10 * time.Second
	RequestTimeout = 30 * time.Second
)

var (
	ErrInvalidAPIKey    = errors.NewSentinel("invalid OpenAI API key, please check your .env file")
	ErrRateLimited      = errors.NewSentinel("OpenAI API rate limit exceeded, please try again later")
	ErrQuotaExceeded    = errors.NewSentinel("OpenAI API quota exceeded, please check your billing")
	ErrRetriesExhausted = errors.NewSentinel("this may be due to network issues or OpenAI service unavailability")
)

type Client struct {
	client *openai.Client
	logger *slog.Logger
	// sleep is swapped out in tests to assert exact backoff sequences.
	sleep func(time.Duration)
}

// NewClient configures the underlying OpenAI client. baseURL overrides the
// provider endpoint, e.g. for a test double; empty means the public API.
func NewClient(apiKey, baseURL string, logger *slog.Logger) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: RequestTimeout}

	return &Client{
		client: openai.NewClientWithConfig(config),
		logger: logger,
		sleep:  time.Sleep,
	}
}

// CompleteWithRetry issues a chat completion, retrying transient failures with
// exponential backoff. It returns the trimmed content of the first choice.
//
// The backoff sleep blocks only the calling goroutine; concurrent requests
// proceed normally. The final attempt never sleeps, exhaustion fails instead.
func (c *Client) CompleteWithRetry(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
	temperature float32,
) (string, error) {
	// The request struct tags temperature with omitempty, so a plain zero
	// never reaches the wire and the provider falls back to its default.
	// The smallest representable value keeps the sampling deterministic.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	var lastErr error

	for attempt := 1; attempt <= MaxRetries; attempt++ {
		c.logger.LogAttrs(ctx, slog.LevelInfo, "sending request to OpenAI",
			slog.Int("attempt", attempt), slog.Int("max_retries", MaxRetries))

		completion, err := c.client.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
				Model:       Model,
				Messages:    messages,
				Temperature: temperature,
			},
		)
		if err == nil {
			c.logger.LogAttrs(ctx, slog.LevelInfo, "OpenAI request successful",
				slog.Int("attempt", attempt))
			if len(completion.Choices) == 0 {
				return "", errors.New("chat completion returned no choices")
			}
			return strings.TrimSpace(completion.Choices[0].Message.Content), nil
		}

		lastErr = err
		class := classify(err)
		c.logger.LogAttrs(ctx, slog.LevelWarn, "OpenAI request failed",
			slog.Int("attempt", attempt),
			slog.String("classification", class.String()),
			errors.SlogError(err))

		switch class {
		case classInvalidAPIKey:
			return "", ErrInvalidAPIKey
		case classRateLimited:
			return "", ErrRateLimited
		case classQuotaExceeded:
			return "", ErrQuotaExceeded
		case classNonRetryable:
			return "", err
		case classRetryable:
			if attempt == MaxRetries {
				return "", errors.Wrap(ErrRetriesExhausted,
					fmt.Sprintf("connection to OpenAI failed after %d attempts", MaxRetries))
			}
			wait := backoff(attempt)
			c.logger.LogAttrs(ctx, slog.LevelInfo, "waiting before retry",
				slog.Int("attempt", attempt), slog.Duration("backoff", wait))
			c.sleep(wait)
		}
	}

	return "", lastErr
}

// backoff doubles the initial wait per completed attempt, capped at MaxBackoff.
func backoff(attempt int) time.Duration {
	wait := InitialBackoff << (attempt - 1)
	if wait > MaxBackoff {
		wait = MaxBackoff
	}
	return wait
}
