// Package gemini implements integration with Google's Gemini AI API.
// It suggests short birthday greetings that are attached to reminders.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/edgard/birthdaybot/internal/config"
)

// Client defines the AI operations used by the reminder composer.
type Client interface {
	SuggestGreeting(ctx context.Context, name string, age int) (string, error)
}

// ErrSuspended is returned while repeated failures keep the greeting
// circuit breaker open.
var ErrSuspended = errors.New("greeting suggestions temporarily suspended")

type sdkClient struct {
	genaiClient   *genai.Client
	breaker       *gobreaker.CircuitBreaker
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
	timeout       time.Duration
	maxRetries    int
	retryDelay    time.Duration
}

// NewClient creates a new Gemini AI client with the provided configuration.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Client, error) {
	return newClient(ctx, cfg, log, genai.HTTPOptions{})
}

func newClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger, httpOpts genai.HTTPOptions) (*sdkClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temperature := cfg.Temperature
	baseCfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if cfg.SystemInstruction != "" {
		baseCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: cfg.SystemInstruction}}}
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized successfully", "model", cfg.Model)
	return &sdkClient{
		genaiClient:   gi,
		breaker:       newBreaker(cfg, logger),
		log:           logger,
		contentConfig: baseCfg,
		modelName:     cfg.Model,
		timeout:       cfg.Timeout,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
	}, nil
}

// newBreaker trips after BreakerThreshold consecutive failed suggestions and
// lets one trial request through after BreakerCooldown.
func newBreaker(cfg config.GeminiConfig, log *slog.Logger) *gobreaker.CircuitBreaker {
	threshold := uint32(max(cfg.BreakerThreshold, 1))
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini_greeting",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// SuggestGreeting asks the model for a one or two sentence greeting.
func (c *sdkClient) SuggestGreeting(ctx context.Context, name string, age int) (string, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.suggestGreeting(ctx, name, age)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.log.DebugContext(ctx, "Skipping greeting suggestion", "state", c.breaker.State().String())
		return "", fmt.Errorf("%w: %w", ErrSuspended, err)
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *sdkClient) suggestGreeting(ctx context.Context, name string, age int) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.log.DebugContext(ctx, "Generating greeting suggestion", "age", age)
	contents := genai.Text(fmt.Sprintf(GreetingPromptFmt, name, age))

	resp, err := c.generateContentWithRetries(ctx, contents, c.contentConfig)
	if err != nil {
		return "", fmt.Errorf("greeting generation failed: %w", err)
	}

	return c.extractTextFromResponse(ctx, resp)
}

func (c *sdkClient) generateContentWithRetries(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := retry.DoWithData(
		func() (*genai.GenerateContentResponse, error) {
			return c.genaiClient.Models.GenerateContent(ctx, c.modelName, contents, cfg)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetriable),
		retry.OnRetry(func(n uint, err error) {
			c.log.InfoContext(ctx, "Retrying Gemini API call due to retriable APIError",
				"attempt", n+1, "delay", c.retryDelay, "error", err)
		}),
	)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err, "retriable", isRetriable(err))
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return resp, nil
}

// isRetriable reports whether err is a transient server-side APIError.
func isRetriable(err error) bool {
	var apiErr genai.APIError
	return errors.As(err, &apiErr) && (apiErr.Code == 500 || apiErr.Code == 503)
}

func (c *sdkClient) extractTextFromResponse(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.WarnContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", fmt.Errorf("greeting blocked by safety filter: %s", reasonMsg)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", fmt.Errorf("greeting returned no content, finish reason: %s", finishReason)
	}

	text := cleanGreeting(resp.Text())
	if text == "" {
		return "", fmt.Errorf("greeting returned empty text")
	}
	return text, nil
}

// cleanGreeting trims whitespace and wrapping quotes and caps the length.
func cleanGreeting(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'“”«»")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxGreetingRunes {
		s = strings.TrimSpace(string(runes[:maxGreetingRunes])) + "…"
	}
	return s
}
