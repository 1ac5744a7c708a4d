// Package assist is the bridge to the external chat assistant. Requests
// run on background goroutines; replies come back through a single
// consumer channel the interactive loop drains once per tick, so a slow
// or hung request never blocks the UI.
package assist

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/eisenq/eq/internal/config"
	"github.com/eisenq/eq/internal/store"
	"github.com/eisenq/eq/internal/telemetry"
)

const (
	maxRetries     = 3
	initialBackoff = 1 * time.Second

	// replyBuffer bounds outstanding unpolled replies. Replies beyond
	// the buffer are queued by their producing goroutines, never lost.
	replyBuffer = 8
)

// ErrNoAPIKey means no credential was found; chat is disabled but all
// other functionality is unaffected.
var ErrNoAPIKey = errors.New("no API key configured")

// Response is one assistant reply or a terminal error for one request.
type Response struct {
	Text string
	Err  error
}

// Client wraps the Anthropic API. One goroutine per outstanding request;
// replies funnel into a single channel.
type Client struct {
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
	replies   chan Response
}

// NewClient builds a client from config. ANTHROPIC_API_KEY takes
// precedence over the config file key. Returns ErrNoAPIKey when neither
// is set.
func NewClient(cfg *config.Config) (*Client, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		key = cfg.APIKey
	}
	if key == "" {
		return nil, fmt.Errorf("%w: set ANTHROPIC_API_KEY or api-key in config.yaml", ErrNoAPIKey)
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	aiMetricsOnce.Do(initAIMetrics)

	return &Client{
		api:       anthropic.NewClient(option.WithAPIKey(key)),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
		replies:   make(chan Response, replyBuffer),
	}, nil
}

// Send schedules a request for the given transcript and task context and
// returns immediately. The reply (or a single error) arrives later on the
// poll channel.
func (c *Client) Send(ctx context.Context, history []store.ChatMessage, taskContext string) {
	msgs := make([]store.ChatMessage, len(history))
	copy(msgs, history)

	go func() {
		text, err := c.call(ctx, msgs, taskContext)
		c.replies <- Response{Text: text, Err: err}
	}()
}

// Poll performs a non-blocking receive on the reply channel.
func (c *Client) Poll() (Response, bool) {
	select {
	case r := <-c.replies:
		return r, true
	default:
		return Response{}, false
	}
}

func (c *Client) call(ctx context.Context, history []store.ChatMessage, taskContext string) (string, error) {
	tracer := telemetry.Tracer("github.com/eisenq/eq/assist")
	ctx, span := tracer.Start(ctx, "anthropic.messages.new")
	defer span.End()
	span.SetAttributes(attribute.String("eq.ai.model", string(c.model)))

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt(taskContext)},
		},
		Messages: toMessageParams(history),
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(initialBackoff),
		), maxRetries),
		ctx,
	)

	var text string
	err := backoff.Retry(func() error {
		t0 := time.Now()
		message, err := c.api.Messages.New(ctx, params)
		ms := float64(time.Since(t0).Milliseconds())

		if err != nil {
			if !isRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}

		modelAttr := attribute.String("eq.ai.model", string(c.model))
		if aiMetrics.inputTokens != nil {
			aiMetrics.inputTokens.Add(ctx, message.Usage.InputTokens, metric.WithAttributes(modelAttr))
			aiMetrics.outputTokens.Add(ctx, message.Usage.OutputTokens, metric.WithAttributes(modelAttr))
			aiMetrics.duration.Record(ctx, ms, metric.WithAttributes(modelAttr))
		}

		if len(message.Content) == 0 {
			return backoff.Permanent(errors.New("unexpected response format: no content blocks"))
		}
		content := message.Content[0]
		if content.Type != "text" {
			return backoff.Permanent(fmt.Errorf("unexpected response format: not a text block (type=%s)", content.Type))
		}
		text = content.Text
		return nil
	}, policy)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	return text, nil
}

func toMessageParams(history []store.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case "assistant":
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		}
	}
	return out
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	return false
}

// aiMetrics holds lazily-initialized OTel instruments for assistant calls.
var aiMetrics struct {
	inputTokens  metric.Int64Counter
	outputTokens metric.Int64Counter
	duration     metric.Float64Histogram
}

var aiMetricsOnce sync.Once

func initAIMetrics() {
	m := telemetry.Meter("github.com/eisenq/eq/assist")
	aiMetrics.inputTokens, _ = m.Int64Counter("eq.ai.input_tokens",
		metric.WithDescription("Anthropic API input tokens consumed"),
		metric.WithUnit("{token}"),
	)
	aiMetrics.outputTokens, _ = m.Int64Counter("eq.ai.output_tokens",
		metric.WithDescription("Anthropic API output tokens generated"),
		metric.WithUnit("{token}"),
	)
	aiMetrics.duration, _ = m.Float64Histogram("eq.ai.request.duration",
		metric.WithDescription("Anthropic API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
}
