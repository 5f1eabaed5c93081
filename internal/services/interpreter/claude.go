package interpreter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/inkwell/internal/common"
	"golang.org/x/time/rate"
)

// claudeInterpreter resolves prompt text against Anthropic's Claude API, one
// request per prompt, fanned out concurrently across the batch.
type claudeInterpreter struct {
	client    anthropic.Client
	model     string
	maxTokens int
	retry     RetryConfig
	limiter   *rate.Limiter
	logger    arbor.ILogger
}

func newClaudeInterpreter(apiKey, model string, maxRetries, requestsPerSecond int, logger arbor.ILogger) *claudeInterpreter {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	retry := NewDefaultRetryConfig()
	if maxRetries > 0 {
		retry.MaxRetries = maxRetries
	}
	return &claudeInterpreter{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: 4096,
		retry:     retry,
		limiter:   newRequestLimiter(requestsPerSecond),
		logger:    logger,
	}
}

// ResolvePrompts answers every prompt concurrently. A panic or exhausted
// retry budget on one prompt degrades that slot to the empty string rather
// than failing the whole batch.
func (c *claudeInterpreter) ResolvePrompts(ctx context.Context, prompts []string) ([]string, error) {
	answers := make([]string, len(prompts))
	var wg sync.WaitGroup
	for i, prompt := range prompts {
		wg.Add(1)
		i, prompt := i, prompt
		common.SafeGo(c.logger, fmt.Sprintf("claude-resolve-prompt-%d", i), func() {
			defer wg.Done()
			answers[i] = c.resolveOne(ctx, prompt)
		})
	}
	wg.Wait()
	return answers, nil
}

func (c *claudeInterpreter) resolveOne(ctx context.Context, prompt string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return ""
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	var resp *anthropic.Message
	var err error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		resp, err = c.client.Messages.New(ctx, params)
		if err == nil {
			break
		}
		if attempt == c.retry.MaxRetries || !IsRateLimitError(err) {
			break
		}

		backoff := c.retry.CalculateBackoff(attempt, ExtractRetryDelay(err))
		if c.logger != nil {
			c.logger.Warn().Int("attempt", attempt+1).Dur("backoff", backoff).Err(err).Msg("claude interpreter: retrying prompt resolution")
		}
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(backoff):
		}
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Error().Err(err).Msg("claude interpreter: prompt resolution failed, degrading to empty answer")
		}
		return ""
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String()
}
