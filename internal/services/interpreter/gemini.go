package interpreter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/inkwell/internal/common"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiInterpreter resolves prompt text against Google's Gemini API.
type geminiInterpreter struct {
	client  *genai.Client
	model   string
	retry   RetryConfig
	limiter *rate.Limiter
	logger  arbor.ILogger
}

func newGeminiInterpreter(ctx context.Context, apiKey, model string, maxRetries, requestsPerSecond int, logger arbor.ILogger) (*geminiInterpreter, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	retry := NewDefaultRetryConfig()
	if maxRetries > 0 {
		retry.MaxRetries = maxRetries
	}
	return &geminiInterpreter{
		client:  client,
		model:   model,
		retry:   retry,
		limiter: newRequestLimiter(requestsPerSecond),
		logger:  logger,
	}, nil
}

// ResolvePrompts answers every prompt concurrently; see claudeInterpreter's
// degrade rule for panics/exhausted retries.
func (g *geminiInterpreter) ResolvePrompts(ctx context.Context, prompts []string) ([]string, error) {
	answers := make([]string, len(prompts))
	var wg sync.WaitGroup
	for i, prompt := range prompts {
		wg.Add(1)
		i, prompt := i, prompt
		common.SafeGo(g.logger, fmt.Sprintf("gemini-resolve-prompt-%d", i), func() {
			defer wg.Done()
			answers[i] = g.resolveOne(ctx, prompt)
		})
	}
	wg.Wait()
	return answers, nil
}

func (g *geminiInterpreter) resolveOne(ctx context.Context, prompt string) string {
	if err := g.limiter.Wait(ctx); err != nil {
		return ""
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{}

	var resp *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt <= g.retry.MaxRetries; attempt++ {
		resp, err = g.client.Models.GenerateContent(ctx, g.model, contents, config)
		if err == nil {
			break
		}
		if attempt == g.retry.MaxRetries || !IsRateLimitError(err) {
			break
		}

		backoff := g.retry.CalculateBackoff(attempt, ExtractRetryDelay(err))
		if g.logger != nil {
			g.logger.Warn().Int("attempt", attempt+1).Dur("backoff", backoff).Err(err).Msg("gemini interpreter: retrying prompt resolution")
		}
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(backoff):
		}
	}
	if err != nil || resp == nil {
		if g.logger != nil {
			g.logger.Error().Err(err).Msg("gemini interpreter: prompt resolution failed, degrading to empty answer")
		}
		return ""
	}
	return resp.Text()
}
