package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rs/zerolog"
	"github.com/trexivo/tinova-pos/pkg/apperror"
	"github.com/trexivo/tinova-pos/pkg/logger"
)

// ErrInsightInFlight is returned when a generation request arrives while a
// previous one is still outstanding.
var ErrInsightInFlight = apperror.NewAppError(http.StatusConflict, "Insight generation already in progress")

// TextGenerator produces free text for a prompt. The external service is
// treated as unreliable; any failure is recovered locally by the caller.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator implements TextGenerator against the OpenAI chat API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given API key and model.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.4,
		MaxTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("insight request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from model %s", g.model)
	}
	return resp.Choices[0].Message.Content, nil
}

// InsightService produces a short advisory string over a statistics snapshot.
// The external call can fail in any way without the caller ever seeing an
// error: a deterministic local fallback is substituted. A nil generator
// (missing credential) fails closed into the same fallback.
type InsightService struct {
	gen     TextGenerator
	timeout time.Duration

	// Guards against a duplicate generation while one is outstanding.
	generating atomic.Bool

	mu   sync.RWMutex
	last string

	log zerolog.Logger
}

// NewInsightService creates a new insight service. gen may be nil when no
// text-generation credential is configured.
func NewInsightService(gen TextGenerator, timeout time.Duration) *InsightService {
	return &InsightService{
		gen:     gen,
		timeout: timeout,
		log:     logger.WithComponent("insight"),
	}
}

// Generate produces an advisory string for the given snapshot. It never
// fails except when a generation is already in flight.
func (s *InsightService) Generate(ctx context.Context, stats *LedgerStats) (string, error) {
	if !s.generating.CompareAndSwap(false, true) {
		return "", ErrInsightInFlight
	}
	defer s.generating.Store(false)

	insight := s.fallback(stats)

	if s.gen == nil {
		s.log.Warn().Msg("No text generator configured, using local fallback")
	} else {
		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		text, err := s.gen.Generate(genCtx, buildInsightPrompt(stats))
		if err != nil {
			s.log.Warn().Err(err).Msg("Insight generation failed, using local fallback")
		} else if trimmed := strings.TrimSpace(text); trimmed != "" {
			insight = trimmed
		} else {
			s.log.Warn().Msg("Insight generation returned empty text, using local fallback")
		}
	}

	s.mu.Lock()
	s.last = insight
	s.mu.Unlock()

	return insight, nil
}

// Last returns the most recently generated insight, or an empty string when
// none has been generated yet.
func (s *InsightService) Last() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *InsightService) fallback(stats *LedgerStats) string {
	return fmt.Sprintf(
		"Strategy: Focus on collecting the $%s outstanding due to improve liquid cash flow immediately.",
		formatAmount(stats.TotalDue),
	)
}

func buildInsightPrompt(stats *LedgerStats) string {
	return fmt.Sprintf(
		"Act as a senior business consultant. Analyze these POS stats: "+
			"Total Income: $%s, Outstanding Due: $%s, Successful Orders: %d, Pending: %d. "+
			"Provide a short (max 3 sentence) high-level strategic insight for this business. "+
			"Focus on cash flow and conversion.",
		formatAmount(stats.TotalIncome),
		formatAmount(stats.TotalDue),
		stats.SuccessCount,
		stats.PendingCount,
	)
}

// formatAmount renders a decimal amount without trailing zeros, matching the
// dashboard's display (800, not 800.00).
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
