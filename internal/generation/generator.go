package generation

import (
	"context"
	"strings"
	"time"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/anonymizer"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// NoInfoText is the fixed reply for the empty-context short circuit.
const NoInfoText = "К сожалению, я не нашел информации по этому вопросу в базе знаний."

// errEmptyContext tags the short-circuit outcome so callers can tell it
// apart from transport failures.
const errEmptyContext = "empty_context"

// CompletionService is the external generation endpoint.
type CompletionService interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error)
}

// Config carries the per-call generation tuning. Phrase lists are data, not
// code: classification by substring matching is a heuristic and the lists
// are expected to be adjusted through the settings store.
type Config struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string

	MaxRetries    uint
	RetryDelay    time.Duration
	RetryMaxDelay time.Duration

	ClarificationPhrases []string
	NoAnswerPhrases      []string
}

// DefaultClarificationPhrases flag answers where the model asked the user
// to restate the question.
var DefaultClarificationPhrases = []string{
	"уточните",
	"не совсем понял",
	"переформулируйте",
	"что именно вас интересует",
}

// DefaultNoAnswerPhrases flag answers where the model admitted the context
// holds no answer.
var DefaultNoAnswerPhrases = []string{
	"не нашел информации",
	"нет информации",
	"информация отсутствует",
	"не содержит ответа",
}

// Generator produces an answer from assembled context: it masks personal
// data, calls the generation service with retries, restores personal data
// in the reply and classifies the final text. Failures are surfaced in the
// outcome's Error field and never escape as errors or panics.
type Generator struct {
	llm        CompletionService
	anonymizer *anonymizer.Engine
	logger     *zap.Logger
}

func NewGenerator(llm CompletionService, anonymizer *anonymizer.Engine, logger *zap.Logger) *Generator {
	return &Generator{
		llm:        llm,
		anonymizer: anonymizer,
		logger:     logger,
	}
}

// Generate runs one generation call. An empty chunk list short-circuits
// with the fixed no-information outcome without touching the service.
func (g *Generator) Generate(ctx context.Context, query string, chunks []entity.ContextChunk, cfg Config) *entity.GenerationOutcome {
	start := time.Now()

	if len(chunks) == 0 {
		ctxzap.Warn(ctx, "generation skipped, empty context")
		return &entity.GenerationOutcome{
			Text:       NoInfoText,
			Model:      cfg.Model,
			Kind:       entity.AnswerNoInfo,
			Error:      errEmptyContext,
			DurationMs: time.Since(start).Milliseconds(),
		}
	}

	views := make([]chunkView, 0, len(chunks))
	for _, chunk := range chunks {
		views = append(views, chunkView{
			Question:   chunk.Question,
			Answer:     chunk.Answer,
			Confidence: chunk.Confidence,
		})
	}

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	// One mapping spans both the context and the question, so a value
	// appearing in both gets a single placeholder.
	mapping := anonymizer.NewMapping()
	maskedContext := g.anonymizer.Mask(buildContext(views), mapping)
	maskedQuery := g.anonymizer.Mask(query, mapping)

	ctxzap.Info(ctx, "generation request prepared",
		zap.Int("chunks", len(chunks)),
		zap.Int("pii_masked", mapping.Len()),
		zap.String("model", cfg.Model),
	)

	req := &entity.CompletionRequest{
		Model: cfg.Model,
		Messages: []entity.CompletionMessage{
			{Role: "system", Content: buildSystemPrompt(systemPrompt, time.Now())},
			{Role: "user", Content: buildUserPrompt(maskedContext, maskedQuery)},
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	resp, err := g.complete(ctx, req, cfg)
	if err != nil {
		ctxzap.Error(ctx, "generation failed after retries", zap.Error(err))
		return &entity.GenerationOutcome{
			Model:      cfg.Model,
			ChunksUsed: len(chunks),
			PIICount:   mapping.Len(),
			Kind:       entity.AnswerNoInfo,
			Error:      err.Error(),
			DurationMs: time.Since(start).Milliseconds(),
		}
	}

	var text, finishReason string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
		finishReason = resp.Choices[0].FinishReason
	}

	text = anonymizer.Unmask(text, mapping)

	model := resp.Model
	if model == "" {
		model = cfg.Model
	}

	outcome := &entity.GenerationOutcome{
		Text:  text,
		Model: model,
		Tokens: entity.TokenUsage{
			Prompt:     resp.Usage.PromptTokens,
			Completion: resp.Usage.CompletionTokens,
			Total:      resp.Usage.TotalTokens,
		},
		FinishReason: finishReason,
		ChunksUsed:   len(chunks),
		PIICount:     mapping.Len(),
		Kind:         Classify(text, cfg.ClarificationPhrases, cfg.NoAnswerPhrases),
		DurationMs:   time.Since(start).Milliseconds(),
	}

	ctxzap.Info(ctx, "generation completed",
		zap.String("kind", string(outcome.Kind)),
		zap.Int("tokens_total", outcome.Tokens.Total),
		zap.Int64("duration_ms", outcome.DurationMs),
	)

	return outcome
}

// complete calls the generation service with exponential backoff.
func (g *Generator) complete(ctx context.Context, req *entity.CompletionRequest, cfg Config) (*entity.CompletionResponse, error) {
	attempts := cfg.MaxRetries
	if attempts == 0 {
		attempts = 3
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "generation attempt failed, retrying",
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	}
	if cfg.RetryMaxDelay > 0 {
		opts = append(opts, retry.MaxDelay(cfg.RetryMaxDelay))
	}

	var resp *entity.CompletionResponse
	err := retry.Do(
		func() error {
			var callErr error
			resp, callErr = g.llm.Complete(ctx, req)
			return callErr
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Classify tags generated text by substring matching on the final,
// human-readable answer. The check is intentionally independent of the
// service's structured error signals: a call can succeed while the model
// still admits it has no answer. This is a heuristic, not a guarantee.
func Classify(text string, clarificationPhrases, noAnswerPhrases []string) entity.AnswerKind {
	lowered := strings.ToLower(text)

	if len(clarificationPhrases) == 0 {
		clarificationPhrases = DefaultClarificationPhrases
	}
	if len(noAnswerPhrases) == 0 {
		noAnswerPhrases = DefaultNoAnswerPhrases
	}

	for _, phrase := range clarificationPhrases {
		if phrase != "" && strings.Contains(lowered, strings.ToLower(phrase)) {
			return entity.AnswerClarification
		}
	}
	for _, phrase := range noAnswerPhrases {
		if phrase != "" && strings.Contains(lowered, strings.ToLower(phrase)) {
			return entity.AnswerNoInfo
		}
	}
	return entity.AnswerNormal
}
