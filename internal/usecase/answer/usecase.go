package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/generation"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// exportLimit bounds the answer-log export so a busy instance cannot
// produce an unbounded file.
const exportLimit = 10000

// AnswerUsecase orchestrates one question-answering request: load the
// settings snapshot, run the cascading search, optionally generate an
// answer from the assembled context and log what was shown.
type AnswerUsecase struct {
	settings  SettingsLoader
	engine    SearchEngine
	generator AnswerGenerator
	logs      LogWriter
	genConfig generation.Config
	logger    *zap.Logger
}

// NewUsecase creates a new answer use case. baseGenConfig carries the
// environment-level fields (model, retry tuning); per-request fields come
// from the settings snapshot.
func NewUsecase(
	settingsLoader SettingsLoader,
	engine SearchEngine,
	generator AnswerGenerator,
	logs LogWriter,
	baseGenConfig generation.Config,
	logger *zap.Logger,
) *AnswerUsecase {
	return &AnswerUsecase{
		settings:  settingsLoader,
		engine:    engine,
		generator: generator,
		logs:      logs,
		genConfig: baseGenConfig,
		logger:    logger,
	}
}

// Ask resolves one user question end to end.
func (uc *AnswerUsecase) Ask(ctx context.Context, req *entity.AskRequest) (*entity.AskResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, entity.ErrEmptyQuery
	}

	values, err := uc.settings.Load(ctx)
	if err != nil {
		// Empty snapshot falls back to documented defaults.
		ctxzap.Warn(ctx, "settings unavailable, using defaults", zap.Error(err))
	}

	opts := values.SearchOptions()
	policy := values.RAGPolicy()

	// With generation enabled near-ties are folded into the context
	// instead of being returned to the caller as a question.
	if policy.Enabled {
		opts.Disambiguate = false
	}

	result := uc.engine.FindAnswer(ctx, query, opts)

	resp := &entity.AskResponse{Result: *result}

	if policy.Enabled {
		chunks := generation.AssembleContext(result, policy.MaxChunks, policy.MinRelevance)

		cfg := values.GenerationConfig()
		cfg.Model = uc.genConfig.Model
		cfg.MaxRetries = uc.genConfig.MaxRetries
		cfg.RetryDelay = uc.genConfig.RetryDelay
		cfg.RetryMaxDelay = uc.genConfig.RetryMaxDelay

		outcome := uc.generator.Generate(ctx, query, chunks, cfg)
		resp.Generation = outcome

		if outcome.Failed() && result.Found {
			// Degrade to the raw search answer instead of losing the request.
			ctxzap.Warn(ctx, "generation failed, serving raw search answer",
				zap.String("generation_error", outcome.Error))
		}
	}

	uc.persistLogs(ctx, req, resp)

	return resp, nil
}

// ExportLogs returns the most recent answer logs for the export handlers.
func (uc *AnswerUsecase) ExportLogs(ctx context.Context) ([]entity.AnswerLogExportRow, error) {
	rows, err := uc.logs.ListAnswerLogs(ctx, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("list answer logs: %w", err)
	}
	return rows, nil
}

// persistLogs writes the query and answer logs. Logging failures are
// reported but never fail the request.
func (uc *AnswerUsecase) persistLogs(ctx context.Context, req *entity.AskRequest, resp *entity.AskResponse) {
	queryLog, err := uc.logs.CreateQueryLog(ctx, entity.QueryLog{
		UserID:    req.UserID,
		QueryText: req.Query,
		Platform:  "api",
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to persist query log", zap.Error(err))
		return
	}

	answerLog := entity.AnswerLog{
		QueryLogID:  queryLog.ID,
		FAQID:       resp.Result.FAQID,
		AnswerShown: shownAnswer(resp),
		Confidence:  resp.Result.Confidence,
		SearchLevel: resp.Result.SearchLevel,
		Generated:   resp.Generation != nil && !resp.Generation.Failed(),
	}

	if _, err := uc.logs.CreateAnswerLog(ctx, answerLog); err != nil {
		ctxzap.Error(ctx, "failed to persist answer log", zap.Error(err))
	}
}

// shownAnswer picks the text the caller will actually display: the
// generated answer when generation succeeded, the raw search answer or the
// fallback message otherwise.
func shownAnswer(resp *entity.AskResponse) string {
	if resp.Generation != nil && !resp.Generation.Failed() {
		return resp.Generation.Text
	}
	if resp.Result.Found {
		return resp.Result.Answer
	}
	return resp.Result.FallbackMessage
}
