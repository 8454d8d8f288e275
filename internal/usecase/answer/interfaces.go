package answer

import (
	"context"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/generation"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/search"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/settings"
)

type SearchEngine interface {
	FindAnswer(ctx context.Context, query string, opts search.Options) *entity.SearchResult
}

type AnswerGenerator interface {
	Generate(ctx context.Context, query string, chunks []entity.ContextChunk, cfg generation.Config) *entity.GenerationOutcome
}

type SettingsLoader interface {
	Load(ctx context.Context) (settings.Values, error)
}

type LogWriter interface {
	CreateQueryLog(ctx context.Context, log entity.QueryLog) (*entity.QueryLog, error)
	CreateAnswerLog(ctx context.Context, log entity.AnswerLog) (*entity.AnswerLog, error)
	ListAnswerLogs(ctx context.Context, limit int) ([]entity.AnswerLogExportRow, error)
}
