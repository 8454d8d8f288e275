package ask

import (
	"context"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
)

type AnswerUsecase interface {
	Ask(ctx context.Context, req *entity.AskRequest) (*entity.AskResponse, error)
	ExportLogs(ctx context.Context) ([]entity.AnswerLogExportRow, error)
}
