package vector

import (
	"context"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector - мок-реализация коннектора векторного поиска для тестирования
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Query - мок семантического поиска, возвращает два фиксированных кандидата
func (m *MockConnector) Query(ctx context.Context, query string, topN int) ([]entity.VectorCandidate, error) {
	ctxzap.Info(ctx, "[MOCK] querying similarity service", zap.Int("top_n", topN))

	candidates := []entity.VectorCandidate{
		{
			ID: "1",
			Metadata: entity.VectorCandidateMetadata{
				Question: "Как оформить отпуск?",
				Answer:   "Заявление на отпуск подается через портал не позднее чем за 14 дней.",
				Category: "HR",
			},
			Distance: 0.25,
		},
		{
			ID: "2",
			Metadata: entity.VectorCandidateMetadata{
				Question: "Как получить справку 2-НДФЛ?",
				Answer:   "Справку можно заказать в личном кабинете, срок изготовления 3 рабочих дня.",
				Category: "HR",
			},
			Distance: 0.45,
		},
	}

	if topN > 0 && topN < len(candidates) {
		candidates = candidates[:topN]
	}

	ctxzap.Info(ctx, "[MOCK] similarity candidates returned", zap.Int("count", len(candidates)))
	return candidates, nil
}
