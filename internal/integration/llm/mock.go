package llm

import (
	"context"
	"strings"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector - мок-реализация коннектора генерации для тестирования
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Complete - мок генерации ответа, пересказывает переданный контекст
func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	ctxzap.Info(ctx, "[MOCK] requesting completion", zap.String("model", req.Model))

	var userContent string
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			userContent = msg.Content
		}
	}

	text := "На основе базы знаний: ответ на ваш вопрос содержится в приложенных документах."
	if strings.Contains(userContent, "КОНТЕКСТ:") {
		text = "По информации из базы знаний могу ответить следующее. " + text
	}

	resp := &entity.CompletionResponse{
		Model: req.Model,
		Choices: []entity.CompletionChoice{
			{
				Message:      entity.CompletionMessage{Role: "assistant", Content: text},
				FinishReason: "stop",
			},
		},
		Usage: entity.CompletionUsage{
			PromptTokens:     120,
			CompletionTokens: 40,
			TotalTokens:      160,
		},
	}

	ctxzap.Info(ctx, "[MOCK] completion returned", zap.Int("total_tokens", resp.Usage.TotalTokens))
	return resp, nil
}
