package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/config"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/integration/common"
	pkghttp "github.com/ShalunBdk/AI-FAQ-Bot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete sends a chat completion request to the generation service.
func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	ctxzap.Info(ctx, "requesting completion", zap.String("model", req.Model))

	var resp entity.CompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompleteEndpoint, req, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("invalid completion response: no choices returned")
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return &resp, nil
}
