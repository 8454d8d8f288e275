package vector

import (
	"context"
	"net/http"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/config"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/integration/common"
	pkghttp "github.com/ShalunBdk/AI-FAQ-Bot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.VectorConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.VectorConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Query asks the similarity service for the closest indexed entries.
// The service embeds the raw text itself, so no vectors travel over the wire.
func (c *Connector) Query(ctx context.Context, query string, topN int) ([]entity.VectorCandidate, error) {
	ctxzap.Debug(ctx, "querying similarity service", zap.Int("top_n", topN))

	req := &entity.VectorQueryRequest{
		Query: query,
		TopN:  topN,
	}

	var resp entity.VectorQueryResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.QueryEndpoint, req, &resp)
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "similarity candidates received", zap.Int("count", len(resp.Candidates)))

	return resp.Candidates, nil
}
