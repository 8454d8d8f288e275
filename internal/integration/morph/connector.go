package morph

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
	config    config.MorphConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.MorphConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Lemmas returns the dictionary base form for each word, order preserved.
func (c *Connector) Lemmas(ctx context.Context, words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, nil
	}

	ctxzap.Debug(ctx, "lemmatizing words", zap.Int("count", len(words)))

	req := &entity.MorphLemmatizeRequest{Words: words}

	var resp entity.MorphLemmatizeResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.LemmatizeEndpoint, req, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Lemmas) != len(words) {
		return nil, fmt.Errorf("invalid lemmatize response: got %d lemmas for %d words", len(resp.Lemmas), len(words))
	}

	return resp.Lemmas, nil
}
