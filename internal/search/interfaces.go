package search

import (
	"context"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
)

// FAQStore is the read-only view of the knowledge base used by the
// exact and keyword tiers.
type FAQStore interface {
	GetAll(ctx context.Context) ([]*entity.FAQEntry, error)
}

// VectorSearcher delegates a raw query string to the external similarity
// service and returns ranked candidates with distances. The service owns
// embedding and indexing; the engine only converts distances to confidences.
type VectorSearcher interface {
	Query(ctx context.Context, text string, topN int) ([]entity.VectorCandidate, error)
}
