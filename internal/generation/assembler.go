package generation

import (
	"sort"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
)

// AssembleContext projects a search result into a bounded, ordered,
// deduplicated set of context chunks for generation.
//
// When the result carries alternatives, every alternative at or above
// minRelevance is included in descending confidence order, capped at
// maxChunks. Otherwise only the primary match is used. An empty return
// value means "no generation possible", not an error.
func AssembleContext(result *entity.SearchResult, maxChunks int, minRelevance float64) []entity.ContextChunk {
	if result == nil {
		return nil
	}
	if maxChunks <= 0 {
		return nil
	}

	if len(result.Alternatives) == 0 {
		if !result.Found || result.Confidence < minRelevance {
			return nil
		}
		return []entity.ContextChunk{{
			FAQID:      result.FAQID,
			Question:   result.Question,
			Answer:     result.Answer,
			Confidence: result.Confidence,
		}}
	}

	candidates := make([]entity.Alternative, len(result.Alternatives))
	copy(candidates, result.Alternatives)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	seen := make(map[string]struct{}, len(candidates))
	chunks := make([]entity.ContextChunk, 0, maxChunks)
	for _, candidate := range candidates {
		if candidate.Confidence < minRelevance {
			continue
		}
		if _, ok := seen[candidate.FAQID]; ok {
			continue
		}
		seen[candidate.FAQID] = struct{}{}
		chunks = append(chunks, entity.ContextChunk{
			FAQID:      candidate.FAQID,
			Question:   candidate.Question,
			Answer:     candidate.Answer,
			Confidence: candidate.Confidence,
		})
		if len(chunks) == maxChunks {
			break
		}
	}
	return chunks
}
