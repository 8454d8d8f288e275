package search

import (
	"context"
	"sort"
	"strings"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const exactMatchConfidence = 100.0

// Engine runs the cascading search: exact match, keyword overlap, semantic
// similarity, then fallback. Tiers are tried in strict priority order and
// the first accepting tier wins. All tiers are read-only and idempotent;
// the engine is safe for concurrent use.
type Engine struct {
	faqStore   FAQStore
	vector     VectorSearcher
	normalizer *Normalizer
	logger     *zap.Logger
}

func NewEngine(faqStore FAQStore, vector VectorSearcher, normalizer *Normalizer, logger *zap.Logger) *Engine {
	return &Engine{
		faqStore:   faqStore,
		vector:     vector,
		normalizer: normalizer,
		logger:     logger,
	}
}

// FindAnswer resolves a raw user query into a SearchResult. It never fails:
// unreachable dependencies degrade the affected tier and the worst case is
// the configured fallback result.
func (e *Engine) FindAnswer(ctx context.Context, query string, opts Options) *entity.SearchResult {
	ctxzap.Info(ctx, "cascading search started",
		zap.String("query", query),
		zap.Float64("exact_threshold", opts.ExactThreshold),
		zap.Float64("keyword_threshold", opts.KeywordThreshold),
		zap.Float64("semantic_threshold", opts.SemanticThreshold),
	)

	if strings.TrimSpace(query) == "" {
		return e.fallback(opts)
	}

	entries, err := e.faqStore.GetAll(ctx)
	if err != nil {
		// The exact and keyword tiers are skipped; semantic search may
		// still answer from the similarity index.
		ctxzap.Warn(ctx, "knowledge base unavailable, skipping exact and keyword tiers", zap.Error(err))
		entries = nil
	}

	if result := e.findExact(ctx, query, entries); result != nil && result.Confidence >= opts.ExactThreshold {
		ctxzap.Info(ctx, "exact match accepted", zap.String("faq_id", result.FAQID))
		return result
	}

	wordCount := len(strings.Fields(query))
	if wordCount <= opts.KeywordMaxWords {
		if result := e.findByKeywords(ctx, query, entries, opts); result != nil {
			ctxzap.Info(ctx, "keyword match accepted",
				zap.String("faq_id", result.FAQID),
				zap.Float64("confidence", result.Confidence),
				zap.String("search_level", string(result.SearchLevel)),
			)
			return result
		}
	} else {
		ctxzap.Debug(ctx, "keyword tier skipped, query too long",
			zap.Int("words", wordCount),
			zap.Int("max_words", opts.KeywordMaxWords),
		)
	}

	if result := e.findSemantic(ctx, query, opts); result != nil {
		ctxzap.Info(ctx, "semantic match accepted",
			zap.String("faq_id", result.FAQID),
			zap.Float64("confidence", result.Confidence),
			zap.String("search_level", string(result.SearchLevel)),
		)
		return result
	}

	ctxzap.Info(ctx, "no tier accepted, returning fallback")
	return e.fallback(opts)
}

// findExact scans the knowledge base for an identical normalized question.
func (e *Engine) findExact(ctx context.Context, query string, entries []*entity.FAQEntry) *entity.SearchResult {
	normalizedQuery := Normalize(query)
	if normalizedQuery == "" {
		return nil
	}

	for _, entry := range entries {
		if Normalize(entry.Question) != normalizedQuery {
			continue
		}
		ctxzap.Debug(ctx, "exact match found", zap.String("faq_id", entry.ID))
		return &entity.SearchResult{
			Found:       true,
			FAQID:       entry.ID,
			Question:    entry.Question,
			Answer:      entry.Answer,
			Confidence:  exactMatchConfidence,
			SearchLevel: entity.SearchLevelExact,
		}
	}
	return nil
}

// scoredEntry pairs a knowledge entry with its keyword-tier score.
type scoredEntry struct {
	entry      *entity.FAQEntry
	matched    int
	confidence float64
}

// findByKeywords scores token overlap between the query's keywords and each
// entry's question and keyword tokens. Ties break on the lowest FAQ id so
// results stay deterministic.
func (e *Engine) findByKeywords(ctx context.Context, query string, entries []*entity.FAQEntry, opts Options) *entity.SearchResult {
	queryKeywords := e.normalizer.ExtractKeywords(ctx, query, DefaultKeywordMinLength)
	if len(queryKeywords) == 0 {
		ctxzap.Debug(ctx, "keyword tier skipped, no keywords extracted")
		return nil
	}

	scored := make([]scoredEntry, 0, len(entries))
	for _, entry := range entries {
		tokens := e.entryTokens(ctx, entry)
		matched := 0
		for _, keyword := range queryKeywords {
			if _, ok := tokens[keyword]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		scored = append(scored, scoredEntry{
			entry:      entry,
			matched:    matched,
			confidence: keywordConfidence(matched, len(queryKeywords)),
		})
	}

	if len(scored) == 0 {
		return nil
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].confidence != scored[j].confidence {
			return scored[i].confidence > scored[j].confidence
		}
		return scored[i].entry.ID < scored[j].entry.ID
	})

	best := scored[0]
	ctxzap.Debug(ctx, "best keyword candidate",
		zap.String("faq_id", best.entry.ID),
		zap.Int("matched", best.matched),
		zap.Int("query_keywords", len(queryKeywords)),
		zap.Float64("confidence", best.confidence),
	)

	if best.confidence < opts.KeywordThreshold {
		return nil
	}

	candidates := make([]entity.Alternative, 0, len(scored))
	for _, s := range scored {
		candidates = append(candidates, entity.Alternative{
			FAQID:      s.entry.ID,
			Question:   s.entry.Question,
			Answer:     s.entry.Answer,
			Confidence: s.confidence,
		})
	}

	if alternatives, ok := nearTied(candidates, opts); ok {
		return disambiguationResult(best.entry.ID, best.entry.Question, best.entry.Answer, best.confidence, alternatives)
	}

	return &entity.SearchResult{
		Found:       true,
		FAQID:       best.entry.ID,
		Question:    best.entry.Question,
		Answer:      best.entry.Answer,
		Confidence:  best.confidence,
		SearchLevel: entity.SearchLevelKeyword,
	}
}

// entryTokens collects the lemmatized tokens of an entry's question and
// its curated keyword list.
func (e *Engine) entryTokens(ctx context.Context, entry *entity.FAQEntry) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, lemma := range e.normalizer.Lemmatize(ctx, entry.Question) {
		tokens[lemma] = struct{}{}
	}
	for _, keyword := range entry.Keywords {
		for _, lemma := range e.normalizer.Lemmatize(ctx, keyword) {
			tokens[lemma] = struct{}{}
		}
	}
	return tokens
}

// findSemantic delegates to the similarity service and converts distances
// to confidence percentages. An unreachable service just skips the tier.
func (e *Engine) findSemantic(ctx context.Context, query string, opts Options) *entity.SearchResult {
	topN := opts.SemanticTopN
	if topN <= 0 {
		topN = DefaultSemanticTopN
	}

	hits, err := e.vector.Query(ctx, query, topN)
	if err != nil {
		ctxzap.Warn(ctx, "similarity service unavailable, skipping semantic tier", zap.Error(err))
		return nil
	}
	if len(hits) == 0 {
		ctxzap.Debug(ctx, "semantic tier found no candidates")
		return nil
	}

	candidates := make([]entity.Alternative, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, entity.Alternative{
			FAQID:      hit.ID,
			Question:   hit.Metadata.Question,
			Answer:     hit.Metadata.Answer,
			Confidence: distanceToConfidence(hit.Distance),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	best := candidates[0]
	ctxzap.Debug(ctx, "best semantic candidate",
		zap.String("faq_id", best.FAQID),
		zap.Float64("confidence", best.Confidence),
		zap.Float64("threshold", opts.SemanticThreshold),
	)

	if best.Confidence < opts.SemanticThreshold {
		return nil
	}

	if alternatives, ok := nearTied(candidates, opts); ok {
		return disambiguationResult(best.FAQID, best.Question, best.Answer, best.Confidence, alternatives)
	}

	return &entity.SearchResult{
		Found:        true,
		FAQID:        best.FAQID,
		Question:     best.Question,
		Answer:       best.Answer,
		Confidence:   best.Confidence,
		SearchLevel:  entity.SearchLevelSemantic,
		Alternatives: candidates,
	}
}

func (e *Engine) fallback(opts Options) *entity.SearchResult {
	message := opts.FallbackMessage
	if message == "" {
		message = DefaultFallbackMessage
	}
	return &entity.SearchResult{
		Found:           false,
		Confidence:      0,
		SearchLevel:     entity.SearchLevelNone,
		FallbackMessage: message,
	}
}

// distanceToConfidence converts a raw vector distance to a 0-100 similarity
// percentage. Distances above 1 clamp to zero.
func distanceToConfidence(distance float64) float64 {
	similarity := 1.0 - distance
	if similarity < 0 {
		similarity = 0
	}
	return similarity * 100.0
}

// nearTied reports whether the top candidates are too close to auto-select
// and returns the candidates above the disambiguation floor when they are.
// Candidates must be sorted by descending confidence.
func nearTied(candidates []entity.Alternative, opts Options) ([]entity.Alternative, bool) {
	if !opts.Disambiguate || len(candidates) < 2 {
		return nil, false
	}

	top, second := candidates[0], candidates[1]
	if top.Confidence < opts.DisambiguationFloor || second.Confidence < opts.DisambiguationFloor {
		return nil, false
	}
	if top.Confidence-second.Confidence > opts.DisambiguationBand {
		return nil, false
	}

	tied := make([]entity.Alternative, 0, len(candidates))
	for _, c := range candidates {
		if c.Confidence >= opts.DisambiguationFloor {
			tied = append(tied, c)
		}
	}
	return tied, true
}

// disambiguationResult keeps the top candidate as the primary match (so the
// found invariant holds) while deferring the final choice to the caller.
func disambiguationResult(faqID, question, answer string, confidence float64, alternatives []entity.Alternative) *entity.SearchResult {
	return &entity.SearchResult{
		Found:        true,
		FAQID:        faqID,
		Question:     question,
		Answer:       answer,
		Confidence:   confidence,
		SearchLevel:  entity.SearchLevelDisambiguation,
		Alternatives: alternatives,
	}
}
