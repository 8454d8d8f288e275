package settings

import (
	"strconv"
	"strings"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/generation"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/search"
)

// Setting keys as stored in the bot_settings table. Values are strings;
// typed accessors fall back to documented defaults on absent or malformed
// values — a broken setting must never abort a request.
const (
	KeyExactMatchThreshold    = "exact_match_threshold"
	KeyKeywordMatchThreshold  = "keyword_match_threshold"
	KeySemanticMatchThreshold = "semantic_match_threshold"
	KeyKeywordSearchMaxWords  = "keyword_search_max_words"
	KeySemanticTopN           = "semantic_top_n"
	KeyDisambiguationEnabled  = "disambiguation_enabled"
	KeyDisambiguationBand     = "disambiguation_band"
	KeyDisambiguationFloor    = "disambiguation_floor"
	KeyFallbackMessage        = "fallback_message"
	KeyShowSimilarity         = "show_similarity"

	KeyRAGEnabled              = "rag_enabled"
	KeyRAGMinRelevanceScore    = "rag_min_relevance_score"
	KeyRAGMaxChunks            = "rag_max_chunks"
	KeyRAGMaxTokens            = "rag_max_tokens"
	KeyRAGTemperature          = "rag_temperature"
	KeyRAGSystemPrompt         = "rag_system_prompt"
	KeyRAGClarificationPhrases = "rag_clarification_phrases"
	KeyRAGNoAnswerPhrases      = "rag_no_answer_phrases"
)

// RAG defaults.
const (
	DefaultRAGMinRelevanceScore = 40.0
	DefaultRAGMaxChunks         = 3
	DefaultRAGMaxTokens         = 1024
	DefaultRAGTemperature       = 0.3
)

// Values is one snapshot of the flat settings map.
type Values map[string]string

func (v Values) String(key, def string) string {
	if raw, ok := v[key]; ok && raw != "" {
		return raw
	}
	return def
}

func (v Values) Float(key string, def float64) float64 {
	raw, ok := v[key]
	if !ok {
		return def
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def
	}
	return parsed
}

func (v Values) Int(key string, def int) int {
	raw, ok := v[key]
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return parsed
}

func (v Values) Bool(key string, def bool) bool {
	raw, ok := v[key]
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return parsed
}

// List parses a comma-separated value into trimmed non-empty items.
func (v Values) List(key string) []string {
	raw, ok := v[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// SearchOptions maps the snapshot onto cascade thresholds.
// The disambiguate flag is a caller policy: generation-enabled callers
// override it to fold near-ties into context instead.
func (v Values) SearchOptions() search.Options {
	return search.Options{
		ExactThreshold:      v.Float(KeyExactMatchThreshold, search.DefaultExactThreshold),
		KeywordThreshold:    v.Float(KeyKeywordMatchThreshold, search.DefaultKeywordThreshold),
		SemanticThreshold:   v.Float(KeySemanticMatchThreshold, search.DefaultSemanticThreshold),
		KeywordMaxWords:     v.Int(KeyKeywordSearchMaxWords, search.DefaultKeywordMaxWords),
		SemanticTopN:        v.Int(KeySemanticTopN, search.DefaultSemanticTopN),
		Disambiguate:        v.Bool(KeyDisambiguationEnabled, true),
		DisambiguationBand:  v.Float(KeyDisambiguationBand, search.DefaultDisambiguationBand),
		DisambiguationFloor: v.Float(KeyDisambiguationFloor, search.DefaultDisambiguationFloor),
		FallbackMessage:     v.String(KeyFallbackMessage, search.DefaultFallbackMessage),
	}
}

// RAGPolicy is the generation-side view of the settings snapshot.
type RAGPolicy struct {
	Enabled      bool
	MinRelevance float64
	MaxChunks    int
}

func (v Values) RAGPolicy() RAGPolicy {
	return RAGPolicy{
		Enabled:      v.Bool(KeyRAGEnabled, false),
		MinRelevance: v.Float(KeyRAGMinRelevanceScore, DefaultRAGMinRelevanceScore),
		MaxChunks:    v.Int(KeyRAGMaxChunks, DefaultRAGMaxChunks),
	}
}

// GenerationConfig maps the snapshot onto the generator's per-call config.
// Model and retry tuning come from the environment, not from settings.
func (v Values) GenerationConfig() generation.Config {
	return generation.Config{
		MaxTokens:            v.Int(KeyRAGMaxTokens, DefaultRAGMaxTokens),
		Temperature:          v.Float(KeyRAGTemperature, DefaultRAGTemperature),
		SystemPrompt:         v.String(KeyRAGSystemPrompt, generation.DefaultSystemPrompt),
		ClarificationPhrases: v.List(KeyRAGClarificationPhrases),
		NoAnswerPhrases:      v.List(KeyRAGNoAnswerPhrases),
	}
}
