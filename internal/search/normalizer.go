package search

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DefaultKeywordMinLength is the minimum rune length of an extracted keyword.
const DefaultKeywordMinLength = 3

// Lemmatizer reduces words to their dictionary base forms. Implementations
// may call an external morphological service and are allowed to fail; the
// Normalizer degrades to the raw lower-cased tokens in that case.
type Lemmatizer interface {
	Lemmas(ctx context.Context, words []string) ([]string, error)
}

// NoopLemmatizer keeps words unchanged. It is the fallback implementation
// used when no morphological service is configured; the cascade stays
// correct with it, only less tolerant to word inflection.
type NoopLemmatizer struct{}

func (NoopLemmatizer) Lemmas(_ context.Context, words []string) ([]string, error) {
	return words, nil
}

// Normalizer turns free-form query and document text into comparable tokens.
// All methods are pure functions of their input and the lemmatizer's
// availability; the Normalizer itself holds no mutable state.
type Normalizer struct {
	lemmatizer Lemmatizer
}

func NewNormalizer(lemmatizer Lemmatizer) *Normalizer {
	if lemmatizer == nil {
		lemmatizer = NoopLemmatizer{}
	}
	return &Normalizer{lemmatizer: lemmatizer}
}

// Normalize lower-cases text, strips punctuation (keeping internal hyphens)
// and collapses runs of whitespace into single spaces.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Lemmatize normalizes text and reduces every token to its base form.
// When the morphological service is unavailable the raw lower-cased tokens
// are returned unchanged; this method never returns an error.
func (n *Normalizer) Lemmatize(ctx context.Context, text string) []string {
	words := strings.Fields(Normalize(text))
	if len(words) == 0 {
		return nil
	}

	lemmas, err := n.lemmatizer.Lemmas(ctx, words)
	if err != nil || len(lemmas) != len(words) {
		if err != nil {
			ctxzap.Debug(ctx, "lemmatization unavailable, using raw tokens", zap.Error(err))
		}
		return words
	}

	for i, lemma := range lemmas {
		if lemma == "" {
			lemmas[i] = words[i]
			continue
		}
		lemmas[i] = strings.ToLower(lemma)
	}
	return lemmas
}

// ExtractKeywords lemmatizes text, drops stop words and tokens shorter than
// minLength runes, and deduplicates while preserving first-occurrence order.
func (n *Normalizer) ExtractKeywords(ctx context.Context, text string, minLength int) []string {
	if minLength <= 0 {
		minLength = DefaultKeywordMinLength
	}

	lemmas := n.Lemmatize(ctx, text)

	seen := make(map[string]struct{}, len(lemmas))
	keywords := make([]string, 0, len(lemmas))
	for _, lemma := range lemmas {
		if isStopWord(lemma) || utf8.RuneCountInString(lemma) < minLength {
			continue
		}
		if _, ok := seen[lemma]; ok {
			continue
		}
		seen[lemma] = struct{}{}
		keywords = append(keywords, lemma)
	}
	return keywords
}
