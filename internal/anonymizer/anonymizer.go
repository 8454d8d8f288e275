package anonymizer

import (
	"regexp"
	"sort"
	"strings"
)

// Masking patterns. Link tags go first: they frequently wrap personal names
// and profile URLs, and masking them whole keeps a later pass from
// corrupting their inside.
var (
	// BB-style link tags: [URL=...]display text[/URL]
	linkTagPattern = regexp.MustCompile(`(?i)\[URL=.*?\].*?\[/URL\]`)

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Regional phone formats: +7 (999) 123-45-67, 8 999 123 45 67, +79991234567.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+7\s*\(?\d{3}\)?\s*\d{3}[-\s]?\d{2}[-\s]?\d{2}`),
		regexp.MustCompile(`8\s*\(?\d{3}\)?\s*\d{3}[-\s]?\d{2}[-\s]?\d{2}`),
		regexp.MustCompile(`[+]?[78]\d{10}`),
	}
)

// Span is a named-entity occurrence reported by an EntityTagger.
type Span struct {
	Start int
	End   int
	Type  EntityType
}

// EntityTagger finds person, location and organization spans in text.
// No implementation ships by default: NER masking produces too many false
// positives on this corpus, so it is an opt-in hook.
type EntityTagger interface {
	Tag(text string) []Span
}

// Engine masks and unmasks personal data. The engine itself is immutable
// and safe for concurrent use; all per-request state lives in the Mapping
// passed explicitly through Mask and Unmask.
type Engine struct {
	tagger EntityTagger
}

type Option func(*Engine)

// WithEntityTagger enables the optional NER pass.
func WithEntityTagger(tagger EntityTagger) Option {
	return func(e *Engine) {
		e.tagger = tagger
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mask replaces recognized personal data with typed numbered placeholders,
// recording every substitution in the mapping. Passes run in fixed order;
// placeholders inserted by earlier passes are never re-matched by later ones.
func (e *Engine) Mask(text string, mapping *Mapping) string {
	if text == "" {
		return text
	}

	result := linkTagPattern.ReplaceAllStringFunc(text, func(match string) string {
		return mapping.placeholderFor(TypeURL, match)
	})

	result = emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return mapping.placeholderFor(TypeEmail, match)
	})

	for _, pattern := range phonePatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			return mapping.placeholderFor(TypePhone, match)
		})
	}

	if e.tagger != nil {
		result = e.maskEntities(result, mapping)
	}

	return result
}

// maskEntities replaces tagged spans right to left so earlier offsets stay valid.
func (e *Engine) maskEntities(text string, mapping *Mapping) string {
	spans := e.tagger.Tag(text)
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start > spans[j].Start
	})

	result := text
	for _, span := range spans {
		if span.Start < 0 || span.End > len(result) || span.Start >= span.End {
			continue
		}
		switch span.Type {
		case TypePer, TypeLoc, TypeOrg:
			placeholder := mapping.placeholderFor(span.Type, result[span.Start:span.End])
			result = result[:span.Start] + placeholder + result[span.End:]
		}
	}
	return result
}

// Unmask restores real values for every placeholder in the mapping.
// Placeholders are replaced longest-key-first so [PER_1] never clobbers
// the prefix of [PER_10]. An empty mapping returns the input unchanged.
func Unmask(text string, mapping *Mapping) string {
	if text == "" || mapping.Len() == 0 {
		return text
	}

	placeholders := make([]string, 0, len(mapping.placeholders))
	for placeholder := range mapping.placeholders {
		placeholders = append(placeholders, placeholder)
	}
	sort.Slice(placeholders, func(i, j int) bool {
		if len(placeholders[i]) != len(placeholders[j]) {
			return len(placeholders[i]) > len(placeholders[j])
		}
		return placeholders[i] < placeholders[j]
	})

	result := text
	for _, placeholder := range placeholders {
		result = strings.ReplaceAll(result, placeholder, mapping.placeholders[placeholder])
	}
	return result
}
