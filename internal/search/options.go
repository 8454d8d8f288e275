package search

// Options carries the tunable thresholds of one cascading search. Values
// come from the settings store; absent keys fall back to the defaults below.
type Options struct {
	// ExactThreshold accepts tier 1 matches. Exact matches always score 100,
	// so any threshold at or below 100 effectively always accepts.
	ExactThreshold float64
	// KeywordThreshold accepts tier 2 matches (65-80 in practice).
	KeywordThreshold float64
	// SemanticThreshold accepts tier 3 matches.
	SemanticThreshold float64
	// KeywordMaxWords skips tier 2 for queries longer than this many words.
	KeywordMaxWords int
	// SemanticTopN is how many candidates the similarity service is asked for.
	SemanticTopN int

	// Disambiguate enables returning near-tied candidates to the caller
	// instead of auto-selecting the top one. Generation-enabled callers
	// usually turn this off and consume the candidates as combined context.
	Disambiguate bool
	// DisambiguationBand is the maximum confidence gap between the top two
	// candidates for them to count as near-tied.
	DisambiguationBand float64
	// DisambiguationFloor is the minimum confidence for a candidate to be
	// offered as an option.
	DisambiguationFloor float64

	// FallbackMessage is shown when no tier accepts.
	FallbackMessage string
}

// Defaults match the documented settings-store defaults.
const (
	DefaultExactThreshold      = 95.0
	DefaultKeywordThreshold    = 65.0
	DefaultSemanticThreshold   = 45.0
	DefaultKeywordMaxWords     = 5
	DefaultSemanticTopN        = 3
	DefaultDisambiguationBand  = 5.0
	DefaultDisambiguationFloor = 50.0
)

// DefaultFallbackMessage is used when the settings store has no
// fallback_message key.
const DefaultFallbackMessage = "😔 Извините, я не нашел точного ответа на ваш вопрос.\n\n" +
	"Попробуйте:\n" +
	"• Переформулировать вопрос\n" +
	"• Выбрать категорию из списка\n" +
	"• Обратиться к ответственному сотруднику"

// DefaultOptions returns the documented defaults with disambiguation enabled.
func DefaultOptions() Options {
	return Options{
		ExactThreshold:      DefaultExactThreshold,
		KeywordThreshold:    DefaultKeywordThreshold,
		SemanticThreshold:   DefaultSemanticThreshold,
		KeywordMaxWords:     DefaultKeywordMaxWords,
		SemanticTopN:        DefaultSemanticTopN,
		Disambiguate:        true,
		DisambiguationBand:  DefaultDisambiguationBand,
		DisambiguationFloor: DefaultDisambiguationFloor,
		FallbackMessage:     DefaultFallbackMessage,
	}
}
