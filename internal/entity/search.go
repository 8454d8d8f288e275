package entity

// SearchLevel identifies the cascade tier that produced a search result.
type SearchLevel string

const (
	SearchLevelExact          SearchLevel = "exact"
	SearchLevelKeyword        SearchLevel = "keyword"
	SearchLevelSemantic       SearchLevel = "semantic"
	SearchLevelDisambiguation SearchLevel = "disambiguation"
	SearchLevelNone           SearchLevel = "none"
)

// Valid reports whether the level is one of the known cascade tiers.
func (l SearchLevel) Valid() bool {
	switch l {
	case SearchLevelExact, SearchLevelKeyword, SearchLevelSemantic,
		SearchLevelDisambiguation, SearchLevelNone:
		return true
	}
	return false
}

// Alternative is one near-tied candidate offered to the caller instead of
// (or in addition to) the auto-selected answer.
type Alternative struct {
	FAQID      string  `json:"faq_id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// SearchResult is the outcome of one cascading search. It is constructed
// once per query and never mutated afterwards; downstream stages build new
// values instead of editing it in place.
//
// Invariant: Found == true implies Confidence > 0 and FAQID != "".
type SearchResult struct {
	Found           bool          `json:"found"`
	FAQID           string        `json:"faq_id,omitempty"`
	Question        string        `json:"question,omitempty"`
	Answer          string        `json:"answer,omitempty"`
	Confidence      float64       `json:"confidence"`
	SearchLevel     SearchLevel   `json:"search_level"`
	Alternatives    []Alternative `json:"alternatives,omitempty"`
	FallbackMessage string        `json:"fallback_message,omitempty"`
}
