package search

const (
	// maxKeywordConfidence caps the keyword tier below an exact match,
	// so a keyword hit can never outrank tier 1.
	maxKeywordConfidence = 95.0

	keywordBaseConfidence = 70.0
	keywordMatchBonus     = 25.0
)

// keywordConfidence scores a keyword-tier candidate by how many of the
// query's keywords were found in the entry. A full match scores the cap;
// partial matches start at the base and earn a proportional bonus.
func keywordConfidence(matched, totalQueryKeywords int) float64 {
	if totalQueryKeywords == 0 || matched == 0 {
		return 0
	}

	ratio := float64(matched) / float64(totalQueryKeywords)
	if ratio >= 1.0 {
		return maxKeywordConfidence
	}

	confidence := keywordBaseConfidence + ratio*keywordMatchBonus
	if confidence > maxKeywordConfidence {
		confidence = maxKeywordConfidence
	}
	return confidence
}
