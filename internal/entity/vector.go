package entity

// VectorCandidateMetadata is the payload stored alongside each indexed entry
// in the similarity service.
type VectorCandidateMetadata struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// VectorCandidate is one ranked hit returned by the similarity service.
// Distance is a raw vector distance; smaller means closer.
type VectorCandidate struct {
	ID       string                  `json:"id"`
	Metadata VectorCandidateMetadata `json:"metadata"`
	Distance float64                 `json:"distance"`
}

// VectorQueryRequest asks the similarity service for the top-N candidates
// for a raw query string. Embedding happens inside the service.
type VectorQueryRequest struct {
	Query    string `json:"query"`
	TopN     int    `json:"n_results"`
	Category string `json:"category,omitempty"`
}

// VectorQueryResponse is the ranked candidate list for one query.
type VectorQueryResponse struct {
	Candidates []VectorCandidate `json:"candidates"`
}
