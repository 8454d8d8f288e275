package entity

// FAQEntry is a single knowledge-base record.
// The answer pipeline treats entries as read-only input; all writes
// happen outside of this service.
type FAQEntry struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}
