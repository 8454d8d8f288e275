package entity

// ContextChunk is one knowledge entry projected for inclusion in a
// generation prompt. Chunks live for a single request only.
type ContextChunk struct {
	FAQID      string  `json:"faq_id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// AnswerKind classifies the generated text after PII restoration.
type AnswerKind string

const (
	// AnswerNormal is a regular answer built from the provided context.
	AnswerNormal AnswerKind = "normal"
	// AnswerClarification means the model asked the user to clarify the question.
	AnswerClarification AnswerKind = "clarification"
	// AnswerNoInfo means the model admitted it has no answer in the context.
	AnswerNoInfo AnswerKind = "no_answer"
)

// TokenUsage holds token accounting reported by the generation service.
type TokenUsage struct {
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
	Total      int `json:"total"`
}

// GenerationOutcome is the immutable result of one generation call.
// A failed call still produces an outcome with Error set; generation
// errors never escape the pipeline as panics or returned errors.
type GenerationOutcome struct {
	Text         string     `json:"text"`
	Model        string     `json:"model"`
	Tokens       TokenUsage `json:"tokens"`
	FinishReason string     `json:"finish_reason,omitempty"`
	ChunksUsed   int        `json:"chunks_used"`
	PIICount     int        `json:"pii_count"`
	DurationMs   int64      `json:"duration_ms"`
	Kind         AnswerKind `json:"kind"`
	Error        string     `json:"error,omitempty"`
}

// Failed reports whether the generation call ended with an error.
func (o *GenerationOutcome) Failed() bool {
	return o.Error != ""
}
