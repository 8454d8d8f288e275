package entity

import "time"

// QueryLog records one incoming user query.
type QueryLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	QueryText string    `json:"query_text"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// AnswerLogExportRow is one row of the answer-log export, joining the
// answer with its originating query.
type AnswerLogExportRow struct {
	CreatedAt   time.Time   `json:"created_at"`
	UserID      string      `json:"user_id"`
	QueryText   string      `json:"query_text"`
	AnswerShown string      `json:"answer_shown"`
	FAQID       string      `json:"faq_id"`
	Confidence  float64     `json:"confidence"`
	SearchLevel SearchLevel `json:"search_level"`
	Generated   bool        `json:"generated"`
}

// AnswerLog records the answer shown for a query: which entry matched,
// how confident the match was and which cascade tier produced it.
// FAQID is empty when nothing was found.
type AnswerLog struct {
	ID          string      `json:"id"`
	QueryLogID  string      `json:"query_log_id"`
	FAQID       string      `json:"faq_id,omitempty"`
	AnswerShown string      `json:"answer_shown"`
	Confidence  float64     `json:"confidence"`
	SearchLevel SearchLevel `json:"search_level"`
	Generated   bool        `json:"generated"`
	CreatedAt   time.Time   `json:"created_at"`
}
