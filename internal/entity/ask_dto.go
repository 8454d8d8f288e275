package entity

// AskRequest is the payload of POST /api/v1/ask.
type AskRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

// AskResponse carries the search result and, when generation ran,
// the generation outcome alongside it.
type AskResponse struct {
	Result     SearchResult       `json:"result"`
	Generation *GenerationOutcome `json:"generation,omitempty"`
}

// ErrorResponse is the standard error payload of the HTTP API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ExportFormat selects the answer-log export encoding.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
	FormatXLSX ExportFormat = "xlsx"
)
