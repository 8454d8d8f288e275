package entity

import "errors"

// Domain errors
var (
	// FAQ errors
	ErrFAQNotFound = errors.New("faq entry not found")

	// Search errors
	ErrEmptyQuery = errors.New("query is empty")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
