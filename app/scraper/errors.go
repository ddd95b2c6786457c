package scraper

import "errors"

// Error taxonomy surfaced to callers. Individual category probes absorb
// their own failures; only pre-flight validation and a total root-document
// fetch failure abort an extraction.
var (
	ErrInvalidURL      = errors.New("invalid URL")
	ErrWebsiteNotFound = errors.New("website not found")
	ErrTimeout         = errors.New("request timed out")
	ErrParse           = errors.New("failed to parse document")
)
