package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Extractor errors
	ErrExtractorNotFound = fmt.Errorf("extractor binary not found")
	ErrExtractionFailed  = fmt.Errorf("extraction failed")
	ErrTimeout           = fmt.Errorf("operation timed out")

	// Channel and playlist errors
	ErrInvalidChannelURL  = fmt.Errorf("invalid channel URL")
	ErrCookieFileNotFound = fmt.Errorf("cookie file not found")
	ErrSessionNotFound    = fmt.Errorf("fetch session not found")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
