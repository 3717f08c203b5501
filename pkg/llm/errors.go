package llm

import "errors"

// Sentinel errors for the generation path. None of these should reach the
// end user: the orchestrator absorbs them and serves the offline fallback.
var (
	// ErrNotConfigured means no credentials were supplied at startup.
	ErrNotConfigured = errors.New("llm: provider not configured")

	// ErrAuth means token issuance or refresh failed.
	ErrAuth = errors.New("llm: authentication failed")

	// ErrTimeout means the generation call exceeded its fixed deadline.
	// No retry is attempted within the same request.
	ErrTimeout = errors.New("llm: generation timed out")

	// ErrGeneration means the remote service rejected or failed the request.
	ErrGeneration = errors.New("llm: generation failed")
)
