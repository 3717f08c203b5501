package llm

import "context"

// GenerationResult is the provider-agnostic outcome of one generation call.
type GenerationResult struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Model      string  `json:"model"`
	TokensUsed int     `json:"tokens_used"`
}

// Status is a read-only snapshot of a provider for status-reporting callers.
type Status struct {
	Configured    bool   `json:"is_available"`
	Authenticated bool   `json:"authenticated"`
	TokenValid    bool   `json:"token_valid"`
	Model         string `json:"model"`
	Region        string `json:"region"`
}

// Provider defines the contract for any hosted LLM backend.
type Provider interface {
	// Generate sends a fully built prompt to the model. It fails with one of
	// the sentinel errors in errors.go; callers are expected to fall back
	// rather than surface these.
	Generate(ctx context.Context, prompt string) (*GenerationResult, error)

	// Configured reports whether credentials were supplied at startup.
	Configured() bool

	// Status returns the current snapshot.
	Status() Status
}
