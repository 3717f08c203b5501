package dto

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type GenerateResponse struct {
	Answer     string  `json:"answer"`
	Model      string  `json:"model"`
	Confidence float64 `json:"confidence"`
	TokensUsed int     `json:"tokensUsed"`
}

type ClearCacheResponse struct {
	Cleared      bool `json:"cleared"`
	EntriesAfter int  `json:"entriesAfter"`
}
