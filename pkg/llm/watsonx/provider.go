package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"krishisahay-be/pkg/llm"
)

const (
	defaultModelID = "ibm/granite-3-8b-instruct"
	defaultRegion  = "us-south"
	apiVersion     = "2023-05-29"

	iamTokenURL = "https://iam.cloud.ibm.com/identity/token"

	// generateTimeout bounds every generation call; on expiry the caller
	// falls back immediately, no retry within the same request.
	generateTimeout = 30 * time.Second
	authTimeout     = 10 * time.Second

	// tokenSafetyMargin forces a refresh slightly before the advertised
	// expiry so an in-flight request never races token invalidation.
	tokenSafetyMargin = 60 * time.Second
)

// Regions accepted by the WATSONX_REGION selector.
var Regions = []string{"us-south", "eu-de", "eu-gb", "jp-tok"}

// Config holds the credentials and overrides for a Provider.
type Config struct {
	APIKey    string
	ProjectID string
	Region    string
	ModelID   string

	// BaseURL and AuthURL override the IBM endpoints, for tests.
	BaseURL string
	AuthURL string
}

// Provider is the IBM Watsonx Granite gateway. It owns token lifecycle and
// timeout policy; it holds no response cache. Safe for concurrent use: the
// refresh-if-needed transition is guarded by a mutex so simultaneous
// callers sharing an expired token trigger a single re-authentication.
type Provider struct {
	apiKey    string
	projectID string
	region    string
	modelID   string
	baseURL   string
	authURL   string

	httpClient *http.Client
	logger     *log.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	now func() time.Time
}

type generateParameters struct {
	MaxNewTokens      int      `json:"max_new_tokens"`
	Temperature       float64  `json:"temperature"`
	TopP              float64  `json:"top_p"`
	TopK              int      `json:"top_k"`
	RepetitionPenalty float64  `json:"repetition_penalty"`
	StopSequences     []string `json:"stop_sequences"`
}

type generateRequest struct {
	ModelID    string             `json:"model_id"`
	Input      string             `json:"input"`
	Parameters generateParameters `json:"parameters"`
	ProjectID  string             `json:"project_id"`
}

type generateResponse struct {
	Results []struct {
		GeneratedText       string `json:"generated_text"`
		GeneratedTokenCount int    `json:"generated_token_count"`
	} `json:"results"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// New creates a Watsonx provider. A provider with missing credentials is
// still usable: Configured reports false and Generate fails with
// llm.ErrNotConfigured so the caller can fall back.
func New(cfg Config, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	region := cfg.Region
	if !validRegion(region) {
		region = defaultRegion
	}
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = defaultModelID
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.ml.cloud.ibm.com", region)
	}
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = iamTokenURL
	}

	p := &Provider{
		apiKey:     cfg.APIKey,
		projectID:  cfg.ProjectID,
		region:     region,
		modelID:    modelID,
		baseURL:    baseURL,
		authURL:    authURL,
		httpClient: &http.Client{},
		logger:     logger,
		now:        time.Now,
	}

	if p.Configured() {
		logger.Printf("[WATSONX] configured (model=%s region=%s)", modelID, region)
	} else {
		logger.Printf("[WATSONX] credentials not set, running in fallback mode")
	}
	return p
}

// Configured reports whether both the API key and project id are present.
func (p *Provider) Configured() bool {
	return p.apiKey != "" && p.projectID != ""
}

// Status returns a read-only snapshot for status endpoints.
func (p *Provider) Status() llm.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return llm.Status{
		Configured:    p.Configured(),
		Authenticated: p.accessToken != "",
		TokenValid:    p.accessToken != "" && p.now().Before(p.tokenExpiry),
		Model:         p.modelID,
		Region:        p.region,
	}
}

// Generate sends the prompt to the Granite text-generation endpoint. The
// token is refreshed first if needed; every failure maps to one of the llm
// sentinel errors so the orchestrator can fall back without inspecting
// transport details.
func (p *Provider) Generate(ctx context.Context, prompt string) (*llm.GenerationResult, error) {
	if !p.Configured() {
		return nil, llm.ErrNotConfigured
	}

	token, err := p.ensureAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	reqBody := generateRequest{
		ModelID: p.modelID,
		Input:   prompt,
		Parameters: generateParameters{
			MaxNewTokens:      1000,
			Temperature:       0.7,
			TopP:              0.9,
			TopK:              50,
			RepetitionPenalty: 1.1,
			StopSequences:     []string{"Human:", "User:", "\n\nHuman:", "\n\nUser:"},
		},
		ProjectID: p.projectID,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", llm.ErrGeneration, err)
	}

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/ml/v1/text/generation?version=%s", p.baseURL, apiVersion)
	req, err := http.NewRequestWithContext(genCtx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", llm.ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			p.logger.Printf("[WATSONX] generation timed out after %s", generateTimeout)
			return nil, llm.ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", llm.ErrGeneration, err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		// Token was revoked server-side; drop it so the next call refreshes.
		p.invalidateToken()
		return nil, fmt.Errorf("%w: status 401", llm.ErrAuth)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", llm.ErrGeneration, resp.StatusCode, truncate(string(bodyBytes), 200))
	}

	var genResp generateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", llm.ErrGeneration, err)
	}
	if len(genResp.Results) == 0 {
		return nil, fmt.Errorf("%w: empty results", llm.ErrGeneration)
	}

	result := genResp.Results[0]
	answer := postProcess(result.GeneratedText)
	p.logger.Printf("[WATSONX] generated %d tokens", result.GeneratedTokenCount)

	return &llm.GenerationResult{
		Answer:     answer,
		Confidence: 0.92,
		Source:     "IBM Watsonx Granite LLM",
		Model:      p.modelID,
		TokensUsed: result.GeneratedTokenCount,
	}, nil
}

// ensureAuthenticated returns a valid bearer token, refreshing it under the
// mutex when it is missing or inside the safety margin of its expiry.
func (p *Provider) ensureAuthenticated(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && p.now().Before(p.tokenExpiry.Add(-tokenSafetyMargin)) {
		return p.accessToken, nil
	}

	authCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("grant_type", "urn:ibm:params:oauth:grant-type:apikey")
	form.Set("apikey", p.apiKey)

	req, err := http.NewRequestWithContext(authCtx, http.MethodPost, p.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build token request: %v", llm.ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", llm.ErrAuth, resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decode token: %v", llm.ErrAuth, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", llm.ErrAuth)
	}

	expiresIn := tok.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	p.accessToken = tok.AccessToken
	p.tokenExpiry = p.now().Add(time.Duration(expiresIn) * time.Second)
	p.logger.Printf("[WATSONX] authenticated, token valid for %ds", expiresIn)

	return p.accessToken, nil
}

func (p *Provider) invalidateToken() {
	p.mu.Lock()
	p.accessToken = ""
	p.tokenExpiry = time.Time{}
	p.mu.Unlock()
}

// postProcess strips chat-style prefixes the model sometimes emits.
func postProcess(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range []string{"Response:", "Answer:", "AI:", "Assistant:"} {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}
	return text
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout() || errors.Is(urlErr.Err, context.DeadlineExceeded)
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func validRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}
