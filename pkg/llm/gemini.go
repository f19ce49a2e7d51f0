package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-2.0-flash"
	defaultTimeout       = 60 * time.Second

	defaultTemperature     = 0.2
	defaultMaxOutputTokens = 2000
)

// Gemini is a Generator backed by the Google Generative Language API.
type Gemini struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// GeminiOption configures a Gemini client.
type GeminiOption func(*Gemini)

// WithModel sets the model name. Default: gemini-2.0-flash.
func WithModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithBaseURL overrides the API base URL. Useful for testing.
func WithBaseURL(url string) GeminiOption {
	return func(g *Gemini) {
		if url != "" {
			g.baseURL = url
		}
	}
}

// WithTimeout sets the HTTP request timeout. Default: 60s.
// A timed-out call surfaces as a retryable *Error.
func WithTimeout(d time.Duration) GeminiOption {
	return func(g *Gemini) {
		if d > 0 {
			g.client.Timeout = d
		}
	}
}

// WithTemperature sets the default sampling temperature. Default: 0.2.
func WithTemperature(t float64) GeminiOption {
	return func(g *Gemini) {
		g.temperature = t
	}
}

// WithMaxOutputTokens sets the default output token cap. Default: 2000.
func WithMaxOutputTokens(n int) GeminiOption {
	return func(g *Gemini) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
// The caller owns timeout configuration in that case.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *Gemini) {
		if c != nil {
			g.client = c
		}
	}
}

// NewGemini creates a Gemini client with the given API key.
func NewGemini(apiKey string, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		apiKey:      apiKey,
		baseURL:     defaultGeminiBaseURL,
		model:       defaultGeminiModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxOutputTokens,
		client:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

// --- internal Gemini API types ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, req Request) (*Response, error) {
	body := g.buildRequest(req)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Op: "generate", Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Op: "generate", Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		// Network failures and timeouts are worth retrying.
		return nil, &Error{Op: "generate", Err: err, Retryable: true}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Error{Op: "generate", Err: fmt.Errorf("read response: %w", err), Retryable: true}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &Error{
			Op:        "generate",
			Err:       fmt.Errorf("unexpected status %d: %s", httpResp.StatusCode, truncate(string(respBody), 512)),
			Retryable: retryableStatus(httpResp.StatusCode),
		}
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &Error{Op: "generate", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	text := candidateText(&resp)
	if text == "" {
		return nil, &Error{Op: "generate", Err: errors.New("response contains no text")}
	}

	model := resp.ModelVersion
	if model == "" {
		model = g.model
	}

	return &Response{
		Text:  text,
		Model: model,
		Usage: Usage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// buildRequest creates a Gemini API request from a Request.
func (g *Gemini) buildRequest(req Request) geminiRequest {
	temp := g.temperature
	if req.Temperature != 0 {
		temp = req.Temperature
	}

	maxTokens := g.maxTokens
	if req.MaxOutputTokens != 0 {
		maxTokens = req.MaxOutputTokens
	}

	out := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temp,
			MaxOutputTokens: maxTokens,
		},
	}
	if req.System != "" {
		out.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	return out
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var buf bytes.Buffer
	for _, part := range resp.Candidates[0].Content.Parts {
		buf.WriteString(part.Text)
	}
	return buf.String()
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
