// Package gemini implements llm.Engine using the Google Generative
// Language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"feasibility-backend/internal/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const systemInstruction = "אתה מומחה ניתוח עסקי עם יכולות חשיבה אנליטית מתקדמת. השתמש בחשיבה עמוקה ושיטתית לניתוח כל היבט של המיזם העסקי. השב בטקסט רגיל בלבד ללא כל עיצוב."

const promptPreamble = `אתה מומחה ניתוח עסקי ברמה הגבוהה ביותר המבצע Deep Research מקיף באמצעות יכולות החשיבה המתקדמות שלך. אתה מקפיד על דיוק מתמטי מוחלט בחישוב ציונים ומתבסס אך ורק על הנתונים המסופקים.

חשוב: השב בטקסט רגיל ללא כל עיצוב, HTML, Markdown או תווי פורמט מיוחדים.`

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient constructs a Gemini client.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 180 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name identifies this engine.
func (c *Client) Name() string {
	return llm.EngineGemini
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
	SafetySettings    []safetySetting  `json:"safetySettings"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"topP"`
	TopK            int     `json:"topK"`
	CandidateCount  int     `json:"candidateCount"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

var safetyOff = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// Generate performs one generation attempt and returns the raw text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: promptPreamble + "\n\n" + prompt}}},
		},
		GenerationConfig: generationConfig{
			MaxOutputTokens: 32768,
			Temperature:     0.05,
			TopP:            0.85,
			TopK:            40,
			CandidateCount:  1,
		},
		SafetySettings:    safetyOff,
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", llm.NewProviderError(c.Name(), llm.KindTimeout, 0, err.Error())
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return "", llm.NewProviderError(c.Name(), llm.KindRateLimit, resp.StatusCode, "rate limit exceeded")
	case http.StatusServiceUnavailable:
		return "", llm.NewProviderError(c.Name(), llm.KindOverloaded, resp.StatusCode, "service temporarily unavailable")
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", llm.NewProviderError(c.Name(), llm.KindUnknown, resp.StatusCode, resp.Status)
		}
		return "", fmt.Errorf("gemini response parse: %w", err)
	}
	if parsed.Error != nil {
		kind := llm.ClassifyProviderMessage(parsed.Error.Message + " " + parsed.Error.Status)
		return "", llm.NewProviderError(c.Name(), kind, resp.StatusCode, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", llm.NewProviderError(c.Name(), llm.KindUnknown, resp.StatusCode, string(body))
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", llm.NewProviderError(c.Name(), llm.KindEmpty, resp.StatusCode, "empty analysis")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", llm.NewProviderError(c.Name(), llm.KindEmpty, resp.StatusCode, "empty analysis")
	}
	return text, nil
}
