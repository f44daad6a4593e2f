package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yanqian/recombooks/internal/domain/recommendation"
	"github.com/yanqian/recombooks/pkg/metrics"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	providerName   = "gemini"
)

// Part is a single piece of content. Only text parts are used.
type Part struct {
	Text string `json:"text"`
}

// Content groups parts under an optional role.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// SafetySetting overrides the blocking threshold for one harm category.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// GenerationConfig carries sampling parameters.
type GenerationConfig struct {
	Temperature *float32 `json:"temperature,omitempty"`
}

// GenerateContentRequest is the payload sent to generateContent.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateContentResponse captures the fields of the generateContent response we read.
type GenerateContentResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Text returns the first part of the first candidate, if any.
func (r GenerateContentResponse) Text() (string, bool) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	text := r.Candidates[0].Content.Parts[0].Text
	return text, strings.TrimSpace(text) != ""
}

// Options tune a Client.
type Options struct {
	BaseURL        string
	Model          string
	Temperature    float32
	Timeout        time.Duration
	SafetySettings []SafetySetting
}

// Client performs HTTP requests to the Gemini generative-language API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	opts       Options
	httpClient *http.Client
}

// NewClient constructs a Gemini client. An empty key is accepted so the
// service can start and report the misconfiguration per request.
func NewClient(apiKey string, opts Options) *Client {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   strings.TrimPrefix(strings.TrimSpace(opts.Model), "models/"),
		opts:    opts,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateContent triggers a sync generateContent call.
func (c *Client) GenerateContent(ctx context.Context, req GenerateContentRequest) (GenerateContentResponse, error) {
	var out GenerateContentResponse
	if c.apiKey == "" {
		return out, errors.New("gemini api key is not configured")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode generate content request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("build generate content request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return out, fmt.Errorf("request generate content: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return out, fmt.Errorf("gemini request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read generate content response: %w", err)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode generate content response: %w", err)
	}
	return out, nil
}

// Generate sends instruction as a single user turn and returns the text of
// the first candidate.
func (c *Client) Generate(ctx context.Context, instruction string) (recommendation.Generation, error) {
	req := GenerateContentRequest{
		Contents:       []Content{{Parts: []Part{{Text: instruction}}}},
		SafetySettings: c.opts.SafetySettings,
	}
	if c.opts.Temperature > 0 {
		temperature := c.opts.Temperature
		req.GenerationConfig = &GenerationConfig{Temperature: &temperature}
	}

	resp, err := c.GenerateContent(ctx, req)
	if err != nil {
		return recommendation.Generation{}, err
	}
	text, ok := resp.Text()
	if !ok {
		return recommendation.Generation{}, errors.New("invalid response from gemini api: missing candidate text")
	}
	return recommendation.Generation{
		Text:     strings.TrimSpace(text),
		Provider: providerName,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// redactKey strips the API key, which travels in the query string, from
// transport errors.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	msg := err.Error()
	redacted := strings.ReplaceAll(strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED"), key, "REDACTED")
	if redacted == msg {
		return err
	}
	return errors.New(redacted)
}
