package ai

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/tidwall/gjson"
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiClient talks to the generateContent REST endpoint.
type GeminiClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GeminiClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/models/" + url.PathEscape(cfg.Model) + ":generateContent",
		apiKey:     cfg.APIKey,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var reqBody geminiRequest
	reqBody.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	reqBody.GenerationConfig.Temperature = 0.7
	reqBody.GenerationConfig.MaxOutputTokens = 1024
	payload, err := sonic.Marshal(reqBody)
	if err != nil {
		return "", errors.New("marshalling generate request error: " + err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.New("building generate request error: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.New("generate request error: " + err.Error())
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.New("reading generate response error: " + err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", errors.New("model api returned " + strconv.Itoa(resp.StatusCode) + ": " + msg)
	}
	if reason := gjson.GetBytes(body, "promptFeedback.blockReason"); reason.Exists() {
		return "", errors.Join(errorvalues.ErrAIRefused, errors.New("block reason: "+reason.String()))
	}
	candidate := gjson.GetBytes(body, "candidates.0")
	if !candidate.Exists() {
		return "", errorvalues.ErrAIEmptyResponse
	}
	if candidate.Get("finishReason").String() == "SAFETY" {
		return "", errors.Join(errorvalues.ErrAIRefused, errors.New("finish reason: SAFETY"))
	}
	var sb strings.Builder
	for _, part := range candidate.Get("content.parts.#.text").Array() {
		sb.WriteString(part.String())
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errorvalues.ErrAIEmptyResponse
	}
	return text, nil
}
