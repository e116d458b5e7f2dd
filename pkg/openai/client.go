// Package openai содержит минимальный клиент chat completions API.
package openai

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

	"github.com/yourusername/fitbot-api/internal/config"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
)

// ErrMissingAPIKey возвращается, если ключ API не настроен
var ErrMissingAPIKey = fmt.Errorf("%w: OPENAI_API_KEY not found in environment", apperrors.ErrConfiguration)

// Message - сообщение чата
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest - тело запроса /chat/completions
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Usage - расход токенов
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice - вариант ответа модели
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatCompletionResponse - ответ /chat/completions
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`

	// Raw - тело ответа без изменений
	Raw json.RawMessage `json:"-"`
}

// Content возвращает текст первого варианта
func (r *ChatCompletionResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// APIError описывает ошибочный ответ провайдера
type APIError struct {
	StatusCode int
	// Body - тело ответа провайдера, всегда валидный JSON
	Body    json.RawMessage
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("openai: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("openai: status %d", e.StatusCode)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, apperrors.ErrUpstream)
func (e *APIError) Unwrap() error {
	return apperrors.ErrUpstream
}

// Client выполняет запросы к chat completions API
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient создает клиента по конфигурации
func NewClient(cfg config.OpenAIConfig) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured сообщает, задан ли ключ API
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// CreateChatCompletion отправляет запрос. Ответ со статусом вне 2xx
// или без текста возвращается как *APIError.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}
	if req.Model == "" {
		req.Model = c.model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", apperrors.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: asJSON(raw), Message: http.StatusText(resp.StatusCode)}
	}

	var out ChatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: asJSON(raw), Message: "malformed response"}
	}
	if strings.TrimSpace(out.Content()) == "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: asJSON(raw), Message: "empty completion"}
	}
	out.Raw = raw

	return &out, nil
}

// asJSON возвращает тело как есть, если это JSON, иначе как JSON-строку
func asJSON(raw []byte) json.RawMessage {
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	quoted, _ := json.Marshal(string(raw))
	return quoted
}

// IsAPIError извлекает *APIError из цепочки ошибок
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
