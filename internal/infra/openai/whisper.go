package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"jarvis/internal/application"
	"jarvis/internal/domain"
	"jarvis/internal/infra"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	whisperModel   = "whisper-1"
)

type WhisperClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	language   string
	retry      infra.RetryConfig
}

type Option func(*WhisperClient)

func WithBaseURL(baseURL string) Option {
	return func(c *WhisperClient) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *WhisperClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithRetry(cfg infra.RetryConfig) Option {
	return func(c *WhisperClient) { c.retry = cfg }
}

// NewWhisperClient builds a transcription client. language may be a locale
// tag such as "en-IN"; only the primary language subtag is sent.
func NewWhisperClient(apiKey, language string, opts ...Option) *WhisperClient {
	c := &WhisperClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		language:   LanguageCode(language),
		retry:      infra.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LanguageCode reduces a locale tag to its ISO-639-1 part: "en-IN" -> "en".
func LanguageCode(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe returns domain.ErrUnintelligible for an empty transcript and
// wraps every request failure with domain.ErrRecognitionUnavailable.
func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("whisper: %w: %w", domain.ErrAPIKeyMissing, domain.ErrRecognitionUnavailable)
	}

	var result transcriptionResponse

	retryErr := infra.WithRetry(ctx, c.retry, func() error {
		body, contentType, err := c.form(audio)
		if err != nil {
			return infra.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
		if err != nil {
			return infra.Permanent(fmt.Errorf("creating request: %w", err))
		}

		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", contentType)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			apiErr := fmt.Errorf("whisper API error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return apiErr
			}
			return infra.Permanent(apiErr)
		}

		if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return nil
	})

	if retryErr != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %w", domain.ErrRecognitionUnavailable, retryErr)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", domain.ErrUnintelligible
	}

	return text, nil
}

func (c *WhisperClient) form(audio []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}

	if _, err = part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("writing audio: %w", err)
	}

	if err = writer.WriteField("model", whisperModel); err != nil {
		return nil, "", fmt.Errorf("writing model field: %w", err)
	}

	if c.language != "" {
		if err = writer.WriteField("language", c.language); err != nil {
			return nil, "", fmt.Errorf("writing language field: %w", err)
		}
	}

	if err = writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

var _ application.SpeechToText = (*WhisperClient)(nil)
