package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/domain"
	"jarvis/internal/infra"
)

func fastRetry() infra.RetryConfig {
	return infra.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "en", LanguageCode("en-IN"))
	assert.Equal(t, "pt", LanguageCode("pt_BR"))
	assert.Equal(t, "de", LanguageCode("DE"))
	assert.Equal(t, "", LanguageCode(""))
}

func TestWhisperClient_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(file)
		assert.Equal(t, "RIFFdata", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" What time is it? "}`))
	}))
	defer server.Close()

	client := NewWhisperClient("test-key", "en-IN", WithBaseURL(server.URL), WithRetry(fastRetry()))

	text, err := client.Transcribe(context.Background(), []byte("RIFFdata"))

	require.NoError(t, err)
	assert.Equal(t, "What time is it?", text)
}

func TestWhisperClient_EmptyTranscriptIsUnintelligible(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":""}`))
	}))
	defer server.Close()

	client := NewWhisperClient("test-key", "en", WithBaseURL(server.URL), WithRetry(fastRetry()))

	_, err := client.Transcribe(context.Background(), []byte("noise"))

	assert.ErrorIs(t, err, domain.ErrUnintelligible)
}

func TestWhisperClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"text":"hello"}`))
	}))
	defer server.Close()

	client := NewWhisperClient("test-key", "en", WithBaseURL(server.URL), WithRetry(fastRetry()))

	text, err := client.Transcribe(context.Background(), []byte("audio"))

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWhisperClient_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewWhisperClient("bad-key", "en", WithBaseURL(server.URL), WithRetry(fastRetry()))

	_, err := client.Transcribe(context.Background(), []byte("audio"))

	assert.ErrorIs(t, err, domain.ErrRecognitionUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWhisperClient_MissingKey(t *testing.T) {
	client := NewWhisperClient("", "en")

	_, err := client.Transcribe(context.Background(), []byte("audio"))

	assert.ErrorIs(t, err, domain.ErrRecognitionUnavailable)
	assert.ErrorIs(t, err, domain.ErrAPIKeyMissing)
}
