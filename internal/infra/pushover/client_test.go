package pushover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Notify(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		got = map[string]string{
			"token":   r.PostForm.Get("token"),
			"user":    r.PostForm.Get("user"),
			"message": r.PostForm.Get("message"),
			"title":   r.PostForm.Get("title"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("app-token", "user-key", server.Client()).
		WithEndpoint(server.URL).
		WithTitle("Weather")

	err := client.Notify(context.Background(), "🌍 City: Delhi")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"token":   "app-token",
		"user":    "user-key",
		"message": "🌍 City: Delhi",
		"title":   "Weather",
	}, got)
}

func TestClient_NotifyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("app-token", "user-key", nil).WithEndpoint(server.URL)

	assert.Error(t, client.Notify(context.Background(), "hi"))
}

func TestClient_DisabledWithoutCredentials(t *testing.T) {
	client := NewClient("", "", nil).WithEndpoint("http://127.0.0.1:1")

	assert.NoError(t, client.Notify(context.Background(), "hi"))
}
