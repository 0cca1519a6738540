package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"jarvis/internal/domain"
)

const (
	maxAudioBytes = 10 * 1024 * 1024
	maxTextBytes  = 1024
	queueSize     = 10
	requestsPerIP = 30
)

// HTTPSource accepts utterances pushed over HTTP, as recorded audio or as
// plain text.
type HTTPSource struct {
	addr        string
	server      *http.Server
	audioChan   chan []byte
	logger      *slog.Logger
	mu          sync.Mutex
	running     bool
	mux         *http.ServeMux
	closeOnce   sync.Once
	rateLimiter *RateLimiter
	authToken   string
	stopCleanup context.CancelFunc
}

// NewHTTPSource serves the command endpoints on addr. Requests from
// trustedProxies are rate limited by their forwarded client address.
func NewHTTPSource(addr string, authToken string, logger *slog.Logger, trustedProxies ...string) *HTTPSource {
	h := &HTTPSource{
		addr:        addr,
		audioChan:   make(chan []byte, queueSize),
		logger:      logger,
		mux:         http.NewServeMux(),
		rateLimiter: NewRateLimiter(requestsPerIP, trustedProxies...),
		authToken:   authToken,
	}
	h.mux.HandleFunc("POST /audio", h.rateLimiter.Middleware(h.authorized(h.handleAudio)))
	h.mux.HandleFunc("POST /text", h.rateLimiter.Middleware(h.authorized(h.handleText)))
	h.mux.HandleFunc("GET /health", h.handleHealth)
	return h
}

func (h *HTTPSource) Name() string {
	return "http"
}

func (h *HTTPSource) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return nil
	}

	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      h.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	cleanupCtx, cancel := context.WithCancel(ctx)
	h.stopCleanup = cancel
	go h.rateLimiter.Cleanup(cleanupCtx, cleanupInterval)

	go func() {
		h.logger.Info("HTTP audio server starting", "addr", h.addr)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("HTTP server error", "error", err)
		}
	}()

	h.running = true
	return nil
}

func (h *HTTPSource) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return nil
	}

	if h.stopCleanup != nil {
		h.stopCleanup()
	}

	if h.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.server.Shutdown(ctx); err != nil {
			h.logger.Warn("graceful shutdown failed, forcing close", "error", err)
			if err := h.server.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
	}

	h.closeOnce.Do(func() {
		close(h.audioChan)
	})
	h.running = false
	return nil
}

// NextCommand waits up to opts.Timeout for a queued utterance.
func (h *HTTPSource) NextCommand(ctx context.Context, opts domain.ListenOptions) ([]byte, error) {
	var timeout <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout:
		return nil, domain.ErrListenTimeout
	case audio, ok := <-h.audioChan:
		if !ok {
			return nil, fmt.Errorf("audio channel closed")
		}
		return audio, nil
	}
}

func (h *HTTPSource) Handler() http.Handler {
	return h.mux
}

func (h *HTTPSource) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.authToken == "" {
			next(w, r)
			return
		}

		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token != h.authToken {
			h.logger.Warn("unauthorized command request", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next(w, r)
	}
}

func (h *HTTPSource) enqueue(data []byte) bool {
	select {
	case h.audioChan <- data:
		return true
	default:
		return false
	}
}

func (h *HTTPSource) handleAudio(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	data, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes))
	if err != nil {
		h.logger.Error("reading audio body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}

	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty audio"})
		return
	}

	if !h.enqueue(data) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "queue full, try again"})
		return
	}

	h.logger.Info("received audio via HTTP", "bytes", len(data))
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "received", "bytes": len(data)})
}

func (h *HTTPSource) handleText(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	data, err := io.ReadAll(io.LimitReader(r.Body, maxTextBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty text"})
		return
	}

	if !h.enqueue([]byte(domain.TextCommandPrefix + text)) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "queue full, try again"})
		return
	}

	h.logger.Info("received text command via HTTP", "text", text)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "received", "text": text})
}

func (h *HTTPSource) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	running := h.running
	queued := len(h.audioChan)
	h.mu.Unlock()

	status := "ok"
	statusCode := http.StatusOK

	if !running {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, map[string]any{
		"status":     status,
		"running":    running,
		"queue_size": queued,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
