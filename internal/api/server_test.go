package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flickstream/flickstream/internal/config"
)

func setupTestServer(t *testing.T, mutate func(cfg *config.Config)) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.TMDB.Mock = true
	cfg.TMDB.AccessToken = "test-token"
	if mutate != nil {
		mutate(cfg)
	}

	s, err := NewServer(cfg, zerolog.Nop())
	require.NoError(t, err)

	go s.hub.Run()
	t.Cleanup(func() {
		s.hub.Stop()
		_ = s.scheduler.Stop()
	})
	return s
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	s := setupTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestRoutes(t *testing.T) {
	s := setupTestServer(t, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"status", http.MethodGet, "/api/v1/status", http.StatusOK, `"provider":"tmdb-mock"`},
		{"status reports provider health", http.MethodGet, "/api/v1/status", http.StatusOK, `"providerHealthy":true`},
		{"movie", http.MethodGet, "/api/v1/movies/603", http.StatusOK, `"The Matrix"`},
		{"unknown movie", http.MethodGet, "/api/v1/movies/999999", http.StatusBadGateway, "could not load this movie"},
		{"invalid movie id", http.MethodGet, "/api/v1/movies/abc", http.StatusBadRequest, ""},
		{"popular", http.MethodGet, "/api/v1/movies/popular?page=0", http.StatusOK, `"page":1`},
		{"sources", http.MethodGet, "/api/v1/movies/603/sources", http.StatusOK, "vidsrc"},
		{"search", http.MethodGet, "/api/v1/search?query=matrix", http.StatusOK, "The Matrix"},
		{"empty search", http.MethodGet, "/api/v1/search?query=", http.StatusOK, "[]"},
		{"health", http.MethodGet, "/api/v1/health", http.StatusOK, `"tmdb-mock"`},
		{"tasks", http.MethodGet, "/api/v1/scheduler/tasks", http.StatusOK, `"metadata-health"`},
		{"devmode", http.MethodGet, "/api/v1/devmode", http.StatusOK, `"enabled":true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, tt.method, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	s := setupTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRateLimit(t *testing.T) {
	s := setupTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
		cfg.Server.RateBurst = 2
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doRequest(s, http.MethodGet, "/api/v1/movies/popular", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// unthrottled routes stay available
	assert.Equal(t, http.StatusOK, doRequest(s, http.MethodGet, "/api/v1/status", "").Code)
}

func TestDeveloperModeToggle(t *testing.T) {
	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":{"base_url":"http://image.tmdb.org/t/p/"}}`))
	}))
	defer tmdbServer.Close()

	s := setupTestServer(t, func(cfg *config.Config) {
		cfg.TMDB.BaseURL = tmdbServer.URL
	})

	rec := doRequest(s, http.MethodPut, "/api/v1/devmode", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodPut, "/api/v1/devmode", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enabled":false`)
	assert.Equal(t, "tmdb", s.metadataService.Source().Name())

	items := s.healthService.GetAll().Metadata
	require.Len(t, items, 1)
	assert.Equal(t, "tmdb", items[0].ID)
}

func TestWebSocketSession(t *testing.T) {
	s := setupTestServer(t, nil)

	ts := httptest.NewServer(s.echo)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    "movie:select",
		"payload": map[string]int{"id": 603},
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	seen := map[string]bool{}
	for !seen["movie:loaded"] {
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		seen[msg.Type] = true
		if msg.Type == "movie:loaded" {
			assert.Contains(t, string(msg.Payload), "The Matrix")
		}
	}
	assert.True(t, seen["movie:loading"])
}
