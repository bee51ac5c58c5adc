package metadata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flickstream/flickstream/internal/config"
	"github.com/flickstream/flickstream/internal/metadata/tmdb"
)

func setupTestHandlers(t *testing.T) (*echo.Echo, *httptest.Server) {
	t.Helper()

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603":
			poster := "/poster.jpg"
			json.NewEncoder(w).Encode(tmdb.MovieDetails{
				ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", PosterPath: &poster,
			})
		case "/movie/603/credits":
			json.NewEncoder(w).Encode(tmdb.CreditsResponse{ID: 603, Cast: []tmdb.CastMember{{ID: 6384, Name: "Keanu Reeves"}}})
		case "/movie/603/similar":
			json.NewEncoder(w).Encode(tmdb.MoviesPage{Page: 1})
		case "/movie/603/images":
			json.NewEncoder(w).Encode(tmdb.ImagesResponse{ID: 603})
		case "/movie/popular":
			json.NewEncoder(w).Encode(tmdb.MoviesPage{
				Page:    1,
				Results: []tmdb.MovieResult{{ID: 603, Title: "The Matrix"}},
			})
		case "/search/multi":
			if r.URL.Query().Get("query") == "fail" {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			json.NewEncoder(w).Encode(tmdb.SearchMultiResponse{
				Results: []tmdb.MultiResult{{ID: 603, MediaType: "movie", Title: "The Matrix"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	cfg := config.TMDBConfig{
		AccessToken:  "test-token",
		BaseURL:      mockServer.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		Timeout:      5,
	}

	service := NewService(tmdb.NewClient(cfg, zerolog.Nop()), cfg, zerolog.Nop())
	e := echo.New()
	NewHandlers(service).RegisterRoutes(e.Group("/api/v1"))
	return e, mockServer
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandlers_GetMovie(t *testing.T) {
	e, server := setupTestHandlers(t)
	defer server.Close()

	rec := serve(e, "/api/v1/movies/603")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var composite Composite
	if err := json.Unmarshal(rec.Body.Bytes(), &composite); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if composite.Movie.Title != "The Matrix" {
		t.Errorf("Title = %q", composite.Movie.Title)
	}
	if len(composite.Cast) != 1 {
		t.Errorf("expected 1 cast member, got %d", len(composite.Cast))
	}
}

func TestHandlers_GetMovie_Unavailable(t *testing.T) {
	e, server := setupTestHandlers(t)
	defer server.Close()

	rec := serve(e, "/api/v1/movies/42")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "could not load this movie" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandlers_GetMovie_InvalidID(t *testing.T) {
	e, server := setupTestHandlers(t)
	defer server.Close()

	for _, target := range []string{"/api/v1/movies/abc", "/api/v1/movies/-3"} {
		rec := serve(e, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestHandlers_GetPopular(t *testing.T) {
	e, server := setupTestHandlers(t)
	defer server.Close()

	rec := serve(e, "/api/v1/movies/popular?page=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var page MoviePage
	json.Unmarshal(rec.Body.Bytes(), &page)
	if len(page.Results) != 1 || page.Results[0].ID != 603 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestHandlers_Search(t *testing.T) {
	e, server := setupTestHandlers(t)
	defer server.Close()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"match", "matrix", 1},
		{"empty", "", 0},
		{"provider failure", "fail", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, "/api/v1/search?query="+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var results []SearchResult
			if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if results == nil {
				t.Fatal("expected a JSON array, got null")
			}
			if len(results) != tt.want {
				t.Errorf("len = %d, want %d", len(results), tt.want)
			}
		})
	}
}

func TestParseMovieID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"603", 603, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMovieID(tt.raw)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMovieID(%q) = %d, %v", tt.raw, got, err)
		}
	}
}
