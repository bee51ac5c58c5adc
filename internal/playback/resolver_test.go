package playback

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flickstream/flickstream/internal/config"
)

const (
	primary603   = "https://vidsrc.cc/v2/embed/movie/603?autoplay=true"
	secondary603 = "https://vidbinge.com/embed/603"
)

func newDefaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(config.DefaultProviders())
	require.NoError(t, err)
	return r
}

func TestResolver_FallbackChain(t *testing.T) {
	r := newDefaultResolver(t)

	state := r.Start(603)
	src, err := r.Current(state)
	require.NoError(t, err)
	assert.Equal(t, primary603, src.URL)
	assert.Equal(t, "vidsrc", src.Provider)

	state = r.Advance(state)
	src, err = r.Current(state)
	require.NoError(t, err)
	assert.Equal(t, secondary603, src.URL)

	state = r.Advance(state)
	_, err = r.Current(state)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.True(t, r.Exhausted(state))
}

func TestResolver_AdvanceSaturates(t *testing.T) {
	r := newDefaultResolver(t)

	state := r.Start(603)
	for i := 0; i < 10; i++ {
		state = r.Advance(state)
	}

	assert.Equal(t, r.Len(), state.Index)
	assert.Equal(t, 603, state.EntityID)
	_, err := r.Current(state)
	assert.ErrorIs(t, err, ErrExhausted)

	again := r.Advance(state)
	assert.Equal(t, state, again)
}

func TestResolver_NegativeIndexRecovers(t *testing.T) {
	r := newDefaultResolver(t)

	state := r.Advance(State{EntityID: 603, Index: -5})
	assert.Equal(t, 1, state.Index)
}

func TestResolver_SourcesForIsDeterministic(t *testing.T) {
	r := newDefaultResolver(t)

	first := r.SourcesFor(603)
	second := r.SourcesFor(603)

	assert.Equal(t, first, second)
	assert.Equal(t, []Source{
		{Provider: "vidsrc", URL: primary603},
		{Provider: "vidbinge", URL: secondary603},
	}, first)
}

func TestNewResolver_Errors(t *testing.T) {
	tests := []struct {
		name      string
		providers []config.ProviderConfig
		wantErr   error
	}{
		{"none", nil, ErrNoProviders},
		{"missing placeholder", []config.ProviderConfig{{Name: "bad", Template: "https://example.test/embed"}}, ErrInvalidTemplate},
		{"unclosed tag", []config.ProviderConfig{{Name: "bad", Template: "https://example.test/{id}/{oops"}}, ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.providers)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewResolver_DefaultsProviderName(t *testing.T) {
	r, err := NewResolver([]config.ProviderConfig{{Template: "https://example.test/{id}"}})
	require.NoError(t, err)

	src, err := r.Current(r.Start(7))
	require.NoError(t, err)
	assert.Equal(t, "provider-1", src.Provider)
	assert.Equal(t, "https://example.test/7", src.URL)
}

func TestHandlers_GetSources(t *testing.T) {
	e := echo.New()
	NewHandlers(newDefaultResolver(t)).RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/603/sources", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var sources []Source
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sources))
	require.Len(t, sources, 2)
	assert.Equal(t, primary603, sources[0].URL)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/movies/zero/sources", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
