package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/flickstream/flickstream/internal/config"
)

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		config:  cfg,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if the access token is set.
func (c *Client) IsConfigured() bool {
	return c.config.AccessToken != ""
}

// Test verifies connectivity to the TMDB API by making a configuration request.
func (c *Client) Test(ctx context.Context) error {
	var result struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}
	return c.Get(ctx, "/configuration", nil, &result)
}

// GetMovie gets detailed movie info by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, id int) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.Get(ctx, fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("id", id).Str("title", details.Title).Msg("Got movie details")
	return &details, nil
}

// GetMovieCredits gets the cast of a movie in provider order.
func (c *Client) GetMovieCredits(ctx context.Context, id int) (*CreditsResponse, error) {
	var credits CreditsResponse
	if err := c.Get(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &credits); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("id", id).Int("cast", len(credits.Cast)).Msg("Got movie credits")
	return &credits, nil
}

// GetSimilarMovies gets the first page of movies similar to the given one.
func (c *Client) GetSimilarMovies(ctx context.Context, id int) (*MoviesPage, error) {
	var page MoviesPage
	if err := c.Get(ctx, fmt.Sprintf("/movie/%d/similar", id), nil, &page); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("id", id).Int("results", len(page.Results)).Msg("Got similar movies")
	return &page, nil
}

// GetMovieImages gets backdrops and posters for a movie.
// Images without a language tag are included alongside the configured language.
func (c *Client) GetMovieImages(ctx context.Context, id int) (*ImagesResponse, error) {
	params := url.Values{}
	params.Set("include_image_language", imageLanguages(c.config.Language))

	var images ImagesResponse
	if err := c.Get(ctx, fmt.Sprintf("/movie/%d/images", id), params, &images); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("id", id).
		Int("backdrops", len(images.Backdrops)).
		Int("posters", len(images.Posters)).
		Msg("Got movie images")
	return &images, nil
}

// SearchMulti searches movies, TV shows and people in one request.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*SearchMultiResponse, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", strconv.FormatBool(c.config.IncludeAdult))
	params.Set("page", strconv.Itoa(page))

	var response SearchMultiResponse
	if err := c.Get(ctx, "/search/multi", params, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(response.Results)).
		Msg("Multi search completed")
	return &response, nil
}

// GetPopularMovies gets one page of the popular movies listing.
func (c *Client) GetPopularMovies(ctx context.Context, page int) (*MoviesPage, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var response MoviesPage
	if err := c.Get(ctx, "/movie/popular", params, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("page", page).Int("results", len(response.Results)).Msg("Got popular movies")
	return &response, nil
}

// Get performs an authenticated GET against path and decodes the JSON body into result.
// The configured language is always sent. Every failure is returned as a *Failure.
func (c *Client) Get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if !c.IsConfigured() {
		return &Failure{Kind: FailureProvider, Path: path, Err: ErrAccessTokenMissing}
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	if c.config.Language != "" && query.Get("language") == "" {
		query.Set("language", c.config.Language)
	}

	attempts := c.config.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	err := retry.Do(
		func() error {
			return c.doRequest(ctx, path, query, result)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRateLimited),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn().Err(err).Str("path", path).Uint("attempt", n+1).Msg("Retrying TMDB request")
		}),
	)
	if err == nil {
		return nil
	}
	if IsFailure(err) {
		return err
	}
	return &Failure{Kind: FailureNetwork, Path: path, Err: err}
}

// doRequest performs a single HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Failure{Kind: FailureNetwork, Path: path, Err: err}
	}

	reqURL := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &Failure{Kind: FailureNetwork, Path: path, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("HTTP request failed")
		return &Failure{Kind: FailureNetwork, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := &Failure{Kind: FailureProvider, Path: path, Status: resp.StatusCode}
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			failure.Message = errResp.StatusMessage
		}
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("message", failure.Message).
			Msg("TMDB API error")
		return failure
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Malformed TMDB response")
		return &Failure{Kind: FailureMalformed, Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// imageLanguages builds the include_image_language value: the language prefix plus untagged images.
func imageLanguages(language string) string {
	lang, _, _ := strings.Cut(language, "-")
	if lang == "" {
		return "null"
	}
	return lang + ",null"
}
