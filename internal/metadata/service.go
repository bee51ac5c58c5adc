package metadata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/flickstream/flickstream/internal/config"
	"github.com/flickstream/flickstream/internal/metadata/tmdb"
)

const (
	// MaxPopularPage is the last page TMDB serves for list endpoints.
	MaxPopularPage = 500

	healthCategory = "metadata"
)

var (
	// ErrMovieUnavailable is returned when the detail call of an aggregate fails.
	ErrMovieUnavailable = errors.New("could not load this movie")
	ErrInvalidMovieID   = errors.New("invalid movie id")
)

// HealthService is the interface for central health tracking.
type HealthService interface {
	RegisterItemStr(category, id, name string)
	SetErrorStr(category, id, message string)
	SetWarningStr(category, id, message string)
	ClearStatusStr(category, id string)
}

// Service composes movie aggregates, search results and listings from a MovieSource.
// It holds no per-viewer state; see Aggregator for the staleness discipline.
type Service struct {
	mu            sync.RWMutex
	source        MovieSource
	imageBaseURL  string
	timeout       time.Duration
	logger        zerolog.Logger
	healthService HealthService
}

// NewService creates a new metadata service over source.
func NewService(source MovieSource, cfg config.TMDBConfig, logger zerolog.Logger) *Service {
	return &Service{
		source:       source,
		imageBaseURL: cfg.ImageBaseURL,
		timeout:      cfg.RequestTimeout(),
		logger:       logger.With().Str("component", "metadata").Logger(),
	}
}

// SetSource replaces the movie source (dev mode switching).
func (s *Service) SetSource(source MovieSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
}

// Source returns the movie source currently in use.
func (s *Service) Source() MovieSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetHealthService sets the central health service for registration tracking.
func (s *Service) SetHealthService(hs HealthService) {
	s.healthService = hs
}

// RegisterProvider registers the movie source with the health service.
func (s *Service) RegisterProvider() {
	if s.healthService == nil {
		return
	}
	name := s.Source().Name()
	s.healthService.RegisterItemStr(healthCategory, name, strings.ToUpper(name))
}

// CheckHealth tests the movie source and records the outcome with the health service.
func (s *Service) CheckHealth(ctx context.Context) error {
	source := s.Source()
	err := source.Test(ctx)
	if s.healthService != nil {
		switch {
		case tmdb.IsRateLimited(err):
			// Throttled, not down.
			s.healthService.SetWarningStr(healthCategory, source.Name(), err.Error())
		case err != nil:
			s.healthService.SetErrorStr(healthCategory, source.Name(), err.Error())
		default:
			s.healthService.ClearStatusStr(healthCategory, source.Name())
		}
	}
	return err
}

// Aggregate issues the detail, credits, similar and images calls for id concurrently and
// merges them once all four have settled. A failed detail call fails the whole aggregate
// with ErrMovieUnavailable; any other failed call leaves its slice empty.
func (s *Service) Aggregate(ctx context.Context, id int) (*Composite, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMovieID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		details    *tmdb.MovieDetails
		credits    *tmdb.CreditsResponse
		similar    *tmdb.MoviesPage
		images     *tmdb.ImagesResponse
		detailsErr error
		creditsErr error
		similarErr error
		imagesErr  error
	)

	var wg conc.WaitGroup
	source := s.Source()
	wg.Go(func() { details, detailsErr = source.GetMovie(ctx, id) })
	wg.Go(func() { credits, creditsErr = source.GetMovieCredits(ctx, id) })
	wg.Go(func() { similar, similarErr = source.GetSimilarMovies(ctx, id) })
	wg.Go(func() { images, imagesErr = source.GetMovieImages(ctx, id) })
	wg.Wait()

	if detailsErr == nil && details == nil {
		detailsErr = errors.New("empty movie details")
	}
	if detailsErr != nil {
		s.logger.Error().Err(detailsErr).Int("id", id).Msg("Movie details failed")
		return nil, fmt.Errorf("%w: %w", ErrMovieUnavailable, detailsErr)
	}

	composite := &Composite{
		Movie:     s.convertDetails(details),
		Cast:      []CastMember{},
		Similar:   []MovieSummary{},
		Backdrops: []ImageAsset{},
		Posters:   []ImageAsset{},
	}

	if creditsErr != nil {
		s.logger.Warn().Err(creditsErr).Int("id", id).Msg("Credits unavailable, continuing without cast")
	} else if credits != nil {
		composite.Cast = s.convertCast(firstN(credits.Cast, CastLimit))
	}

	if similarErr != nil {
		s.logger.Warn().Err(similarErr).Int("id", id).Msg("Similar movies unavailable")
	} else if similar != nil {
		composite.Similar = s.convertSummaries(firstN(similar.Results, SimilarLimit))
	}

	if imagesErr != nil {
		s.logger.Warn().Err(imagesErr).Int("id", id).Msg("Images unavailable")
	} else if images != nil {
		composite.Backdrops = s.convertImages(firstN(images.Backdrops, BackdropLimit), ImageBackdrop, tmdb.SizeGallery)
		composite.Posters = s.convertImages(firstN(images.Posters, PosterLimit), ImagePoster, tmdb.SizePoster)
	}

	s.logger.Debug().
		Int("id", id).
		Int("cast", len(composite.Cast)).
		Int("similar", len(composite.Similar)).
		Int("backdrops", len(composite.Backdrops)).
		Int("posters", len(composite.Posters)).
		Msg("Aggregated movie")

	return composite, nil
}

// Search runs a multi search for query. An empty query yields no results without a request.
func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	resp, err := s.Source().SearchMulti(ctx, query, 1)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for i := range resp.Results {
		results = append(results, s.convertMulti(&resp.Results[i]))
	}
	return results, nil
}

// PopularMovies returns one page of the popular listing. The page is clamped to [1, MaxPopularPage].
func (s *Service) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	page = ClampPage(page)

	resp, err := s.Source().GetPopularMovies(ctx, page)
	if err != nil {
		return nil, err
	}

	return &MoviePage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      s.convertSummaries(resp.Results),
	}, nil
}

// ClampPage bounds a listing page to what TMDB will serve.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPopularPage {
		return MaxPopularPage
	}
	return page
}

func (s *Service) imageURL(size string, path *string) string {
	return tmdb.ImageURL(s.imageBaseURL, size, deref(path))
}

func (s *Service) convertDetails(d *tmdb.MovieDetails) Movie {
	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}

	return Movie{
		ID:           d.ID,
		Title:        d.Title,
		ReleaseDate:  d.ReleaseDate,
		Year:         parseYear(d.ReleaseDate),
		Runtime:      d.Runtime,
		Overview:     d.Overview,
		Tagline:      d.Tagline,
		Genres:       genres,
		VoteAverage:  d.VoteAverage,
		PosterPath:   deref(d.PosterPath),
		BackdropPath: deref(d.BackdropPath),
		PosterURL:    s.imageURL(tmdb.SizePoster, d.PosterPath),
		BackdropURL:  s.imageURL(tmdb.SizeOriginal, d.BackdropPath),
	}
}

func (s *Service) convertCast(cast []tmdb.CastMember) []CastMember {
	out := make([]CastMember, 0, len(cast))
	for _, c := range cast {
		out = append(out, CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: deref(c.ProfilePath),
			ProfileURL:  s.imageURL(tmdb.SizeProfile, c.ProfilePath),
		})
	}
	return out
}

func (s *Service) convertSummaries(movies []tmdb.MovieResult) []MovieSummary {
	out := make([]MovieSummary, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieSummary{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Year:        parseYear(m.ReleaseDate),
			VoteAverage: m.VoteAverage,
			PosterPath:  deref(m.PosterPath),
			PosterURL:   s.imageURL(tmdb.SizeSimilar, m.PosterPath),
		})
	}
	return out
}

func (s *Service) convertImages(images []tmdb.ImageResult, category ImageCategory, size string) []ImageAsset {
	out := make([]ImageAsset, 0, len(images))
	for _, img := range images {
		out = append(out, ImageAsset{
			FilePath:    img.FilePath,
			Category:    category,
			URL:         tmdb.ImageURL(s.imageBaseURL, size, img.FilePath),
			OriginalURL: tmdb.ImageURL(s.imageBaseURL, tmdb.SizeOriginal, img.FilePath),
		})
	}
	return out
}

// convertMulti maps a multi search entry. Missing fields degrade to an empty display value.
func (s *Service) convertMulti(r *tmdb.MultiResult) SearchResult {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}
	poster := r.PosterPath
	if deref(poster) == "" {
		poster = r.ProfilePath
	}

	return SearchResult{
		ID:          r.ID,
		MediaType:   NormalizeMediaType(r.MediaType),
		Title:       title,
		Year:        parseYear(date),
		Overview:    r.Overview,
		VoteAverage: r.VoteAverage,
		PosterPath:  deref(poster),
		PosterURL:   s.imageURL(tmdb.SizeSimilar, poster),
	}
}

// NormalizeMediaType maps a provider media type tag onto MediaType.
func NormalizeMediaType(raw string) MediaType {
	switch MediaType(strings.ToLower(raw)) {
	case MediaMovie:
		return MediaMovie
	case MediaTV:
		return MediaTV
	case MediaPerson:
		return MediaPerson
	default:
		return MediaOther
	}
}

func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
