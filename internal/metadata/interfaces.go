package metadata

import (
	"context"

	"github.com/flickstream/flickstream/internal/metadata/tmdb"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_source.go -package=mocks

// MovieSource is the remote metadata API as seen by the service.
// tmdb.Client and mock.TMDBClient both satisfy it.
type MovieSource interface {
	Name() string
	Test(ctx context.Context) error
	GetMovie(ctx context.Context, id int) (*tmdb.MovieDetails, error)
	GetMovieCredits(ctx context.Context, id int) (*tmdb.CreditsResponse, error)
	GetSimilarMovies(ctx context.Context, id int) (*tmdb.MoviesPage, error)
	GetMovieImages(ctx context.Context, id int) (*tmdb.ImagesResponse, error)
	SearchMulti(ctx context.Context, query string, page int) (*tmdb.SearchMultiResponse, error)
	GetPopularMovies(ctx context.Context, page int) (*tmdb.MoviesPage, error)
}

// CompositeFetcher builds one movie aggregate.
type CompositeFetcher interface {
	Aggregate(ctx context.Context, id int) (*Composite, error)
}
