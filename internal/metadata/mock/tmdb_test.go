package mock

import (
	"context"
	"testing"

	"github.com/flickstream/flickstream/internal/metadata/tmdb"
)

func TestTMDBClient_MatrixHasTenCast(t *testing.T) {
	c := NewTMDBClient()

	credits, err := c.GetMovieCredits(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovieCredits() error = %v", err)
	}
	if len(credits.Cast) != 10 {
		t.Fatalf("expected 10 cast members, got %d", len(credits.Cast))
	}
	for i, member := range credits.Cast {
		if member.Order != i {
			t.Errorf("cast[%d].Order = %d", i, member.Order)
		}
	}
}

func TestTMDBClient_UnknownMovie(t *testing.T) {
	c := NewTMDBClient()

	_, err := c.GetMovie(context.Background(), 999999)
	if !tmdb.IsFailure(err) {
		t.Fatalf("expected *tmdb.Failure, got %v", err)
	}
}

func TestTMDBClient_SimilarExcludesSelf(t *testing.T) {
	c := NewTMDBClient()

	page, err := c.GetSimilarMovies(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetSimilarMovies() error = %v", err)
	}
	if len(page.Results) == 0 {
		t.Fatal("expected similar movies")
	}
	for _, m := range page.Results {
		if m.ID == 603 {
			t.Error("similar list contains the movie itself")
		}
	}
}

func TestTMDBClient_SearchMulti(t *testing.T) {
	c := NewTMDBClient()

	resp, err := c.SearchMulti(context.Background(), "keanu", 1)
	if err != nil {
		t.Fatalf("SearchMulti() error = %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].MediaType != "person" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}

	resp, err = c.SearchMulti(context.Background(), "dune", 1)
	if err != nil {
		t.Fatalf("SearchMulti() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("expected 2 results for dune, got %d", len(resp.Results))
	}
}

func TestTMDBClient_PopularPaging(t *testing.T) {
	c := NewTMDBClient()

	page, err := c.GetPopularMovies(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPopularMovies() error = %v", err)
	}
	if len(page.Results) != len(mockMovies) {
		t.Errorf("expected %d results, got %d", len(mockMovies), len(page.Results))
	}

	page, _ = c.GetPopularMovies(context.Background(), 2)
	if len(page.Results) != 0 {
		t.Errorf("expected empty second page, got %d", len(page.Results))
	}
}
