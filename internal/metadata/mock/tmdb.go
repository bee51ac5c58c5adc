// Package mock provides an offline movie source for developer mode.
package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/flickstream/flickstream/internal/metadata/tmdb"
)

const pageSize = 20

// TMDBClient serves a small fixed catalogue shaped like TMDB responses.
type TMDBClient struct{}

// NewTMDBClient creates a new mock TMDB client.
func NewTMDBClient() *TMDBClient {
	return &TMDBClient{}
}

func (c *TMDBClient) Name() string {
	return "tmdb-mock"
}

func (c *TMDBClient) IsConfigured() bool {
	return true
}

func (c *TMDBClient) Test(ctx context.Context) error {
	return ctx.Err()
}

func (c *TMDBClient) GetMovie(ctx context.Context, id int) (*tmdb.MovieDetails, error) {
	for i := range mockMovies {
		if mockMovies[i].ID == id {
			details := mockMovies[i]
			return &details, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/movie/%d", id))
}

func (c *TMDBClient) GetMovieCredits(ctx context.Context, id int) (*tmdb.CreditsResponse, error) {
	if _, err := c.GetMovie(ctx, id); err != nil {
		return nil, notFound(fmt.Sprintf("/movie/%d/credits", id))
	}
	cast, ok := mockCast[id]
	if !ok {
		cast = defaultCast
	}
	return &tmdb.CreditsResponse{ID: id, Cast: append([]tmdb.CastMember(nil), cast...)}, nil
}

// GetSimilarMovies returns the catalogue movies sharing a genre with id, in catalogue order.
func (c *TMDBClient) GetSimilarMovies(ctx context.Context, id int) (*tmdb.MoviesPage, error) {
	movie, err := c.GetMovie(ctx, id)
	if err != nil {
		return nil, notFound(fmt.Sprintf("/movie/%d/similar", id))
	}

	genres := make(map[int]bool, len(movie.Genres))
	for _, g := range movie.Genres {
		genres[g.ID] = true
	}

	var results []tmdb.MovieResult
	for i := range mockMovies {
		candidate := &mockMovies[i]
		if candidate.ID == id {
			continue
		}
		for _, g := range candidate.Genres {
			if genres[g.ID] {
				results = append(results, toResult(candidate))
				break
			}
		}
	}
	return &tmdb.MoviesPage{Page: 1, Results: results, TotalPages: 1, TotalResults: len(results)}, nil
}

func (c *TMDBClient) GetMovieImages(ctx context.Context, id int) (*tmdb.ImagesResponse, error) {
	movie, err := c.GetMovie(ctx, id)
	if err != nil {
		return nil, notFound(fmt.Sprintf("/movie/%d/images", id))
	}

	resp := &tmdb.ImagesResponse{ID: id}
	for i := 0; i < 10; i++ {
		resp.Backdrops = append(resp.Backdrops, tmdb.ImageResult{
			FilePath: fmt.Sprintf("/mock_backdrop_%d_%d.jpg", id, i),
			Width:    1920, Height: 1080, AspectRatio: 1.778,
		})
	}
	for i := 0; i < 5; i++ {
		resp.Posters = append(resp.Posters, tmdb.ImageResult{
			FilePath: fmt.Sprintf("/mock_poster_%d_%d.jpg", id, i),
			Width:    1000, Height: 1500, AspectRatio: 0.667,
		})
	}
	if movie.BackdropPath != nil {
		resp.Backdrops[0].FilePath = *movie.BackdropPath
	}
	if movie.PosterPath != nil {
		resp.Posters[0].FilePath = *movie.PosterPath
	}
	return resp, nil
}

// SearchMulti matches movie titles and cast names case-insensitively.
func (c *TMDBClient) SearchMulti(ctx context.Context, query string, page int) (*tmdb.SearchMultiResponse, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	resp := &tmdb.SearchMultiResponse{Page: 1, TotalPages: 1}
	if query == "" {
		return resp, nil
	}

	for i := range mockMovies {
		movie := &mockMovies[i]
		if strings.Contains(strings.ToLower(movie.Title), query) {
			resp.Results = append(resp.Results, tmdb.MultiResult{
				ID:           movie.ID,
				MediaType:    "movie",
				Title:        movie.Title,
				Overview:     movie.Overview,
				ReleaseDate:  movie.ReleaseDate,
				PosterPath:   movie.PosterPath,
				BackdropPath: movie.BackdropPath,
				VoteAverage:  movie.VoteAverage,
			})
		}
	}

	seen := make(map[int]bool)
	for _, cast := range mockCast {
		for _, member := range cast {
			if seen[member.ID] || !strings.Contains(strings.ToLower(member.Name), query) {
				continue
			}
			seen[member.ID] = true
			resp.Results = append(resp.Results, tmdb.MultiResult{
				ID:          member.ID,
				MediaType:   "person",
				Name:        member.Name,
				ProfilePath: member.ProfilePath,
			})
		}
	}

	resp.TotalResults = len(resp.Results)
	return resp, nil
}

func (c *TMDBClient) GetPopularMovies(ctx context.Context, page int) (*tmdb.MoviesPage, error) {
	if page < 1 {
		page = 1
	}
	totalPages := (len(mockMovies) + pageSize - 1) / pageSize

	resp := &tmdb.MoviesPage{Page: page, TotalPages: totalPages, TotalResults: len(mockMovies), Results: []tmdb.MovieResult{}}
	start := (page - 1) * pageSize
	for i := start; i < len(mockMovies) && i < start+pageSize; i++ {
		resp.Results = append(resp.Results, toResult(&mockMovies[i]))
	}
	return resp, nil
}

func notFound(path string) error {
	return &tmdb.Failure{
		Kind:    tmdb.FailureProvider,
		Path:    path,
		Status:  404,
		Message: "The resource you requested could not be found.",
	}
}

func toResult(m *tmdb.MovieDetails) tmdb.MovieResult {
	ids := make([]int, 0, len(m.Genres))
	for _, g := range m.Genres {
		ids = append(ids, g.ID)
	}
	return tmdb.MovieResult{
		ID:           m.ID,
		Title:        m.Title,
		Overview:     m.Overview,
		ReleaseDate:  m.ReleaseDate,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		VoteAverage:  m.VoteAverage,
		GenreIDs:     ids,
	}
}

func path(p string) *string { return &p }

var (
	genreAction    = tmdb.Genre{ID: 28, Name: "Action"}
	genreAdventure = tmdb.Genre{ID: 12, Name: "Adventure"}
	genreCrime     = tmdb.Genre{ID: 80, Name: "Crime"}
	genreDrama     = tmdb.Genre{ID: 18, Name: "Drama"}
	genreHistory   = tmdb.Genre{ID: 36, Name: "History"}
	genreSciFi     = tmdb.Genre{ID: 878, Name: "Science Fiction"}
	genreThriller  = tmdb.Genre{ID: 53, Name: "Thriller"}
)

var defaultCast = []tmdb.CastMember{
	{ID: 1, Name: "Mock Lead", Character: "Protagonist", Order: 0},
	{ID: 2, Name: "Mock Support", Character: "Sidekick", Order: 1},
}

var mockCast = map[int][]tmdb.CastMember{
	603: { // The Matrix
		{ID: 6384, Name: "Keanu Reeves", Character: "Thomas A. Anderson / Neo", Order: 0, ProfilePath: path("/4D0PpNI0kmP58hgrwGC3wCjxhnm.jpg")},
		{ID: 2975, Name: "Laurence Fishburne", Character: "Morpheus", Order: 1, ProfilePath: path("/8suOhUmPbfKqDQ17jQ1Gy0mI3P4.jpg")},
		{ID: 530, Name: "Carrie-Anne Moss", Character: "Trinity", Order: 2, ProfilePath: path("/xD4jTA3KmVp5Rq3aHcymL9DwWl7.jpg")},
		{ID: 1331, Name: "Hugo Weaving", Character: "Agent Smith", Order: 3},
		{ID: 9364, Name: "Gloria Foster", Character: "Oracle", Order: 4},
		{ID: 9372, Name: "Joe Pantoliano", Character: "Cypher", Order: 5},
		{ID: 9374, Name: "Marcus Chong", Character: "Tank", Order: 6},
		{ID: 9376, Name: "Julian Arahanga", Character: "Apoc", Order: 7},
		{ID: 9378, Name: "Matt Doran", Character: "Mouse", Order: 8},
		{ID: 9380, Name: "Belinda McClory", Character: "Switch", Order: 9},
	},
	27205: { // Inception
		{ID: 6193, Name: "Leonardo DiCaprio", Character: "Dom Cobb", Order: 0, ProfilePath: path("/wo2hJpn04vbtmh0B9utCFdsQhxM.jpg")},
		{ID: 24045, Name: "Joseph Gordon-Levitt", Character: "Arthur", Order: 1, ProfilePath: path("/zvwJpU44vs1FfkBpCf5chCRfJo8.jpg")},
		{ID: 27578, Name: "Elliot Page", Character: "Ariadne", Order: 2, ProfilePath: path("/cJACXMKx7IKfDy4gfVKBfYxHvD.jpg")},
		{ID: 2524, Name: "Tom Hardy", Character: "Eames", Order: 3, ProfilePath: path("/sGMA6pA2D6X0gun49igJT3piHs3.jpg")},
	},
}

var mockMovies = []tmdb.MovieDetails{
	{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31", Runtime: 136, VoteAverage: 8.2, ImdbID: "tt0133093", Tagline: "Welcome to the Real World.", Overview: "Set in the 22nd century, The Matrix tells the story of a computer hacker who joins a group of underground insurgents fighting the vast and powerful computers who now rule the earth.", PosterPath: path("/p96dm7sCMn4VYAStA6siNz30G1r.jpg"), BackdropPath: path("/tlm8UkiQsitc8rSuIAscQDCnP8d.jpg"), Genres: []tmdb.Genre{genreAction, genreSciFi}},
	{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", Runtime: 139, VoteAverage: 8.4, ImdbID: "tt0137523", Overview: "A ticking-time-bomb insomniac and a slippery soap salesman channel primal male aggression into a shocking new form of therapy.", PosterPath: path("/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"), BackdropPath: path("/5TiwfWEaPSwD20uwXjCTUqpQX70.jpg"), Genres: []tmdb.Genre{genreDrama, genreThriller}},
	{ID: 680, Title: "Pulp Fiction", ReleaseDate: "1994-09-10", Runtime: 154, VoteAverage: 8.5, ImdbID: "tt0110912", Overview: "A burger-loving hit man, his philosophical partner, a drug-addled gangster's moll and a washed-up boxer converge in this sprawling, comedic crime caper.", PosterPath: path("/vQWk5YBFWF4bZaofAbv0tShwBvQ.jpg"), BackdropPath: path("/96hiUXEuYsu4tcnvlaY8tEMFM0m.jpg"), Genres: []tmdb.Genre{genreThriller, genreCrime}},
	{ID: 155, Title: "The Dark Knight", ReleaseDate: "2008-07-16", Runtime: 152, VoteAverage: 8.5, ImdbID: "tt0468569", Overview: "Batman raises the stakes in his war on crime. With the help of Lt. Jim Gordon and District Attorney Harvey Dent, Batman sets out to dismantle the remaining criminal organizations that plague the streets.", PosterPath: path("/qJ2tW6WMUDux911r6m7haRef0WH.jpg"), BackdropPath: path("/cfT29Im5VDvjE0RpyKOSdCKZal7.jpg"), Genres: []tmdb.Genre{genreDrama, genreAction, genreCrime, genreThriller}},
	{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", Runtime: 148, VoteAverage: 8.4, ImdbID: "tt1375666", Tagline: "Your mind is the scene of the crime.", Overview: "Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets is offered a chance to regain his old life as payment for a task considered to be impossible.", PosterPath: path("/xlaY2zyzMfkhk0HSC5VUwzoZPU1.jpg"), BackdropPath: path("/ii8QGacT3MXESqBckQlyrATY0lT.jpg"), Genres: []tmdb.Genre{genreAction, genreSciFi, genreAdventure}},
	{ID: 157336, Title: "Interstellar", ReleaseDate: "2014-11-05", Runtime: 169, VoteAverage: 8.4, ImdbID: "tt0816692", Overview: "The adventures of a group of explorers who make use of a newly discovered wormhole to surpass the limitations on human space travel.", PosterPath: path("/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg"), BackdropPath: path("/5XNQBqnBwPA9yT0jZ0p3s8bbLh0.jpg"), Genres: []tmdb.Genre{genreAdventure, genreDrama, genreSciFi}},
	{ID: 438631, Title: "Dune", ReleaseDate: "2021-09-15", Runtime: 155, VoteAverage: 7.8, ImdbID: "tt1160419", Overview: "Paul Atreides, a brilliant and gifted young man born into a great destiny beyond his understanding, must travel to the most dangerous planet in the universe.", PosterPath: path("/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"), BackdropPath: path("/jYEW5xZkZk2WTrdbMGAPFuBqbDc.jpg"), Genres: []tmdb.Genre{genreSciFi, genreAdventure}},
	{ID: 693134, Title: "Dune: Part Two", ReleaseDate: "2024-02-27", Runtime: 167, VoteAverage: 8.2, ImdbID: "tt15239678", Overview: "Follow the mythic journey of Paul Atreides as he unites with Chani and the Fremen while on a path of revenge against the conspirators who destroyed his family.", PosterPath: path("/1pdfLvkbY9ohJlCjQH2CZjjYVvJ.jpg"), BackdropPath: path("/xOMo8BRK7PfcJv9JCnx7s5hj0PX.jpg"), Genres: []tmdb.Genre{genreSciFi, genreAdventure}},
	{ID: 872585, Title: "Oppenheimer", ReleaseDate: "2023-07-19", Runtime: 181, VoteAverage: 8.1, ImdbID: "tt15398776", Overview: "The story of J. Robert Oppenheimer's role in the development of the atomic bomb during World War II.", PosterPath: path("/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg"), BackdropPath: path("/7CENyUim29IEsaJhUxIGymCRvPu.jpg"), Genres: []tmdb.Genre{genreDrama, genreHistory}},
	{ID: 359724, Title: "Ford v Ferrari", ReleaseDate: "2019-11-13", Runtime: 153, VoteAverage: 8.0, ImdbID: "tt1950186", Overview: "American car designer Carroll Shelby and the British-born driver Ken Miles work together to battle corporate interference, the laws of physics, and their own personal demons.", PosterPath: path("/dR1Ju50iudrOh3YgfwkAU1g2HZe.jpg"), BackdropPath: path("/2vq5GTJOahE03mNYZGxIynlHcWr.jpg"), Genres: []tmdb.Genre{genreDrama, genreAction, genreHistory}},
}
