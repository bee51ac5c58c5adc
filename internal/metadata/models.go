package metadata

// Display caps applied to an aggregate after a successful fetch. Provider order is kept.
const (
	CastLimit     = 7
	SimilarLimit  = 6
	BackdropLimit = 8
	PosterLimit   = 4
)

// Movie is the detail slice of a movie aggregate.
type Movie struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	ReleaseDate  string   `json:"releaseDate,omitempty"`
	Year         int      `json:"year,omitempty"`
	Runtime      int      `json:"runtime,omitempty"`
	Overview     string   `json:"overview"`
	Tagline      string   `json:"tagline,omitempty"`
	Genres       []string `json:"genres,omitempty"`
	VoteAverage  float64  `json:"voteAverage,omitempty"`
	PosterPath   string   `json:"posterPath,omitempty"`
	BackdropPath string   `json:"backdropPath,omitempty"`
	PosterURL    string   `json:"posterUrl,omitempty"`
	BackdropURL  string   `json:"backdropUrl,omitempty"`
}

// CastMember is one credited actor.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profilePath,omitempty"`
	ProfileURL  string `json:"profileUrl,omitempty"`
}

// ImageCategory distinguishes gallery images.
type ImageCategory string

const (
	ImageBackdrop ImageCategory = "backdrop"
	ImagePoster   ImageCategory = "poster"
)

// ImageAsset is a gallery image. URL is the grid size, OriginalURL the full-size variant.
type ImageAsset struct {
	FilePath    string        `json:"filePath"`
	Category    ImageCategory `json:"category"`
	URL         string        `json:"url"`
	OriginalURL string        `json:"originalUrl"`
}

// MovieSummary is a movie in a list (similar titles, popular listing).
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Year        int     `json:"year,omitempty"`
	VoteAverage float64 `json:"voteAverage,omitempty"`
	PosterPath  string  `json:"posterPath,omitempty"`
	PosterURL   string  `json:"posterUrl,omitempty"`
}

// MoviePage is one page of a movie listing.
type MoviePage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
	Results      []MovieSummary `json:"results"`
}

// MediaType tags a search result.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaTV     MediaType = "tv"
	MediaPerson MediaType = "person"
	MediaOther  MediaType = "other"
)

// SearchResult is one entry of a multi search. Unknown media types are reported as MediaOther.
type SearchResult struct {
	ID          int       `json:"id"`
	MediaType   MediaType `json:"mediaType"`
	Title       string    `json:"title"`
	Year        int       `json:"year,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	VoteAverage float64   `json:"voteAverage,omitempty"`
	PosterPath  string    `json:"posterPath,omitempty"`
	PosterURL   string    `json:"posterUrl,omitempty"`
}

// Composite is the merged outcome of the detail, credits, similar and images calls for one movie.
// Optional slices are never nil; a failed slice is empty.
type Composite struct {
	Movie     Movie          `json:"movie"`
	Cast      []CastMember   `json:"cast"`
	Similar   []MovieSummary `json:"similar"`
	Backdrops []ImageAsset   `json:"backdrops"`
	Posters   []ImageAsset   `json:"posters"`
}
