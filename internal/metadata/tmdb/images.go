package tmdb

import "strings"

// Image size tokens understood by the TMDB image host.
const (
	SizeProfile  = "w185"
	SizeSimilar  = "w342"
	SizePoster   = "w500"
	SizeGallery  = "w780"
	SizeOriginal = "original"
)

// ImageURL joins an image base URL, a size token and a path fragment.
// Returns "" for an empty path so callers can render a placeholder.
func ImageURL(baseURL, size, path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(baseURL, "/") + "/" + size + path
}

// GetImageURL returns a full image URL for a given path and size using the client's image host.
func (c *Client) GetImageURL(path string, size string) string {
	return ImageURL(c.config.ImageBaseURL, size, path)
}
