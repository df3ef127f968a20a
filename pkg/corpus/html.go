package corpus

import (
	"fmt"
	"io"
	"net/url"

	"github.com/go-shiori/go-readability"
)

// ExtractHTML reduces an HTML document to the plain text of its main
// article, dropping navigation, scripts and markup. pageURL is used to
// resolve relative links; a nil pageURL is replaced by a placeholder.
func ExtractHTML(r io.Reader, pageURL *url.URL) (string, error) {
	if pageURL == nil {
		pageURL = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}
	}
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract article: %w", err)
	}
	return article.TextContent, nil
}
