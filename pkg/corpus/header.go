package corpus

import "strings"

// TrimHeader drops everything up to and including the first occurrence of
// header, typically a title, author and chapter heading block at the top of
// a book. It reports whether the header was found; if it was not, or header
// is empty, text is returned unchanged.
func TrimHeader(text, header string) (string, bool) {
	if header == "" {
		return text, false
	}
	_, after, found := strings.Cut(text, header)
	if !found {
		return text, false
	}
	return after, true
}
