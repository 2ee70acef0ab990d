// ABOUTME: Identity resolution for story URLs
// ABOUTME: Extracts the site's permanent fiction id so a story keeps one identity across title and slug changes

package identity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when a URL does not carry the expected
// /fiction/{id} path shape
var ErrInvalidURL = errors.New("URL has no fiction id")

// Resolve extracts the stable story id from a fiction URL.
//
// The site keeps the numeric id segment permanent while the trailing
// slug tracks the current title, so /fiction/12345/some-slug and
// /fiction/12345/renamed-slug identify the same story. Resolve is pure:
// the same URL always yields the same id.
func Resolve(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment != "fiction" {
			continue
		}
		if i+1 >= len(segments) || segments[i+1] == "" {
			return "", fmt.Errorf("%w: nothing after /fiction in %q", ErrInvalidURL, rawURL)
		}
		return segments[i+1], nil
	}

	return "", fmt.Errorf("%w: no /fiction segment in %q", ErrInvalidURL, rawURL)
}
