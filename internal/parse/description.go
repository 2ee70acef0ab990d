// ABOUTME: Description blurb processing for fiction pages
// ABOUTME: Converts the description HTML fragment to clean markdown for storage and display

package parse

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches tags the site uses inside description blurbs
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|strong|em|b|i|hr|blockquote)[^>]*>`)

// blankRunPattern collapses runs of three or more newlines
var blankRunPattern = regexp.MustCompile(`\n{3,}`)

// isHTML checks whether a blurb still carries markup
func isHTML(s string) bool {
	return htmlTagPattern.MatchString(s)
}

// DescriptionMarkdown converts a description HTML fragment to markdown.
// Plain-text blurbs pass through with whitespace cleanup only; if
// conversion fails the original text is returned rather than nothing.
func DescriptionMarkdown(fragment string) string {
	if fragment == "" {
		return ""
	}

	text := fragment
	if isHTML(fragment) {
		markdown, err := htmltomarkdown.ConvertString(fragment)
		if err == nil {
			text = markdown
		}
	}

	text = strings.TrimSpace(text)
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	return text
}
