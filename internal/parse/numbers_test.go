// ABOUTME: Tests for abbreviated number parsing
// ABOUTME: Covers comma grouping, K/M suffixes, and trailing label text

package parse

import (
	"strings"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"500", 500},
		{"1,234", 1234},
		{"1.2K", 1200},
		{"3M", 3_000_000},
		{"1,234 Followers", 1234},
		{"10.5M Views", 10_500_000},
		{"152.1K Views", 152_100},
		{"109 Chapters", 109},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if err != nil {
				t.Fatalf("ParseNumber(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	for _, in := range []string{"", "no digits here", "Ongoing"} {
		if _, err := ParseNumber(in); err == nil {
			t.Errorf("ParseNumber(%q) expected error", in)
		}
	}
}

func TestDescriptionMarkdown(t *testing.T) {
	md := DescriptionMarkdown("<p>A humble mage.</p><p>He climbs.</p>")
	if md == "" {
		t.Fatal("expected markdown output, got empty string")
	}
	for _, want := range []string{"A humble mage.", "He climbs."} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown should contain %q, got %q", want, md)
		}
	}
	for _, bad := range []string{"<p>", "</p>"} {
		if strings.Contains(md, bad) {
			t.Errorf("markdown should not contain %q, got %q", bad, md)
		}
	}

	bold := DescriptionMarkdown("<strong>Updates</strong> weekly")
	if !strings.Contains(bold, "**Updates**") {
		t.Errorf("expected bold conversion, got %q", bold)
	}

	// Plain text passes through with whitespace cleanup only
	plain := DescriptionMarkdown("  just words\n\n\n\nmore words  ")
	if plain != "just words\n\nmore words" {
		t.Errorf("plain text cleanup: %q", plain)
	}

	if DescriptionMarkdown("") != "" {
		t.Error("empty input should stay empty")
	}
}
