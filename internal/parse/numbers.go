// ABOUTME: Abbreviated number parsing for scraped stat text
// ABOUTME: Handles comma grouping and K/M suffixes like "1.2K Followers" or "3M Views"

package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern pulls the numeric part out of stat text like
// "1,234 Followers" or "1.2K Views"
var numberPattern = regexp.MustCompile(`[\d,\.]+`)

// ParseNumber parses a count from stat text, handling comma grouping
// and K/M suffixes. The suffix may appear anywhere after the number.
func ParseNumber(text string) (int64, error) {
	if text == "" {
		return 0, fmt.Errorf("empty stat text")
	}

	match := numberPattern.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no number in %q", text)
	}

	multiplier := 1.0
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "K") {
		multiplier = 1_000
	} else if strings.Contains(upper, "M") {
		multiplier = 1_000_000
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", text, err)
	}

	return int64(value * multiplier), nil
}

// parseFloat converts a regex-captured number, returning 0 on failure
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
