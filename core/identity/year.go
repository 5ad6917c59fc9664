package identity

import (
	"strconv"
	"strings"
)

const (
	minYear = 1870
	maxYear = 2100
)

// YearFromTitle scans the whitespace-delimited tokens of title for a four-digit year.
// The last plausible year wins so that "Blade Runner 2049 (2017)" yields 2017.
func YearFromTitle(title string) int {
	year := 0
	for _, token := range strings.Fields(title) {
		if y := parseYearToken(token); y > 0 {
			year = y
		}
	}
	return year
}

// splitTitleYear strips a trailing "(YYYY)" from a feed title.
func splitTitleYear(title string) (string, int) {
	title = strings.TrimSpace(title)
	fields := strings.Fields(title)
	if len(fields) < 2 {
		return title, 0
	}
	last := fields[len(fields)-1]
	if !strings.HasPrefix(last, "(") || !strings.HasSuffix(last, ")") {
		return title, 0
	}
	y := parseYearToken(last)
	if y == 0 {
		return title, 0
	}
	return strings.TrimSpace(strings.TrimSuffix(title, last)), y
}

func parseYearToken(token string) int {
	token = strings.Trim(token, "()[]{},.:;")
	if len(token) != 4 {
		return 0
	}
	y, err := strconv.Atoi(token)
	if err != nil || y < minYear || y > maxYear {
		return 0
	}
	return y
}
