// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// notIndexedMarker is shown instead of a count for entries too new to be indexed.
const notIndexedMarker = "*"

var (
	// RE2 word boundaries are ASCII-only, so a year directly followed by a
	// non-ASCII letter ("2019年") still matches.
	yearPattern       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	citationIDPattern = regexp.MustCompile(`citation_for_view=[^&]*?:([^&]*)`)
)

// SplitVenueYear separates the combined venue line of a row into venue and
// year. The year is the first 4-digit token in 1900-2099. Every occurrence
// of that token is removed from the venue, so a page range containing the
// same digits loses them too.
func SplitVenueYear(info string) (venue, year string) {
	info = strings.TrimSpace(info)
	if info == "" {
		return "", ""
	}

	year = yearPattern.FindString(info)
	if year == "" {
		return info, ""
	}
	venue = strings.Trim(strings.ReplaceAll(info, year, ""), " ,.")
	return venue, year
}

// ParseCitations converts the citation cell text into a count. Empty text
// and the not-indexed marker count as zero.
func ParseCitations(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == notIndexedMarker {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parsing citation count %q: %w", text, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("parsing citation count %q: negative", text)
	}
	return n, nil
}

// CitationID extracts <id> from a citation_for_view=<profile>:<id> query
// parameter in link. It reports false when link has no such parameter.
func CitationID(link string) (string, bool) {
	m := citationIDPattern.FindStringSubmatch(link)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// absoluteURL resolves href against baseURL. Absolute and
// protocol-relative hrefs keep their own host.
func absoluteURL(baseURL, href string) string {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(href, "/")
	}
	return base.ResolveReference(ref).String()
}

// cleanText trims s and collapses internal whitespace runs to one space.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
