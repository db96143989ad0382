// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar retrieves a researcher's publication listing page by page
// and parses each listing row into a types.Publication.
//
// The Fetcher only knows about pagination and transport; the Parser only
// knows about the row markup. Collect ties them together for one run.
package scholar

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultBaseURL is the origin of the listing host.
	DefaultBaseURL = "https://scholar.google.com"

	// DefaultProfileID is used when no profile is configured.
	DefaultProfileID = "0ZahlvEAAAAJ"

	// DefaultLocale is sent as the hl parameter.
	DefaultLocale = "en"

	// PageSize is the number of rows the listing host returns per page.
	PageSize = 20
)

// Row markup selectors.
const (
	rowSelector       = "tr.gsc_a_tr"
	titleSelector     = "a.gsc_a_at"
	grayLineSelector  = "div.gs_gray"
	citationsSelector = "a.gsc_a_ac"
)

// RawEntry is one listing row as returned by the Fetcher.
type RawEntry struct {
	// Page is the 1-based page the row came from.
	Page int

	// Index is the 0-based position of the row within its page.
	Index int

	// Row is the <tr> element of the entry.
	Row *goquery.Selection
}

// listingURL builds the URL of the zero-based page of a profile listing.
func listingURL(baseURL, profileID, locale string, page int) string {
	return fmt.Sprintf("%s/citations?user=%s&hl=%s&oi=ao&cstart=%d",
		strings.TrimSuffix(baseURL, "/"), url.QueryEscape(profileID), url.QueryEscape(locale), page*PageSize)
}

// citationViewURL builds the deep link to the citation view of one entry.
func citationViewURL(baseURL, profileID, citationID string) string {
	return fmt.Sprintf("%s/citations?view_op=view_citation&hl=en&user=%s&citation_for_view=%s:%s",
		strings.TrimSuffix(baseURL, "/"), profileID, profileID, citationID)
}
