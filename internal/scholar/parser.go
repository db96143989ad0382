// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"strings"

	"github.com/pdiddy/scholar-fetch/pkg/types"
)

// Parser turns listing rows into publications.
type Parser struct {
	// BaseURL absolutizes relative links and prefixes derived links.
	BaseURL string

	// ProfileID is the listing the rows belong to.
	ProfileID string
}

// NewParser returns a Parser for profileID, defaulting baseURL.
func NewParser(baseURL, profileID string) Parser {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Parser{BaseURL: baseURL, ProfileID: profileID}
}

// Parse extracts a publication from one row. It returns ok=false with a nil
// error when the row has no title, which drops the row silently. A non-nil
// error means the row was malformed and should be logged and dropped.
func (p Parser) Parse(e RawEntry) (pub types.Publication, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			pub, ok, err = types.Publication{}, false, fmt.Errorf("unexpected row structure: %v", r)
		}
	}()

	if e.Row == nil {
		return types.Publication{}, false, nil
	}

	titleEl := e.Row.Find(titleSelector).First()
	if titleEl.Length() == 0 {
		return types.Publication{}, false, nil
	}
	pub.Title = cleanText(titleEl.Text())
	if pub.Title == "" {
		return types.Publication{}, false, nil
	}

	if href, exists := titleEl.Attr("href"); exists && strings.TrimSpace(href) != "" {
		pub.Link = types.StringPtr(absoluteURL(p.BaseURL, strings.TrimSpace(href)))
	}

	authorsEl := e.Row.Find(grayLineSelector).First()
	pub.Authors = cleanText(authorsEl.Text())

	venueEl := authorsEl.NextAllFiltered(grayLineSelector).First()
	pub.Venue, pub.Year = SplitVenueYear(cleanText(venueEl.Text()))

	pub.Citations, err = ParseCitations(e.Row.Find(citationsSelector).First().Text())
	if err != nil {
		return types.Publication{}, false, err
	}

	if pub.Link != nil {
		if id, found := CitationID(*pub.Link); found {
			pub.ScholarLink = types.StringPtr(citationViewURL(p.BaseURL, p.ProfileID, id))
		}
	}

	return pub, true, nil
}
