// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for scholar-fetch.
// A Publication is one parsed listing entry; a ResultDocument is what the
// writer persists at the end of a run.
package types

// Publication is a single entry parsed from a profile's publication listing.
// Field names and their order are part of the output format.
type Publication struct {
	// Title is the publication title. Entries without one are never emitted.
	Title string `json:"title" yaml:"title"`

	// Authors is the author line as displayed on the listing, possibly empty.
	Authors string `json:"authors" yaml:"authors"`

	// Venue is the venue text with the year removed, possibly empty.
	Venue string `json:"venue" yaml:"venue"`

	// Year is a 4-digit year in 1900-2099, or empty when none was detected.
	Year string `json:"year" yaml:"year"`

	// Citations is the citation count; 0 when absent or not yet indexed.
	Citations int `json:"citations" yaml:"citations"`

	// Link is the absolute URL of the publication, nil when the entry had none.
	Link *string `json:"link" yaml:"link"`

	// ScholarLink deep-links to the citation view of the entry, nil when no
	// citation identifier could be extracted.
	ScholarLink *string `json:"scholar_link" yaml:"scholar_link"`
}

// ResultDocument wraps a run's publications with descriptive metadata.
type ResultDocument struct {
	// LastUpdated is the local run time formatted as "2006-01-02 15:04:05".
	LastUpdated string `json:"last_updated" yaml:"last_updated"`

	// TotalPublications is len(Publications).
	TotalPublications int `json:"total_publications" yaml:"total_publications"`

	Publications []Publication `json:"publications" yaml:"publications"`
}

// TimestampLayout is the layout of ResultDocument.LastUpdated.
const TimestampLayout = "2006-01-02 15:04:05"

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
