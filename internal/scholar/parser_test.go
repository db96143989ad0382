// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-fetch/pkg/types"
)

func TestParse_FullRow(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{
		Title:     "Deep Learning Survey",
		Href:      citationHref("u5HHmVD_uO8C"),
		Authors:   "A. Smith, B. Lee",
		Venue:     "Journal of ML",
		Year:      "2019",
		Citations: "42",
	})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)

	link := "https://scholar.google.com/citations?view_op=view_citation&hl=en&user=0ZahlvEAAAAJ&citation_for_view=0ZahlvEAAAAJ:u5HHmVD_uO8C"
	want := types.Publication{
		Title:       "Deep Learning Survey",
		Authors:     "A. Smith, B. Lee",
		Venue:       "Journal of ML",
		Year:        "2019",
		Citations:   42,
		Link:        types.StringPtr(link),
		ScholarLink: types.StringPtr(link),
	}
	if diff := cmp.Diff(want, pub); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MissingTitleSkipsSilently(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{NoTitle: true, Authors: "A. Smith", Venue: "Venue", Year: "2020", Citations: "3"})

	_, ok, err := p.Parse(e)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestParse_BlankTitleSkipsSilently(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "   ", Href: citationHref("x"), Citations: "1"})

	_, ok, err := p.Parse(e)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestParse_NilRow(t *testing.T) {
	_, ok, err := NewParser("", testProfile).Parse(RawEntry{})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestParse_NotIndexedCitations(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "Fresh Preprint", Href: citationHref("abc"), Citations: "*"})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, pub.Citations)
}

func TestParse_EmptyCitations(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "Uncited", Href: citationHref("abc")})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, pub.Citations)
}

func TestParse_BadCitationsIsError(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "Odd Row", Href: citationHref("abc"), Citations: "many"})

	_, ok, err := p.Parse(e)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestParse_NoAuthorsOrVenue(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "Bare Entry", Href: citationHref("id1"), Citations: "7"})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", pub.Authors)
	assert.Equal(t, "", pub.Venue)
	assert.Equal(t, "", pub.Year)
	assert.Equal(t, 7, pub.Citations)
}

func TestParse_VenueWithoutYear(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "Talk", Href: citationHref("id2"), Authors: "C. Doe", Venue: "Invited talk"})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Invited talk", pub.Venue)
	assert.Equal(t, "", pub.Year)
}

func TestParse_NoHrefLeavesLinksNil(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "Linkless", Authors: "D. Roe", Citations: "1"})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, pub.Link)
	assert.Nil(t, pub.ScholarLink)
}

func TestParse_ExternalLinkWithoutCitationID(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{Title: "Published", Href: "https://www.nature.com/articles/s41591-024-02971-2", Citations: "94"})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, pub.Link)
	assert.Equal(t, "https://www.nature.com/articles/s41591-024-02971-2", *pub.Link)
	assert.Nil(t, pub.ScholarLink)
}

func TestParse_CustomBaseURL(t *testing.T) {
	p := NewParser("http://127.0.0.1:9999", testProfile)
	e := entryFor(t, row{Title: "Local", Href: citationHref("zz"), Citations: "2"})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, pub.Link)
	assert.True(t, strings.HasPrefix(*pub.Link, "http://127.0.0.1:9999/citations?"))
	require.NotNil(t, pub.ScholarLink)
	assert.Equal(t,
		"http://127.0.0.1:9999/citations?view_op=view_citation&hl=en&user=0ZahlvEAAAAJ&citation_for_view=0ZahlvEAAAAJ:zz",
		*pub.ScholarLink)
}

func TestParse_PreservesUnicodeAndCollapsesWhitespace(t *testing.T) {
	p := NewParser("", testProfile)
	e := entryFor(t, row{
		Title:     "Électron   dynamics\n in <b>Fe–S</b> clusters",
		Href:      citationHref("u1"),
		Authors:   "J. Müller, Z. Łukasz",
		Venue:     "Physical Review B",
		Year:      "2025",
		Citations: "1",
	})

	pub, ok, err := p.Parse(e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Électron dynamics in Fe–S clusters", pub.Title)
	assert.Equal(t, "J. Müller, Z. Łukasz", pub.Authors)
	assert.Equal(t, "Physical Review B", pub.Venue)
	assert.Equal(t, "2025", pub.Year)
}

func TestParse_VenueTakenFromSiblingOfAuthors(t *testing.T) {
	html := `<table><tbody><tr class="gsc_a_tr"><td class="gsc_a_t">` +
		`<a href="/x" class="gsc_a_at">T</a>` +
		`<div class="gs_gray">Authors Line</div>` +
		`<span>ignored</span>` +
		`<div class="gs_gray">Some Venue, 2010</div>` +
		`</td><td><a class="gsc_a_ac">5</a></td></tr></tbody></table>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	pub, ok, err := NewParser("", testProfile).Parse(RawEntry{Row: doc.Find(rowSelector).First()})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Authors Line", pub.Authors)
	assert.Equal(t, "Some Venue", pub.Venue)
	assert.Equal(t, "2010", pub.Year)
	assert.Equal(t, 5, pub.Citations)
}
