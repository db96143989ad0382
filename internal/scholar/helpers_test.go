// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const testProfile = "0ZahlvEAAAAJ"

// row describes one listing row for fixture markup. Empty fields are left
// out of the markup entirely, except Citations which always emits the cell.
type row struct {
	Title     string
	Href      string
	Authors   string
	Venue     string
	Year      string
	Citations string
	NoTitle   bool
}

func (r row) html() string {
	var b strings.Builder
	b.WriteString(`<tr class="gsc_a_tr"><td class="gsc_a_t">`)
	if !r.NoTitle {
		if r.Href != "" {
			fmt.Fprintf(&b, `<a href="%s" class="gsc_a_at">%s</a>`, r.Href, r.Title)
		} else {
			fmt.Fprintf(&b, `<a class="gsc_a_at">%s</a>`, r.Title)
		}
	}
	if r.Authors != "" {
		fmt.Fprintf(&b, `<div class="gs_gray">%s</div>`, r.Authors)
	}
	if r.Venue != "" || r.Year != "" {
		b.WriteString(`<div class="gs_gray">` + r.Venue)
		if r.Year != "" {
			fmt.Fprintf(&b, `<span class="gs_oph">, %s</span>`, r.Year)
		}
		b.WriteString(`</div>`)
	}
	fmt.Fprintf(&b, `</td><td class="gsc_a_c"><a href="/scholar?cites=1" class="gsc_a_ac gs_ibl">%s</a></td>`, r.Citations)
	fmt.Fprintf(&b, `<td class="gsc_a_y"><span class="gsc_a_h gsc_a_hc gs_ibl">%s</span></td></tr>`, r.Year)
	return b.String()
}

// listingPage renders a profile page containing rows.
func listingPage(rows ...row) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Profile</title></head><body>`)
	b.WriteString(`<div id="gsc_prf_in">Test Researcher</div>`)
	b.WriteString(`<table id="gsc_a_t"><thead><tr class="gsc_a_trh"><th>Title</th></tr></thead><tbody id="gsc_a_b">`)
	for _, r := range rows {
		b.WriteString(r.html())
	}
	if len(rows) == 0 {
		b.WriteString(`<tr class="gsc_a_e"><td>There are no articles in this profile.</td></tr>`)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

// entryFor parses r inside a listing page and returns it as a RawEntry.
func entryFor(t *testing.T, r row) RawEntry {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingPage(r)))
	if err != nil {
		t.Fatal(err)
	}
	sel := doc.Find(rowSelector).First()
	if sel.Length() == 0 {
		t.Fatal("fixture row not found")
	}
	return RawEntry{Page: 1, Index: 0, Row: sel}
}

func citationHref(id string) string {
	return "/citations?view_op=view_citation&amp;hl=en&amp;user=" + testProfile +
		"&amp;citation_for_view=" + testProfile + ":" + id
}
