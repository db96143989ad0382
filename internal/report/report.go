// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report prints the human-readable summary of a fetch run.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pdiddy/scholar-fetch/pkg/types"
)

const (
	// SummaryLimit is how many publications the summary lists.
	SummaryLimit = 5

	titleWidth = 60
)

// Summary writes the outcome of a run to w: the count, where it was saved,
// and a table of the first limit publications.
func Summary(w io.Writer, pubs []types.Publication, path string, limit int) {
	if len(pubs) == 0 {
		fmt.Fprintln(w, "No publications found or error occurred.")
		fmt.Fprintf(w, "Empty result saved to: %s\n", path)
		return
	}

	fmt.Fprintf(w, "\nSuccessfully fetched %d publications!\n", len(pubs))
	fmt.Fprintf(w, "Data saved to: %s\n", path)
	fmt.Fprintln(w, "\nPublication Summary:")

	shown := pubs
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	Table(w, shown)

	if rest := len(pubs) - len(shown); rest > 0 {
		fmt.Fprintf(w, "... and %d more publications\n", rest)
	}
}

// Table renders pubs as a numbered table.
func Table(w io.Writer, pubs []types.Publication) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Title", "Year", "Citations"})
	for i, p := range pubs {
		t.AppendRow(table.Row{i + 1, Truncate(p.Title, titleWidth), p.Year, p.Citations})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// Truncate shortens s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
