// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"

	"github.com/pdiddy/scholar-fetch/pkg/types"
)

// CollectResult is the outcome of one fetch-and-parse run.
type CollectResult struct {
	// Publications are the parsed rows in listing order.
	Publications []types.Publication

	// Pages is the number of pages fetched successfully.
	Pages int

	// Skipped counts rows that produced no publication.
	Skipped int

	// FetchErr is the page failure that ended pagination, if any.
	FetchErr error
}

// Collect fetches the listing of p.ProfileID and parses every row. Rows that
// fail to parse are logged and dropped; nothing here fails the run.
func Collect(ctx context.Context, f *Fetcher, p Parser, maxPages int) CollectResult {
	fetched := f.Fetch(ctx, p.ProfileID, maxPages)

	result := CollectResult{
		Publications: make([]types.Publication, 0, len(fetched.Entries)),
		Pages:        fetched.Pages,
		FetchErr:     fetched.Err,
	}

	for _, e := range fetched.Entries {
		pub, ok, err := p.Parse(e)
		if err != nil {
			result.Skipped++
			f.Metrics.EntrySkipped()
			f.Logger.Warn().Err(err).Int("page", e.Page).Int("entry", e.Index).Msg("error parsing publication")
			continue
		}
		if !ok {
			result.Skipped++
			f.Metrics.EntrySkipped()
			f.Logger.Debug().Int("page", e.Page).Int("entry", e.Index).Msg("row without title skipped")
			continue
		}
		f.Metrics.EntryParsed()
		result.Publications = append(result.Publications, pub)
	}

	return result
}
