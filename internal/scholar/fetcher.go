// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-fetch/internal/httputil"
	"github.com/pdiddy/scholar-fetch/internal/metrics"
	"github.com/pdiddy/scholar-fetch/pkg/types"
)

// Fetcher requests listing pages in order, one at a time.
type Fetcher struct {
	Client  *resty.Client
	Config  types.FetchConfig
	Pacer   *httputil.Pacer
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// NewFetcher builds a Fetcher from cfg, filling in the base URL and locale
// defaults. m may be nil.
func NewFetcher(cfg types.FetchConfig, m *metrics.Metrics, logger zerolog.Logger) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	return &Fetcher{
		Client:  httputil.NewClient(cfg.HTTPConfig),
		Config:  cfg,
		Pacer:   httputil.NewPacer(cfg.PageDelay),
		Metrics: m,
		Logger:  logger,
	}
}

// FetchResult holds the rows gathered by Fetch.
type FetchResult struct {
	Entries []RawEntry

	// Pages is the number of pages fetched successfully, including a final
	// empty page.
	Pages int

	// Err is the page failure that ended pagination early, if any. The
	// entries gathered before it remain valid.
	Err error
}

// Fetch requests up to maxPages listing pages for profileID. It stops at
// the first page without rows. A transport error or non-2xx status on any
// page ends pagination; what was gathered so far is returned with the
// failure recorded in FetchResult.Err. After each successful page it pauses
// for Config.PageDelay before requesting the next.
func (f *Fetcher) Fetch(ctx context.Context, profileID string, maxPages int) FetchResult {
	var result FetchResult

	for page := 0; page < maxPages; page++ {
		if err := f.Pacer.Wait(ctx); err != nil {
			result.Err = fmt.Errorf("waiting for page %d: %w", page+1, err)
			f.Logger.Error().Err(err).Int("page", page+1).Msg("pagination aborted")
			break
		}

		u := listingURL(f.Config.BaseURL, profileID, f.Config.Locale, page)
		f.Logger.Info().Int("page", page+1).Msg("fetching page")

		rows, err := f.fetchPage(ctx, u)
		if err != nil {
			result.Err = fmt.Errorf("fetching page %d: %w", page+1, err)
			f.Metrics.FetchFailed()
			f.Logger.Error().Err(err).Int("page", page+1).Str("url", u).Msg("error fetching page")
			break
		}
		f.Pacer.Done()
		result.Pages++
		f.Metrics.PageFetched()

		if rows.Length() == 0 {
			f.Logger.Info().Int("page", page+1).Msg("no more publications found")
			break
		}

		rows.Each(func(i int, s *goquery.Selection) {
			result.Entries = append(result.Entries, RawEntry{Page: page + 1, Index: i, Row: s})
		})
		f.Logger.Debug().Int("page", page+1).Int("rows", rows.Length()).Msg("page fetched")
	}

	return result
}

// fetchPage retrieves one page and selects its listing rows.
func (f *Fetcher) fetchPage(ctx context.Context, u string) (*goquery.Selection, error) {
	res, err := f.Client.R().SetContext(ctx).Get(u)
	if err != nil {
		return nil, err
	}
	if err := httputil.CheckStatus(res); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing page markup: %w", err)
	}
	return doc.Find(rowSelector), nil
}
