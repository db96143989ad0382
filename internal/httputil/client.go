// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client and request pacing used to talk
// to the listing host.
package httputil

import (
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/scholar-fetch/pkg/types"
)

// DefaultUserAgent is a desktop browser identification string. The listing
// host serves an interstitial to obvious non-browser clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// NewClient returns a resty client configured from cfg. Retries stay
// disabled: a failed page ends pagination.
func NewClient(cfg types.HTTPConfig) *resty.Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	c := resty.New().
		SetHeader("User-Agent", ua).
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return c
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// CheckStatus returns a *StatusError unless res carries a 2xx status.
func CheckStatus(res *resty.Response) error {
	code := res.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	url := ""
	if res.Request != nil {
		url = res.Request.URL
	}
	return &StatusError{StatusCode: code, URL: url}
}
