// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the listing host.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent with every request. A browser-like value avoids
	// trivial blocking by the listing host.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// BaseURL is the site origin (e.g. "https://scholar.google.com"). It is
	// used for listing requests and to absolutize relative links.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ProfileID is the external key of the researcher's listing.
	ProfileID string `json:"profile_id" yaml:"profile_id"`

	// MaxPages bounds the number of listing pages requested (default 3).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// Locale is sent as the hl query parameter (default "en").
	Locale string `json:"locale" yaml:"locale"`

	// PageDelay is the courtesy pause between page requests (default 2s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// OutputFormat selects the serialization of the result document.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// OutputConfig holds settings for the writer.
type OutputConfig struct {
	// Path is the destination file (default "publications.json").
	Path string `json:"path" yaml:"path"`

	// Format selects json or yaml. Empty infers from the path extension.
	Format OutputFormat `json:"format" yaml:"format"`
}

// ArchiveConfig holds settings for the optional SQLite run archive.
type ArchiveConfig struct {
	// DBPath is the SQLite database file. Empty disables archiving.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups the settings of one run. It is built once at the entry
// point and passed down.
type Config struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`

	// MetricsFile, when set, receives run counters in the Prometheus text format.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}
