// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-fetch/internal/archive"
	"github.com/pdiddy/scholar-fetch/internal/httputil"
	"github.com/pdiddy/scholar-fetch/internal/logging"
	"github.com/pdiddy/scholar-fetch/internal/metrics"
	"github.com/pdiddy/scholar-fetch/internal/output"
	"github.com/pdiddy/scholar-fetch/internal/report"
	"github.com/pdiddy/scholar-fetch/internal/scholar"
	"github.com/pdiddy/scholar-fetch/pkg/types"
)

const (
	defaultProfile   = scholar.DefaultProfileID
	defaultMaxPages  = 3
	defaultPageDelay = 2 * time.Second
	defaultTimeout   = 30 * time.Second
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the publication listing and write the result document",
	Long: `Fetch requests the profile listing 20 entries per page, pausing between
pages, until a page comes back empty or max-pages is reached. A failed page
ends pagination; whatever was collected is still written. Entries that cannot
be parsed are logged and dropped.`,
	RunE: runFetch,
}

// fetchFlagKeys maps viper keys to fetch flag names.
var fetchFlagKeys = map[string]string{
	"max_pages":    "max-pages",
	"output":       "output",
	"format":       "format",
	"page_delay":   "page-delay",
	"timeout":      "timeout",
	"user_agent":   "user-agent",
	"base_url":     "base-url",
	"locale":       "locale",
	"metrics_file": "metrics-file",
	"archive_db":   "archive-db",
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-pages", defaultMaxPages, "maximum number of listing pages to request")
	cmd.Flags().StringP("output", "o", output.DefaultPath, "result document path")
	cmd.Flags().String("format", "", "output format: json or yaml (default: by file extension, else json)")
	cmd.Flags().Duration("page-delay", defaultPageDelay, "pause between page requests")
	cmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	cmd.Flags().String("user-agent", httputil.DefaultUserAgent, "User-Agent header")
	cmd.Flags().String("base-url", scholar.DefaultBaseURL, "listing host origin")
	cmd.Flags().String("locale", scholar.DefaultLocale, "listing locale (hl parameter)")
	cmd.Flags().String("metrics-file", "", "write run counters in Prometheus text format to this file")
	cmd.Flags().String("archive-db", "", "also store the written document in this SQLite archive")
}

func init() {
	addFetchFlags(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}

// fetchConfig builds the run configuration from viper.
func fetchConfig() (types.Config, error) {
	cfg := types.Config{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("timeout"),
				UserAgent: viper.GetString("user_agent"),
				BaseURL:   viper.GetString("base_url"),
			},
			ProfileID: viper.GetString("profile_id"),
			MaxPages:  viper.GetInt("max_pages"),
			Locale:    viper.GetString("locale"),
			PageDelay: viper.GetDuration("page_delay"),
		},
		Output: types.OutputConfig{
			Path:   viper.GetString("output"),
			Format: types.OutputFormat(viper.GetString("format")),
		},
		Archive:     types.ArchiveConfig{DBPath: viper.GetString("archive_db")},
		MetricsFile: viper.GetString("metrics_file"),
	}

	if cfg.Fetch.ProfileID == "" {
		return cfg, fmt.Errorf("profile identifier is empty: set --profile or profile_id")
	}
	if cfg.Fetch.MaxPages <= 0 {
		return cfg, fmt.Errorf("max pages must be positive, got %d", cfg.Fetch.MaxPages)
	}
	switch cfg.Output.Format {
	case "", types.FormatJSON, types.FormatYAML:
	default:
		return cfg, fmt.Errorf("unsupported format %q: use json or yaml", cfg.Output.Format)
	}
	return cfg, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	bindFlags(cmd.Flags(), fetchFlagKeys)

	cfg, err := fetchConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := logging.NewLogger("fetch")
	out := cmd.OutOrStdout()
	m := metrics.New()

	fetcher := scholar.NewFetcher(cfg.Fetch, m, logger)
	parser := scholar.NewParser(fetcher.Config.BaseURL, cfg.Fetch.ProfileID)

	fmt.Fprintf(out, "Fetching publications for profile %s...\n", cfg.Fetch.ProfileID)
	result := scholar.Collect(ctx, fetcher, parser, cfg.Fetch.MaxPages)
	if result.FetchErr != nil {
		logger.Warn().Err(result.FetchErr).Int("collected", len(result.Publications)).
			Msg("pagination ended early, writing what was collected")
	}

	path, err := output.NewWriter(cfg.Output).Write(result.Publications, cfg.Output.Path)
	if err != nil {
		return err
	}
	report.Summary(out, result.Publications, path, report.SummaryLimit)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn().Err(err).Msg("metrics not written")
		}
	}

	if cfg.Archive.DBPath != "" {
		if err := archiveFile(ctx, cfg.Archive, cfg.Fetch.ProfileID, path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Archived to %s\n", cfg.Archive.DBPath)
	}
	return nil
}

// archiveFile stores the document at path as a new archive run.
func archiveFile(ctx context.Context, cfg types.ArchiveConfig, profileID, path string) error {
	doc, err := output.Read(path)
	if err != nil {
		return err
	}

	store, err := archive.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Ingest(ctx, profileID, doc)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", path, err)
	}
	logger := logging.NewLogger("archive")
	logger.Info().Str("run", run.ID).Int("publications", run.TotalPublications).Msg("run archived")
	return nil
}
