// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-fetch/internal/archive"
	"github.com/pdiddy/scholar-fetch/internal/output"
	"github.com/pdiddy/scholar-fetch/internal/report"
	"github.com/pdiddy/scholar-fetch/pkg/types"
)

const defaultArchiveDB = "scholar-archive.db"

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep written result documents in a local SQLite archive",
	Long: `Archive stores result documents as runs in a SQLite database so that
earlier fetches can be listed and searched. Archiving never changes what the
next fetch writes.`,
}

// --- ingest subcommand ---

var archiveIngestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Store a written result document as a new run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArchiveIngest,
}

func runArchiveIngest(cmd *cobra.Command, args []string) error {
	path := output.DefaultPath
	if len(args) > 0 {
		path = args[0]
	}

	if err := archiveFile(context.Background(), archiveConfig(cmd), viper.GetString("profile_id"), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", path)
	return nil
}

// --- runs subcommand ---

var archiveRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived runs, newest first",
	RunE:  runArchiveRuns,
}

func runArchiveRuns(cmd *cobra.Command, args []string) error {
	store, err := archive.NewStore(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	all, _ := cmd.Flags().GetBool("all-profiles")
	profile := viper.GetString("profile_id")
	if all {
		profile = ""
	}
	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := store.Runs(context.Background(), profile, limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs archived.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Run", "Profile", "Last updated", "Publications"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.ID, r.ProfileID, r.LastUpdated, r.TotalPublications})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

// --- search subcommand ---

var archiveSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search the latest archived run of each profile",
	Long: `Search matches text against title, authors and venue of the publications
in the most recent run of every archived profile, most cited first.`,
	RunE: runArchiveSearch,
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	store, err := archive.NewStore(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	year, _ := cmd.Flags().GetString("year")
	limit, _ := cmd.Flags().GetInt("limit")
	profile, _ := cmd.Flags().GetString("only-profile")

	results, err := store.Search(context.Background(), archive.SearchOptions{
		Text:       strings.Join(args, " "),
		ProfileID:  profile,
		Year:       year,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}

	pubs := make([]types.Publication, len(results))
	for i, r := range results {
		pubs[i] = r.Publication
	}
	report.Table(cmd.OutOrStdout(), pubs)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d results\n", len(results))
	return nil
}

// --- shared helpers ---

func archiveConfig(cmd *cobra.Command) types.ArchiveConfig {
	db := viper.GetString("archive_db")
	if f := cmd.Flags().Lookup("db"); f != nil && f.Changed {
		db = f.Value.String()
	}
	if db == "" {
		db = defaultArchiveDB
	}
	return types.ArchiveConfig{DBPath: db}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	archiveCmd.PersistentFlags().String("db", defaultArchiveDB, "archive database path (or archive_db in config)")

	archiveRunsCmd.Flags().Bool("all-profiles", false, "list runs of every profile")
	archiveRunsCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default 20)")
	archiveRunsCmd.Flags().Bool("json", false, "output runs as JSON")

	archiveSearchCmd.Flags().String("year", "", "filter by publication year")
	archiveSearchCmd.Flags().String("only-profile", "", "restrict to one profile")
	archiveSearchCmd.Flags().Int("limit", 0, "maximum results (0 = default 20)")
	archiveSearchCmd.Flags().Bool("json", false, "output results as JSON")

	archiveCmd.AddCommand(archiveIngestCmd)
	archiveCmd.AddCommand(archiveRunsCmd)
	archiveCmd.AddCommand(archiveSearchCmd)

	rootCmd.AddCommand(archiveCmd)
}
