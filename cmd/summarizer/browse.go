package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/use-agent/summarizer/scraper"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	var (
		query      string
		maxResults int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "browse [url]",
		Short: "Render a page, extract its content and write the artifacts",
		Long: `Render a page in the headless browser, dismiss any consent banner, extract
content with the strategy chosen for the site and write the content and a
full-page screenshot to the artifact directory.

Pass --query instead of a URL to browse the top search result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (query == "") {
				return errors.New("provide exactly one of a URL argument or --query")
			}

			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			var res *scraper.BrowseResult
			if query != "" {
				res, err = svc.Scraper.SearchAndBrowse(cmd.Context(), query, maxResults)
			} else {
				res, err = svc.Scraper.Browse(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Response())
			}
			fmt.Fprintln(out, res.Extraction.Render(res.URL))
			fmt.Fprintf(out, "\ncontent:    %s\nscreenshot: %s\n", res.Artifact.ContentPath, res.Artifact.ScreenshotPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query whose top result is browsed")
	cmd.Flags().IntVar(&maxResults, "max-results", 5, "Search results to consider with --query")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full response as JSON")

	return cmd
}
