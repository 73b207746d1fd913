package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/use-agent/summarizer/extract"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	var markdown, extracted bool

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a page without a browser",
		Long: `Fetch a page over plain HTTP and print the text of its paragraphs.
With --markdown the page is converted to Markdown instead, using the hosted
converter when FIRECRAWL_API_KEY is set and the local one otherwise.
With --extract the site strategy runs over the unrendered HTML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			var text string
			switch {
			case markdown:
				text, err = svc.Converter.Convert(cmd.Context(), args[0])
			case extracted:
				var res extract.Result
				res, err = svc.Fetcher.Extract(cmd.Context(), args[0])
				text = res.Render(args[0])
			default:
				text, err = svc.Fetcher.Fetch(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Convert the page to Markdown")
	cmd.Flags().BoolVar(&extracted, "extract", false, "Run the site extraction strategy without a browser")
	cmd.MarkFlagsMutuallyExclusive("markdown", "extract")
	return cmd
}
