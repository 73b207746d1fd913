package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the ranked result URLs for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			urls, err := svc.Resolver.Resolve(cmd.Context(), strings.Join(args, " "), maxResults)
			if err != nil {
				return err
			}
			for i, u := range urls {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, u)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 5, "Maximum number of results")
	return cmd
}
