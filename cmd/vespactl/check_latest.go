package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vespa-engine/vespacli/internal/release"
	"github.com/vespa-engine/vespacli/internal/version"
)

func newCheckLatestCmd() *cobra.Command {
	var feedToken string

	cmd := &cobra.Command{
		Use:   "check-latest",
		Short: "Compare the pinned version against the upstream release feed",
		Long: `Query the upstream release feed for the newest published Vespa CLI
version and report whether it differs from the version this package
pins. Purely informational: the exit code does not encode the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			opts := []release.Option{release.WithLogger(logger)}
			if feedToken == "" {
				feedToken = os.Getenv("GITHUB_TOKEN")
			}
			if feedToken != "" {
				opts = append(opts, release.WithToken(feedToken))
			}

			latest, err := release.NewClient(opts...).Latest(cmd.Context())
			if err != nil {
				return fmt.Errorf("query release feed: %w", err)
			}

			pinned := version.Current()
			if latest == pinned {
				fmt.Fprintf(cmd.OutOrStdout(), "Up to date: %s\n", pinned)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s (pinned: %s)\n", latest, pinned)
			return nil
		},
	}

	cmd.Flags().StringVar(&feedToken, "token", "", "Bearer token for the release feed (default: $GITHUB_TOKEN)")

	return cmd
}
