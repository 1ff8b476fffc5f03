package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vespa-engine/vespacli/internal/acquire"
	"github.com/vespa-engine/vespacli/internal/platform"
	"github.com/vespa-engine/vespacli/internal/release"
	"github.com/vespa-engine/vespacli/internal/version"
)

func newDownloadCmd() *cobra.Command {
	var (
		ver        string
		root       string
		osFilter   string
		archFilter string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download and install the Vespa CLI binaries into the package tree",
		Long: `Download the prebuilt Vespa CLI binaries for every supported platform,
verify each artifact against the upstream checksum file, and install the
executables at their per-platform paths inside the package tree.

By default the latest published version is fetched; --version pins a
specific release, and --os/--arch restrict the run to one platform.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			if ver == "" {
				latest, err := release.NewClient(release.WithLogger(logger)).Latest(ctx)
				if err != nil {
					return fmt.Errorf("resolve latest version: %w", err)
				}
				ver = latest
			}
			if !version.IsValid(ver) {
				return fmt.Errorf("invalid version %q", ver)
			}

			acquirer := acquire.New(root, acquire.WithLogger(logger))

			if osFilter != "" || archFilter != "" {
				id, err := platform.Resolve(osFilter, archFilter)
				if err != nil {
					return err
				}
				path, err := acquirer.Acquire(ctx, ver, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Installed %s %s at %s\n", id, ver, path)
				return nil
			}

			paths, err := acquirer.AcquireAll(ctx, ver)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ver, "version", "", "Release version to download (default: latest from the release feed)")
	cmd.Flags().StringVar(&root, "root", ".", "Package tree root to install into")
	cmd.Flags().StringVar(&osFilter, "os", "", "Restrict to one operating system (requires --arch)")
	cmd.Flags().StringVar(&archFilter, "arch", "", "Restrict to one architecture (requires --os)")
	cmd.MarkFlagsRequiredTogether("os", "arch")

	return cmd
}
