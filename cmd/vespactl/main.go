// Command vespactl is the maintenance tool the release automation uses
// to keep the package in lockstep with upstream Vespa CLI releases: it
// downloads and verifies the prebuilt binaries for every supported
// platform, checks the release feed for newer versions, and rewrites
// the pinned version file.
//
// End users never run vespactl; they run the vespa launcher shim.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var logLevel string

func newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "vespactl",
		Level: hclog.LevelFromString(logLevel),
	})
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vespactl",
		Short:         "Maintain the bundled Vespa CLI binaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newCheckLatestCmd())
	rootCmd.AddCommand(newSetVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
