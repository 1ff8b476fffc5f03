package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vespa-engine/vespacli/internal/version"
)

const defaultVersionFile = "internal/version/version.txt"

func newSetVersionCmd() *cobra.Command {
	var versionFile string

	cmd := &cobra.Command{
		Use:   "set-version <version>",
		Short: "Rewrite the pinned version file",
		Long: `Rewrite the version file that pins which Vespa CLI release this
package tracks. Run by release automation after check-latest finds a
newer upstream release; the new pin takes effect on the next build.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := version.Write(versionFile, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pinned version %s in %s\n", args[0], versionFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&versionFile, "file", defaultVersionFile, "Path to the version file")

	return cmd
}
