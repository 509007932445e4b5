// Command vectoradmin runs the admin console backend for a Weaviate cluster
// and ships a few operator subcommands for quick terminal inspection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vantaworks/vectoradmin/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "vectoradmin",
	Short:        "Admin console backend for a Weaviate cluster",
	Version:      fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, collectionsCmd, backupsCmd, statusCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
