package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/dailyspend/internal/buildinfo"
	"github.com/cleared-dev/dailyspend/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "dailyspend",
		Short:   "Daily spend reports from bank statements",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newScanCommand(&configPath))
	rootCmd.AddCommand(newReportCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))

	return rootCmd
}
