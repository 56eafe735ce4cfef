package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dailyspend/internal/sheet"
)

func newScanCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [directory]",
		Short: "List statement files the report can read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			dir := cfg.Import.Dir
			if len(args) > 0 {
				dir = args[0]
			}
			return runScan(cmd.OutOrStdout(), sheet.DefaultRegistry(), dir)
		},
	}
}

func runScan(out io.Writer, reg *sheet.Registry, dir string) error {
	files, err := reg.Scan(dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintf(out, "No statements found in %s\n", dir)
		return nil
	}

	for _, f := range files {
		fmt.Fprintf(out, "%-40s %-5s %8d bytes\n", f.Name, f.Format, f.Size)
	}
	return nil
}
