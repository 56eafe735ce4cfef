package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dailyspend/internal/config"
	"github.com/cleared-dev/dailyspend/internal/series"
)

func newExportCommand(configPath *string) *cobra.Command {
	var view viewFlags
	var output string

	cmd := &cobra.Command{
		Use:   "export <statement>",
		Short: "Write the daily spends of a statement as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], view, output)
		},
	}

	view.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func runExport(ctx context.Context, out io.Writer, cfg *config.Config, path string, view viewFlags, output string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, _, err := openStatement(ctx, cfg, path)
	if err != nil {
		return err
	}
	if err := view.apply(s); err != nil {
		return err
	}
	rows := s.View()

	if output == "" {
		if err := series.WriteExport(out, rows); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := series.WriteExport(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}

	fmt.Fprintf(out, "Wrote %d days to %s\n", len(rows), output)
	return nil
}
