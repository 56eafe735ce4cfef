package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/dailyspend/internal/config"
	"github.com/cleared-dev/dailyspend/internal/display"
)

func newReportCommand(configPath *string) *cobra.Command {
	var view viewFlags
	var scaleMin, scaleMax string

	cmd := &cobra.Command{
		Use:   "report <statement>",
		Short: "Print daily spends, statistics and chart scale for a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], view, scaleMin, scaleMax)
		},
	}

	view.register(cmd)
	cmd.Flags().StringVar(&scaleMin, "scale-min", "", "lower end of the chart scale")
	cmd.Flags().StringVar(&scaleMax, "scale-max", "", "upper end of the chart scale")

	return cmd
}

func runReport(ctx context.Context, out io.Writer, cfg *config.Config, path string, view viewFlags, scaleMin, scaleMax string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, res, err := openStatement(ctx, cfg, path)
	if err != nil {
		return err
	}
	if err := view.apply(s); err != nil {
		return err
	}

	if scaleMax != "" {
		v, err := decimal.NewFromString(scaleMax)
		if err != nil {
			return fmt.Errorf("--scale-max: invalid amount %q", scaleMax)
		}
		s.SetScaleMax(v)
	}
	if scaleMin != "" {
		v, err := decimal.NewFromString(scaleMin)
		if err != nil {
			return fmt.Errorf("--scale-min: invalid amount %q", scaleMin)
		}
		s.SetScaleMin(v)
	}

	fmt.Fprintf(out, "%s: %d records, %d skipped, header at row %d\n\n",
		s.Source(), res.Report.Records, res.Report.Skipped(), res.HeaderIndex+1)

	return display.NewFormatter(cfg.Display.Currency).Report(out, s.View(), s.Scale())
}
