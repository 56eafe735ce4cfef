package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/dailyspend/internal/config"
	"github.com/cleared-dev/dailyspend/internal/logging"
	"github.com/cleared-dev/dailyspend/internal/model"
	"github.com/cleared-dev/dailyspend/internal/session"
	"github.com/cleared-dev/dailyspend/internal/statement"
)

// loadConfig resolves the config and installs the logger it describes. Logs
// go to logOut so they never mix with report output.
func loadConfig(path string, logOut io.Writer) (*config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	logging.Setup(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		JSON:   cfg.Logging.JSON,
		Output: logOut,
	})
	return cfg, nil
}

// viewFlags are the range and sort flags shared by report and export.
type viewFlags struct {
	from  string
	to    string
	sorts []string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first date to include (DD-MM-YYYY)")
	cmd.Flags().StringVar(&f.to, "to", "", "last date to include (DD-MM-YYYY)")
	cmd.Flags().StringArrayVar(&f.sorts, "sort", nil, "sort by date or amount; repeat to flip direction")
}

// apply sets the session range and replays the sort requests in order.
func (f viewFlags) apply(s *session.Session) error {
	var r model.DateRange
	if f.from != "" {
		start, err := parseDay(f.from)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		r.Start = &start
	}
	if f.to != "" {
		end, err := parseDay(f.to)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		r.End = &end
	}
	s.SetRange(r)

	for _, v := range f.sorts {
		key, ok := model.ParseSortKey(v)
		if !ok {
			return fmt.Errorf("--sort: unknown key %q (want date or amount)", v)
		}
		s.SortBy(key)
	}
	return nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(model.DisplayDateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD-MM-YYYY", s)
	}
	return model.CalendarDate(t), nil
}

// openStatement loads path into a new session built from cfg.
func openStatement(ctx context.Context, cfg *config.Config, path string) (*session.Session, statement.Result, error) {
	s := session.New(session.Options{
		Columns: statement.Columns{
			Date:       cfg.Columns.Date,
			Withdrawal: cfg.Columns.Withdrawal,
		},
		Logger:       slog.Default(),
		ResetOnError: cfg.Session.ResetOnError,
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, statement.Result{}, fmt.Errorf("%w: %w", statement.ErrFileRead, err)
	}
	defer f.Close()

	res, err := s.Load(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, statement.Result{}, err
	}
	return s, res, nil
}
