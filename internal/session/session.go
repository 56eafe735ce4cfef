// Package session holds the daily spend series of one interactive user along
// with the view state derived from it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/dailyspend/internal/model"
	"github.com/cleared-dev/dailyspend/internal/series"
	"github.com/cleared-dev/dailyspend/internal/sheet"
	"github.com/cleared-dev/dailyspend/internal/statement"
)

// ErrUploadInFlight is returned by Load while another Load is running.
var ErrUploadInFlight = errors.New("an upload is already in progress")

// Options configures a Session. Zero values fall back to the defaults.
type Options struct {
	Columns  statement.Columns
	Registry *sheet.Registry
	Logger   *slog.Logger

	// ResetOnError clears the loaded series when an upload fails.
	ResetOnError bool
}

// Session owns the canonical series. The series is replaced as a whole on
// every successful upload and never modified in place.
type Session struct {
	opts    Options
	loading atomic.Bool

	mu     sync.RWMutex
	source string
	data   model.Series
	report statement.Report
	rng    model.DateRange
	sorter series.Sorter
	scale  series.Scale
}

// New creates an empty session.
func New(opts Options) *Session {
	if opts.Columns == (statement.Columns{}) {
		opts.Columns = statement.DefaultColumns()
	}
	if opts.Registry == nil {
		opts.Registry = sheet.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{opts: opts, scale: series.NewScale(nil)}
}

// Load reads a statement file from r, decodes it by the extension of name and
// replaces the session series with the result. Reading r is the only step
// that waits; a second Load during that time fails with ErrUploadInFlight.
func (s *Session) Load(ctx context.Context, name string, r io.Reader) (statement.Result, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return statement.Result{}, ErrUploadInFlight
	}
	defer s.loading.Store(false)

	logger := s.opts.Logger.With("upload_id", uuid.NewString(), "file", name)

	res, err := s.load(ctx, name, r, logger)
	if err != nil {
		logger.Warn("upload failed", "error", err)
		if s.opts.ResetOnError {
			s.replace("", nil, statement.Report{})
		}
		return statement.Result{}, err
	}

	s.replace(name, res.Series, res.Report)
	logger.Info("statement loaded",
		"header_row", res.HeaderIndex,
		"records", res.Report.Records,
		"skipped", res.Report.Skipped(),
		"days", res.Report.Days,
	)
	return res, nil
}

func (s *Session) load(ctx context.Context, name string, r io.Reader, logger *slog.Logger) (statement.Result, error) {
	dec := s.opts.Registry.ForFile(name)
	if dec == nil {
		return statement.Result{}, fmt.Errorf("%s: %w", name, statement.ErrDecoderUnavailable)
	}

	data, err := readAll(ctx, r)
	if err != nil {
		return statement.Result{}, fmt.Errorf("%w: %w", statement.ErrFileRead, err)
	}
	logger.Debug("read statement", "bytes", len(data), "format", dec.Format())

	rows, err := dec.Decode(data)
	if err != nil {
		return statement.Result{}, fmt.Errorf("%w: %w", statement.ErrFileRead, err)
	}

	return statement.Process(rows, s.opts.Columns, logger)
}

func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// A cancelled upload must not replace the series.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Session) replace(source string, data model.Series, rep statement.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
	s.data = data
	s.report = rep
	s.scale = series.NewScale(data)
}

// Loading reports whether an upload is running.
func (s *Session) Loading() bool {
	return s.loading.Load()
}

// Source returns the name of the loaded file, or "" when nothing is loaded.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Series returns a copy of the canonical series.
func (s *Session) Series() model.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Report returns the row counts of the last successful upload.
func (s *Session) Report() statement.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// SetRange sets the date range of the view. Nil bounds are open.
func (s *Session) SetRange(r model.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = r
}

// Range returns the current date range.
func (s *Session) Range() model.DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rng
}

// SortBy toggles the view order on key and returns the new order.
func (s *Session) SortBy(key model.SortKey) series.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorter.Toggle(key)
}

// Order returns the current view order.
func (s *Session) Order() series.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorter.Order()
}

// View returns the series filtered by the current range in the current order.
func (s *Session) View() model.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return series.View(s.data, s.rng, s.sorter.Order())
}

// Stats summarizes the current view.
func (s *Session) Stats() (series.Statistics, bool) {
	return series.Stats(s.View())
}

// Export renders the current view as CSV.
func (s *Session) Export() (string, error) {
	return series.Export(s.View())
}

// Scale returns the chart value range.
func (s *Session) Scale() series.Scale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

// SetScaleMin moves the lower end of the chart range.
func (s *Session) SetScaleMin(v decimal.Decimal) series.Scale {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = s.scale.WithMin(v)
	return s.scale
}

// SetScaleMax moves the upper end of the chart range.
func (s *Session) SetScaleMax(v decimal.Decimal) series.Scale {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = s.scale.WithMax(v)
	return s.scale
}
