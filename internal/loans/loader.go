package loans

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Loader produces a normalized dataset from a source path
type Loader interface {
	Load(ctx context.Context, path string) (*Dataset, error)
}

// FileLoader reads loan books from the local file system
type FileLoader struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewFileLoader creates a file loader
func NewFileLoader(logger *slog.Logger) *FileLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLoader{
		logger: logger.With(slog.String("component", "loan_loader")),
		now:    time.Now,
	}
}

// Load reads and normalizes the loan book at path
func (l *FileLoader) Load(ctx context.Context, path string) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}

	start := l.now()
	table, err := ReadTable(path)
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to read loan source",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	norm, err := Normalize(table)
	if err != nil {
		l.logger.ErrorContext(ctx, "loan source rejected",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}

	if len(norm.DerivedColumns) > 0 {
		l.logger.InfoContext(ctx, "synthesized missing amount columns",
			slog.String("path", path),
			slog.Any("columns", norm.DerivedColumns))
	}
	if norm.CoercedCells > 0 {
		l.logger.DebugContext(ctx, "coerced unparsable cells",
			slog.String("path", path),
			slog.Int("cells", norm.CoercedCells))
	}

	ds := &Dataset{
		Source:         path,
		Sheet:          table.Sheet,
		ModTime:        info.ModTime(),
		LoadedAt:       l.now(),
		Records:        norm.Records,
		DerivedColumns: norm.DerivedColumns,
		CoercedCells:   norm.CoercedCells,
	}

	l.logger.InfoContext(ctx, "loaded loan source",
		slog.String("path", path),
		slog.String("sheet", table.Sheet),
		slog.Int("records", len(ds.Records)),
		slog.Duration("duration", l.now().Sub(start)))

	return ds, nil
}
