package catalog

import (
	"context"
	"fmt"
	"os"

	"shopql/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for seed files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped CSV seed file from disk.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.ProductInput, error) {
	l.logger.Info().Str("file", path).Msg("loading catalogue file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalogue file")
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", path, err)
	}
	defer file.Close()

	rows, err := decode(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalogue file")
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		l.logger.Warn().Str("file", path).Msg("catalogue loading cancelled")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(rows)).
		Msg("catalogue file loaded successfully")

	return rows, nil
}
