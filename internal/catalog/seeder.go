package catalog

import (
	"context"
	"fmt"
	"sync"

	"shopql/internal/model"

	"github.com/rs/zerolog"
)

// Seeder fills an empty catalogue from seed files.
type Seeder struct {
	loader   Loader
	products ProductStore
	logger   zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(loader Loader, products ProductStore, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		products: products,
		logger:   logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads every file and creates its products, but only when the catalogue
// is empty. Files are read concurrently; products are created in path order,
// then row order, all in one batch. Returns the number of products created.
func (s *Seeder) Seed(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	existing, err := s.products.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check catalogue: %w", err)
	}
	if existing > 0 {
		s.logger.Info().
			Int("existing_products", existing).
			Msg("catalogue already populated, skipping seed")
		return 0, nil
	}

	files, err := s.loadAll(ctx, paths)
	if err != nil {
		return 0, err
	}

	var rows []model.ProductInput
	for _, fileRows := range files {
		rows = append(rows, fileRows...)
	}

	// All rows go in one transaction: a failed seed leaves the catalogue empty.
	created, err := s.products.CreateBatch(ctx, rows)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("row_count", len(rows)).
			Msg("failed to store seeded products")
		return 0, fmt.Errorf("failed to seed catalogue: %w", err)
	}

	s.logger.Info().
		Int("file_count", len(paths)).
		Int("products_created", len(created)).
		Msg("catalogue seeded")

	return len(created), nil
}

// loadAll loads every path concurrently and returns the rows indexed by path position.
func (s *Seeder) loadAll(ctx context.Context, paths []string) ([][]model.ProductInput, error) {
	type loadResult struct {
		index int
		rows  []model.ProductInput
		err   error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			rows, err := s.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, rows: rows, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	files := make([][]model.ProductInput, len(paths))
	errs := make([]error, len(paths))
	for result := range resultChan {
		files[result.index] = result.rows
		errs[result.index] = result.err
	}

	// Report the first failing file in path order.
	for i, err := range errs {
		if err != nil {
			s.logger.Error().Err(err).Str("file", paths[i]).Msg("failed to load catalogue file")
			return nil, fmt.Errorf("failed to load catalogue file %s: %w", paths[i], err)
		}
	}

	return files, nil
}
