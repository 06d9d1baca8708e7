package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopql/internal/catalog"
	"shopql/internal/config"
	"shopql/internal/database"
	"shopql/internal/graph"
	"shopql/internal/handler"
	"shopql/internal/middleware"
	"shopql/internal/repository"
	"shopql/internal/router"
	"shopql/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopql API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, cfg.Cart.LookupConcurrency, logger)

	if len(cfg.Catalog.SeedFiles) > 0 {
		seeder := catalog.NewSeeder(newCatalogLoader(ctx, cfg, logger), productService, logger)
		if _, err := seeder.Seed(ctx, cfg.Catalog.SeedFiles); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	// Initialize GraphQL schema and endpoint
	resolver := graph.NewResolver(productService, cartService, logger)
	schema, err := graph.NewSchema(resolver, graph.SchemaConfig{
		MaxDepth:       cfg.GraphQL.MaxDepth,
		MaxParallelism: cfg.GraphQL.MaxParallelism,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize GraphQL schema: %w", err)
	}
	graphqlHandler := handler.NewGraphQLHandler(schema, cfg.GraphQL.GraphiQL, logger)

	mux := router.New(graphqlHandler, router.Options{
		GraphQLPath: cfg.GraphQL.Path,
		CORS: middleware.CORSOptions{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowCredentials: cfg.CORS.AllowCredentials,
		},
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("graphql_path", cfg.GraphQL.Path).
			Bool("graphiql", cfg.GraphQL.GraphiQL).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newCatalogLoader returns a loader that tries S3 when enabled and always
// falls back to the local file system.
func newCatalogLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) catalog.Loader {
	fileLoader := catalog.NewFileLoader(logger)

	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for catalogue files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
}
