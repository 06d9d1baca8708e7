// Package graph exposes the catalogue and cart services through a GraphQL schema.
package graph

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

//go:embed schema.graphql
var schemaSDL string

// SchemaConfig holds execution limits for the schema.
type SchemaConfig struct {
	MaxDepth       int
	MaxParallelism int
}

// NewSchema parses the schema and binds it to the resolver.
func NewSchema(resolver *Resolver, cfg SchemaConfig, logger zerolog.Logger) (*graphql.Schema, error) {
	opts := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{logger: logger.With().Str("component", "graphql").Logger()}),
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(cfg.MaxDepth))
	}
	if cfg.MaxParallelism > 0 {
		opts = append(opts, graphql.MaxParallelism(cfg.MaxParallelism))
	}

	schema, err := graphql.ParseSchema(schemaSDL, resolver, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}

	return schema, nil
}

// panicLogger routes resolver panics to zerolog, preferring the request-scoped logger.
type panicLogger struct {
	logger zerolog.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &l.logger
	}
	logger.Error().Interface("panic", value).Msg("panic recovered in resolver")
}
