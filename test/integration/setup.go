package integration

import (
	"context"
	"testing"
	"time"

	"shopql/internal/config"
	"shopql/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedProducts inserts the given products in order and returns their ids.
func SeedProducts(t *testing.T, pool *pgxpool.Pool, names ...string) []int64 {
	t.Helper()

	ctx := context.Background()

	ids := make([]int64, 0, len(names))
	for i, name := range names {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO products (name, price, image) VALUES ($1, $2, $3) RETURNING id",
			name, float64(i+1)*10, name+".png",
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", name, err)
		}
		ids = append(ids, id)
	}

	return ids
}

// CleanupDB removes all rows and resets the id sequences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE cart_items, products RESTART IDENTITY")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}
