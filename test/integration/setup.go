package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"snapshop/internal/database"
	"snapshop/internal/handler"
	"snapshop/internal/model"
	"snapshop/internal/repository"
	"snapshop/internal/router"
	"snapshop/internal/service"
	"snapshop/internal/validation"

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
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// document collections.
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
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// NewTestServer wires the full HTTP stack against the test database.
func NewTestServer(t *testing.T, testDB *TestDB, staticDir string) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	validate := validation.New()

	productRepo := repository.NewProductRepository(testDB.Pool, validate, repository.NewID, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, validate, repository.NewID, logger)

	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)

	return router.New(
		handler.NewProductHandler(productService, logger),
		handler.NewOrderHandler(orderService, logger),
		handler.NewHealthHandler(testDB.Pool, logger),
		staticDir,
		logger,
	)
}

// TestProduct returns a valid product carrying the given tag titles.
func TestProduct(likes int, tags ...string) model.Product {
	p := model.Product{
		Likes: &likes,
		URLs: model.ProductURLs{
			Regular: "https://images.example.com/regular.jpg",
			Small:   "https://images.example.com/small.jpg",
			Thumb:   "https://images.example.com/thumb.jpg",
		},
		Links: model.ProductLinks{
			Self: "https://api.example.com/photos/1",
			HTML: "https://example.com/photos/1",
		},
		User: model.ProductUser{ID: "u1", FirstName: "Ada", Username: "ada"},
		Tags: []model.Tag{},
	}
	for _, tag := range tags {
		p.Tags = append(p.Tags, model.Tag{Title: tag})
	}
	return p
}

// CleanupDB removes all documents from the collections.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	for _, table := range []string{"orders", "products"} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
