package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"coursehub/internal/domain/repositories"
)

// Pool sizing
const (
	MaxConns = 25
	MinConns = 5
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Courses   string
	Folders   string
	Files     string
	Reviews   string
	Favorites string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Courses:   fmt.Sprintf("%scourses", prefix),
		Folders:   fmt.Sprintf("%sfolders", prefix),
		Files:     fmt.Sprintf("%sfiles", prefix),
		Reviews:   fmt.Sprintf("%sreviews", prefix),
		Favorites: fmt.Sprintf("%sfavorites", prefix),
	}
}

// All returns every table, children before the tables they reference
func (t *TableNames) All() []string {
	return []string{t.Favorites, t.Reviews, t.Files, t.Folders, t.Courses}
}

// CreateConnectionPool creates a pgx pool and pings the database.
//
// Port 6543 is the PgBouncer transaction pooler on managed Postgres. It does
// not support prepared statements, so the pool switches to
// QueryExecModeCacheDescribe there unless the connection string already sets
// default_query_exec_mode. Table names are interpolated before statements are
// prepared, so each prefix gets its own statement cache entries.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = MaxConns
	config.MinConns = MinConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction in ctx or the pool
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	return repositories.Executor(ctx, pool)
}
