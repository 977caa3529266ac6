package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"coursehub/internal/blobstore"
	"coursehub/internal/config"
	"coursehub/internal/repository/postgres"
	postgresContent "coursehub/internal/repository/postgres/content"
	authService "coursehub/internal/service/auth"
	contentService "coursehub/internal/service/content"
	"coursehub/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed courses")
	fixturePath := flag.String("file", "", "YAML course fixture (defaults to the embedded sample)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run -drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		logger.Info("dropping all tables", "table_prefix", cfg.TablePrefix)
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	logger.Info("schema ready", "table_prefix", cfg.TablePrefix)

	if *schemaOnly {
		return
	}

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	repos := &contentService.Repositories{
		Courses:   postgresContent.NewCourseRepository(repoConfig),
		Folders:   postgresContent.NewFolderRepository(repoConfig),
		Files:     postgresContent.NewFileRepository(repoConfig),
		Reviews:   postgresContent.NewReviewRepository(repoConfig),
		Favorites: postgresContent.NewFavoriteRepository(repoConfig),
		Tx:        postgres.NewTransactionManager(pool, logger),
	}

	blobs, err := blobstore.NewLocalStore(cfg.BlobDir, cfg.BlobBaseURL, logger)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	authorizer := authService.NewOwnerBasedAuthorizer(repos.Courses, repos.Folders, repos.Files)
	services := contentService.SetupServices(repos, blobs, authorizer, cfg.MaxUploadBytes, logger)

	result, err := seed.NewSeeder(services, logger).Run(ctx, fixture)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	logger.Info("seeding complete",
		"courses", result.Courses,
		"folders", result.Folders,
		"files", result.Files,
		"reviews", result.Reviews,
	)
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}
