package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"coursehub/internal/auth"
	"coursehub/internal/blobstore"
	"coursehub/internal/config"
	"coursehub/internal/handler"
	"coursehub/internal/middleware"
	"coursehub/internal/repository/memory"
	"coursehub/internal/repository/postgres"
	postgresContent "coursehub/internal/repository/postgres/content"
	authService "coursehub/internal/service/auth"
	contentService "coursehub/internal/service/content"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
		"table_prefix", cfg.TablePrefix,
	)

	ctx := context.Background()

	repos, cleanup, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup repositories: %v", err)
	}
	defer cleanup()

	jwtVerifier, err := setupVerifier(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	if jwtVerifier != nil {
		defer jwtVerifier.Close()
	} else {
		logger.Warn("no JWT_SECRET or JWKS_URL configured, all requests are anonymous")
	}

	blobs, err := blobstore.NewLocalStore(cfg.BlobDir, cfg.BlobBaseURL, logger)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	authorizer := authService.NewOwnerBasedAuthorizer(repos.Courses, repos.Folders, repos.Files)
	services := contentService.SetupServices(repos, blobs, authorizer, cfg.MaxUploadBytes, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, services, cfg.MaxUploadBytes, logger)

	// Uploaded documents are served straight from the blob directory
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(blobs.Dir()))))

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Timeout → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier, logger)(h)
	h = middleware.Timeout(cfg.RequestTimeout)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second, // uploads
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRepositories builds the repository set for the configured backend
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*contentService.Repositories, func(), error) {
	if cfg.StorageBackend == "memory" {
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &contentService.Repositories{
			Courses:   memory.NewCourseRepository(store),
			Folders:   memory.NewFolderRepository(store),
			Files:     memory.NewFileRepository(store),
			Reviews:   memory.NewReviewRepository(store),
			Favorites: memory.NewFavoriteRepository(store),
			Tx:        memory.NewTransactionManager(store),
		}, func() {}, nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("schema ensured", "table_prefix", cfg.TablePrefix)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	return &contentService.Repositories{
		Courses:   postgresContent.NewCourseRepository(repoConfig),
		Folders:   postgresContent.NewFolderRepository(repoConfig),
		Files:     postgresContent.NewFileRepository(repoConfig),
		Reviews:   postgresContent.NewReviewRepository(repoConfig),
		Favorites: postgresContent.NewFavoriteRepository(repoConfig),
		Tx:        postgres.NewTransactionManager(pool, logger),
	}, pool.Close, nil
}

// setupVerifier prefers JWKS over a shared secret; nil when neither is set
func setupVerifier(cfg *config.Config, logger *slog.Logger) (auth.JWTVerifier, error) {
	switch {
	case cfg.JWKSURL != "":
		return auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	case cfg.JWTSecret != "":
		return auth.NewHMACVerifier(cfg.JWTSecret, logger)
	default:
		return nil, nil
	}
}
