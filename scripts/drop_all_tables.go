package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Drops every coursehub table for one environment prefix.
// Usage: DATABASE_URL=... ENVIRONMENT=dev go run scripts/drop_all_tables.go
func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	if env == "prod" {
		log.Fatal("refusing to drop production tables")
	}

	prefix := os.Getenv("TABLE_PREFIX")
	if prefix == "" {
		prefix = env + "_"
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	// Children before the tables they reference
	for _, table := range []string{"favorites", "reviews", "files", "folders", "courses"} {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s%s CASCADE", prefix, table)); err != nil {
			log.Fatalf("Failed to drop %s%s: %v", prefix, table, err)
		}
	}

	fmt.Printf("All tables dropped successfully (prefix: %s)\n", prefix)
}
