package postgres

import (
	"context"
	"fmt"

	"coursehub/internal/domain/repositories"
)

// EnsureSchema creates the tables and indexes if they don't exist.
// Child lists are ordered uuid arrays on the parent row; the parent pointer
// lives on the child as (parent_kind, parent_id).
func EnsureSchema(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Courses + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			average_rating NUMERIC(2,1) NOT NULL DEFAULT 0,
			folder_ids UUID[] NOT NULL DEFAULT '{}',
			file_ids UUID[] NOT NULL DEFAULT '{}',
			admin_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			course_id UUID NOT NULL REFERENCES ` + tables.Courses + `(id),
			parent_kind TEXT NOT NULL CHECK (parent_kind IN ('course', 'folder')),
			parent_id UUID NOT NULL,
			subfolder_ids UUID[] NOT NULL DEFAULT '{}',
			file_ids UUID[] NOT NULL DEFAULT '{}',
			uploaded_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Files + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			blob_key TEXT NOT NULL DEFAULT '',
			course_id UUID NOT NULL REFERENCES ` + tables.Courses + `(id),
			parent_kind TEXT NOT NULL CHECK (parent_kind IN ('course', 'folder')),
			parent_id UUID NOT NULL,
			uploaded_by TEXT NOT NULL,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			average_rating NUMERIC(2,1) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Reviews + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			target_kind TEXT NOT NULL CHECK (target_kind IN ('course', 'file')),
			target_id UUID NOT NULL,
			user_id TEXT NOT NULL,
			rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (target_kind, target_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Favorites + ` (
			user_id TEXT NOT NULL,
			resource_kind TEXT NOT NULL CHECK (resource_kind IN ('course', 'file')),
			resource_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, resource_kind, resource_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_` + tables.Folders + `_course ON ` + tables.Folders + `(course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Files + `_course ON ` + tables.Files + `(course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Files + `_featured ON ` + tables.Files + `(created_at) WHERE is_featured`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Courses + `_featured ON ` + tables.Courses + `(created_at) WHERE is_featured`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Reviews + `_target ON ` + tables.Reviews + `(target_kind, target_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Favorites + `_resource ON ` + tables.Favorites + `(resource_kind, resource_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every table of the prefix
func DropSchema(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	for _, table := range tables.All() {
		if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
