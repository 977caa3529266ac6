package content

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	models "coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"
	"coursehub/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fileColumns = `id, name, url, blob_key, course_id::text, parent_kind, parent_id::text,
	uploaded_by, is_featured, average_rating, created_at, updated_at`

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) contentRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanFile(row pgx.Row) (*models.File, error) {
	var f models.File
	var parentKind string
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.URL,
		&f.BlobKey,
		&f.CourseID,
		&parentKind,
		&f.Parent.ID,
		&f.UploadedBy,
		&f.IsFeatured,
		&f.AverageRating,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Parent.Kind = models.NodeKind(parentKind)
	return &f, nil
}

// Create creates a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, url, blob_key, course_id, parent_kind, parent_id, uploaded_by, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.Name,
		file.URL,
		file.BlobKey,
		file.CourseID,
		string(file.Parent.Kind),
		file.Parent.ID,
		file.UploadedBy,
		file.IsFeatured,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("course %s: %w", file.CourseID, domain.ErrNotFound)
		}
		return postgres.StoreError("create file", err)
	}
	return nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate retrieves a file and locks its row
func (r *PostgresFileRepository) GetForUpdate(ctx context.Context, id string) (*models.File, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *PostgresFileRepository) get(ctx context.Context, id, lock string) (*models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 %s`, fileColumns, r.tables.Files, lock)

	executor := postgres.GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.StoreError("get file", err)
	}
	return file, nil
}

// Update writes name, parent and featured flag
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_kind = $2, parent_id = $3, is_featured = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.Name,
		string(file.Parent.Kind),
		file.Parent.ID,
		file.IsFeatured,
		file.ID,
	).Scan(&file.UpdatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
		}
		return postgres.StoreError("update file", err)
	}
	return nil
}

// UpdateRating stores a recomputed average rating
func (r *PostgresFileRepository) UpdateRating(ctx context.Context, id string, average float64) error {
	query := fmt.Sprintf(`UPDATE %s SET average_rating = $1 WHERE id = $2`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, average, id)
	if err != nil {
		return postgres.StoreError("update file rating", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete deletes a file record
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete file", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByCourse retrieves every file of a course in creation order
func (r *PostgresFileRepository) ListByCourse(ctx context.Context, courseID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE course_id = $1
		ORDER BY created_at, id
	`, fileColumns, r.tables.Files)
	return r.list(ctx, "list files", query, courseID)
}

// ListFeatured retrieves featured files in creation order
func (r *PostgresFileRepository) ListFeatured(ctx context.Context, limit int) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE is_featured
		ORDER BY created_at, id
	`, fileColumns, r.tables.Files)
	if limit > 0 {
		query += " LIMIT $1"
		return r.list(ctx, "list featured files", query, limit)
	}
	return r.list(ctx, "list featured files", query)
}

func (r *PostgresFileRepository) list(ctx context.Context, op, query string, args ...any) ([]models.File, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.StoreError(op, err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, postgres.StoreError("scan file", err)
		}
		files = append(files, *file)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError(op, err)
	}

	return files, nil
}
