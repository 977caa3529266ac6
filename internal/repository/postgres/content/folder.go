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

const folderColumns = `id, name, course_id::text, parent_kind, parent_id::text,
	subfolder_ids::text[], file_ids::text[], uploaded_by, created_at, updated_at`

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) contentRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var f models.Folder
	var parentKind string
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.CourseID,
		&parentKind,
		&f.Parent.ID,
		&f.SubfolderIDs,
		&f.FileIDs,
		&f.UploadedBy,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Parent.Kind = models.NodeKind(parentKind)
	return &f, nil
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, course_id, parent_kind, parent_id, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.CourseID,
		string(folder.Parent.Kind),
		folder.Parent.ID,
		folder.UploadedBy,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("course %s: %w", folder.CourseID, domain.ErrNotFound)
		}
		return postgres.StoreError("create folder", err)
	}

	folder.SubfolderIDs = []string{}
	folder.FileIDs = []string{}
	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate retrieves a folder and locks its row
func (r *PostgresFolderRepository) GetForUpdate(ctx context.Context, id string) (*models.Folder, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *PostgresFolderRepository) get(ctx context.Context, id, lock string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 %s`, folderColumns, r.tables.Folders, lock)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.StoreError("get folder", err)
	}
	return folder, nil
}

// Update writes name and parent
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_kind = $2, parent_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		string(folder.Parent.Kind),
		folder.Parent.ID,
		folder.ID,
	).Scan(&folder.UpdatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
		}
		return postgres.StoreError("update folder", err)
	}
	return nil
}

// AddChild appends a child id unless the list already holds it
func (r *PostgresFolderRepository) AddChild(ctx context.Context, folderID string, child models.NodeRef) error {
	column, err := folderChildColumn(child)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = CASE WHEN $2::uuid = ANY(%[2]s) THEN %[2]s ELSE array_append(%[2]s, $2::uuid) END
		WHERE id = $1
	`, r.tables.Folders, column)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID, child.ID)
	if err != nil {
		return postgres.StoreError("attach to folder", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	return nil
}

// RemoveChild removes a child id; missing folder or id is a no-op
func (r *PostgresFolderRepository) RemoveChild(ctx context.Context, folderID string, child models.NodeRef) error {
	column, err := folderChildColumn(child)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = array_remove(%[2]s, $2::uuid) WHERE id = $1`, r.tables.Folders, column)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, folderID, child.ID); err != nil {
		return postgres.StoreError("detach from folder", err)
	}
	return nil
}

// Delete deletes a folder record
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete folder", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByCourse retrieves every folder of a course in creation order
func (r *PostgresFolderRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE course_id = $1
		ORDER BY created_at, id
	`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, courseID)
	if err != nil {
		return nil, postgres.StoreError("list folders", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, postgres.StoreError("scan folder", err)
		}
		folders = append(folders, *folder)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate folders", err)
	}

	return folders, nil
}

func folderChildColumn(child models.NodeRef) (string, error) {
	switch child.Kind {
	case models.KindFolder:
		return "subfolder_ids", nil
	case models.KindFile:
		return "file_ids", nil
	}
	return "", fmt.Errorf("%w: a folder cannot hold a %s", domain.ErrValidation, child.Kind)
}
