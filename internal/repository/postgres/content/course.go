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

const courseColumns = `id, name, description, is_featured, average_rating,
	folder_ids::text[], file_ids::text[], admin_id, created_at, updated_at`

// PostgresCourseRepository implements the CourseRepository interface
type PostgresCourseRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(config *postgres.RepositoryConfig) contentRepo.CourseRepository {
	return &PostgresCourseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.IsFeatured,
		&c.AverageRating,
		&c.FolderIDs,
		&c.FileIDs,
		&c.AdminID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, is_featured, admin_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Courses)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		course.Name,
		course.Description,
		course.IsFeatured,
		course.AdminID,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return postgres.StoreError("create course", err)
	}

	course.FolderIDs = []string{}
	course.FileIDs = []string{}
	return nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate retrieves a course and locks its row
func (r *PostgresCourseRepository) GetForUpdate(ctx context.Context, id string) (*models.Course, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *PostgresCourseRepository) get(ctx context.Context, id, lock string) (*models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 %s`, courseColumns, r.tables.Courses, lock)

	executor := postgres.GetExecutor(ctx, r.pool)
	course, err := scanCourse(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.StoreError("get course", err)
	}
	return course, nil
}

// List retrieves courses in creation order
func (r *PostgresCourseRepository) List(ctx context.Context, featuredOnly bool, limit int) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE ($1 = FALSE OR is_featured)
		ORDER BY created_at, id
	`, courseColumns, r.tables.Courses)
	args := []any{featuredOnly}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.StoreError("list courses", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, postgres.StoreError("scan course", err)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate courses", err)
	}

	return courses, nil
}

// Update writes name, description and featured flag
func (r *PostgresCourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, is_featured = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`, r.tables.Courses)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		course.Name,
		course.Description,
		course.IsFeatured,
		course.ID,
	).Scan(&course.UpdatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return fmt.Errorf("course %s: %w", course.ID, domain.ErrNotFound)
		}
		return postgres.StoreError("update course", err)
	}
	return nil
}

// UpdateRating stores a recomputed average rating
func (r *PostgresCourseRepository) UpdateRating(ctx context.Context, id string, average float64) error {
	query := fmt.Sprintf(`UPDATE %s SET average_rating = $1 WHERE id = $2`, r.tables.Courses)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, average, id)
	if err != nil {
		return postgres.StoreError("update course rating", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AddChild appends a child id unless the list already holds it
func (r *PostgresCourseRepository) AddChild(ctx context.Context, courseID string, child models.NodeRef) error {
	column, err := courseChildColumn(child)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = CASE WHEN $2::uuid = ANY(%[2]s) THEN %[2]s ELSE array_append(%[2]s, $2::uuid) END
		WHERE id = $1
	`, r.tables.Courses, column)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, courseID, child.ID)
	if err != nil {
		return postgres.StoreError("attach to course", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", courseID, domain.ErrNotFound)
	}
	return nil
}

// RemoveChild removes a child id; missing course or id is a no-op
func (r *PostgresCourseRepository) RemoveChild(ctx context.Context, courseID string, child models.NodeRef) error {
	column, err := courseChildColumn(child)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = array_remove(%[2]s, $2::uuid) WHERE id = $1`, r.tables.Courses, column)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, courseID, child.ID); err != nil {
		return postgres.StoreError("detach from course", err)
	}
	return nil
}

// Delete deletes a course record
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Courses)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete course", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func courseChildColumn(child models.NodeRef) (string, error) {
	switch child.Kind {
	case models.KindFolder:
		return "folder_ids", nil
	case models.KindFile:
		return "file_ids", nil
	}
	return "", fmt.Errorf("%w: a course cannot hold a %s", domain.ErrValidation, child.Kind)
}
