package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"coursehub/internal/domain/models"
	contentModels "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
	contentService "coursehub/internal/service/content"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// Fixture is a course tree described in YAML
type Fixture struct {
	AdminID string          `yaml:"admin_id"`
	Courses []CourseFixture `yaml:"courses"`
}

// CourseFixture describes one course with its content and reviews
type CourseFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Featured    bool            `yaml:"featured"`
	Folders     []FolderFixture `yaml:"folders"`
	Files       []FileFixture   `yaml:"files"`
	Reviews     []ReviewFixture `yaml:"reviews"`
}

// FolderFixture describes a folder; UploadedBy defaults to the admin
type FolderFixture struct {
	Name       string          `yaml:"name"`
	UploadedBy string          `yaml:"uploaded_by"`
	Folders    []FolderFixture `yaml:"folders"`
	Files      []FileFixture   `yaml:"files"`
}

// FileFixture describes an uploaded document
type FileFixture struct {
	Name     string `yaml:"name"`
	Filename string `yaml:"filename"`
	Content  string `yaml:"content"`
	Featured bool   `yaml:"featured"`
}

// ReviewFixture describes a review of the enclosing course
type ReviewFixture struct {
	UserID  string `yaml:"user_id"`
	Rating  int    `yaml:"rating"`
	Comment string `yaml:"comment"`
}

// Result counts what a Seeder created
type Result struct {
	Courses int
	Folders int
	Files   int
	Reviews int
}

// Default returns the embedded sample fixture
func Default() (*Fixture, error) {
	data, err := fixtureFiles.ReadFile("fixtures/default.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read default fixture: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a fixture from disk
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}
	if fixture.AdminID == "" {
		return nil, fmt.Errorf("fixture is missing admin_id")
	}
	return &fixture, nil
}

// Seeder creates fixture content through the services so every
// reference list and rating is maintained the same way as over HTTP.
type Seeder struct {
	services *contentService.Services
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(services *contentService.Services, logger *slog.Logger) *Seeder {
	return &Seeder{
		services: services,
		logger:   logger,
	}
}

// Run creates every course in the fixture
func (s *Seeder) Run(ctx context.Context, fixture *Fixture) (*Result, error) {
	admin := models.Actor{UserID: fixture.AdminID, Role: models.RoleAdmin}
	result := &Result{}

	for _, cf := range fixture.Courses {
		course, err := s.services.Course.CreateCourse(ctx, admin, &contentSvc.CreateCourseRequest{
			Name:        cf.Name,
			Description: cf.Description,
			IsFeatured:  cf.Featured,
		})
		if err != nil {
			return result, fmt.Errorf("course %q: %w", cf.Name, err)
		}
		result.Courses++
		s.logger.Info("seeded course", "id", course.ID, "name", course.Name)

		root := contentSvc.ParentSelector{CourseID: &course.ID}
		for _, ff := range cf.Folders {
			if err := s.seedFolder(ctx, admin, root, ff, result); err != nil {
				return result, err
			}
		}
		for _, file := range cf.Files {
			if err := s.seedFile(ctx, admin, admin, root, file, result); err != nil {
				return result, err
			}
		}
		for _, rf := range cf.Reviews {
			reviewer := models.Actor{UserID: rf.UserID, Role: models.RoleUser}
			_, err := s.services.Review.CreateReview(ctx, reviewer, &contentSvc.CreateReviewRequest{
				ResourceType: string(contentModels.KindCourse),
				ResourceID:   course.ID,
				Rating:       rf.Rating,
				Comment:      rf.Comment,
			})
			if err != nil {
				return result, fmt.Errorf("review of %q by %s: %w", cf.Name, rf.UserID, err)
			}
			result.Reviews++
		}
	}

	return result, nil
}

func (s *Seeder) seedFolder(ctx context.Context, admin models.Actor, parent contentSvc.ParentSelector, ff FolderFixture, result *Result) error {
	owner := admin
	if ff.UploadedBy != "" {
		owner = models.Actor{UserID: ff.UploadedBy, Role: models.RoleUser}
	}

	folder, err := s.services.Folder.CreateFolder(ctx, owner, &contentSvc.CreateFolderRequest{
		Name:           ff.Name,
		ParentSelector: parent,
	})
	if err != nil {
		return fmt.Errorf("folder %q: %w", ff.Name, err)
	}
	result.Folders++

	here := contentSvc.ParentSelector{ParentFolderID: &folder.ID}
	for _, child := range ff.Folders {
		if child.UploadedBy == "" {
			child.UploadedBy = ff.UploadedBy
		}
		if err := s.seedFolder(ctx, admin, here, child, result); err != nil {
			return err
		}
	}
	for _, file := range ff.Files {
		if err := s.seedFile(ctx, admin, owner, here, file, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedFile(ctx context.Context, admin, owner models.Actor, parent contentSvc.ParentSelector, ff FileFixture, result *Result) error {
	file, err := s.services.File.UploadFile(ctx, owner, &contentSvc.UploadFileRequest{
		Name:           ff.Name,
		Filename:       ff.Filename,
		Size:           int64(len(ff.Content)),
		Body:           strings.NewReader(ff.Content),
		ParentSelector: parent,
	})
	if err != nil {
		return fmt.Errorf("file %q: %w", ff.Filename, err)
	}
	result.Files++

	if ff.Featured {
		featured := true
		if _, err := s.services.File.UpdateFile(ctx, admin, file.ID, &contentSvc.UpdateFileRequest{IsFeatured: &featured}); err != nil {
			return fmt.Errorf("feature %q: %w", ff.Filename, err)
		}
	}
	return nil
}
