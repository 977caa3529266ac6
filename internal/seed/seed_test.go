package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"coursehub/internal/blobstore"
	"coursehub/internal/config"
	"coursehub/internal/repository/memory"
	"coursehub/internal/service/auth"
	contentService "coursehub/internal/service/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) *contentService.Services {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	repos := &contentService.Repositories{
		Courses:   memory.NewCourseRepository(store),
		Folders:   memory.NewFolderRepository(store),
		Files:     memory.NewFileRepository(store),
		Reviews:   memory.NewReviewRepository(store),
		Favorites: memory.NewFavoriteRepository(store),
		Tx:        memory.NewTransactionManager(store),
	}
	blobs, err := blobstore.NewLocalStore(t.TempDir(), "/uploads", logger)
	require.NoError(t, err)
	authorizer := auth.NewOwnerBasedAuthorizer(repos.Courses, repos.Folders, repos.Files)
	return contentService.SetupServices(repos, blobs, authorizer, config.DefaultMaxUploadBytes, logger)
}

func TestParse_RequiresAdmin(t *testing.T) {
	_, err := Parse([]byte("courses:\n  - name: Orphan\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("admin_id: [unterminated"))
	assert.Error(t, err)
}

func TestSeeder_DefaultFixture(t *testing.T) {
	services := newServices(t)
	ctx := context.Background()

	fixture, err := Default()
	require.NoError(t, err)

	result, err := NewSeeder(services, slog.New(slog.NewTextHandler(io.Discard, nil))).Run(ctx, fixture)
	require.NoError(t, err)
	assert.Equal(t, &Result{Courses: 2, Folders: 4, Files: 4, Reviews: 2}, result)

	featured, err := services.Course.FeaturedCourses(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Introduction to Algorithms", featured[0].Name)
	assert.Equal(t, 4.5, featured[0].AverageRating)

	tree, err := services.Tree.GetCourseTree(ctx, featured[0].ID)
	require.NoError(t, err)
	require.Len(t, tree.Folders, 2)
	assert.Equal(t, "Lectures", tree.Folders[0].Name)
	require.Len(t, tree.Folders[0].Folders, 1)
	assert.Len(t, tree.Folders[0].Folders[0].Files, 1)
	assert.Len(t, tree.Files, 1)

	files, err := services.File.FeaturedFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "week2-graphs", files[0].Name)
	assert.Equal(t, "00000000-0000-0000-0000-00000000b001", files[0].UploadedBy)
}
