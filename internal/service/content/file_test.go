package content

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"coursehub/internal/domain"
	contentModels "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFile_StoresBlobAndAttaches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Linear Algebra")
	folder := env.folderInCourse(t, alice, course.ID, "Homework")
	file := env.upload(t, alice, inFolder(folder.ID), "hw1.pdf")

	assert.Equal(t, "hw1", file.Name)
	assert.Equal(t, course.ID, file.CourseID)
	assert.NotEmpty(t, file.BlobKey)
	assert.True(t, strings.HasPrefix(file.URL, "/uploads/"))

	reloaded, err := env.repos.Folders.GetByID(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{file.ID}, reloaded.FileIDs)
}

func TestUploadFile_MissingParentStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Topology")
	body := []byte("x")
	_, err := env.svc.File.UploadFile(ctx, alice, &contentSvc.UploadFileRequest{
		Filename:       "a.txt",
		Size:           1,
		Body:           bytes.NewReader(body),
		ParentSelector: inCourse("missing"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, env.blobs.stored())

	_, err = env.svc.File.UploadFile(ctx, alice, &contentSvc.UploadFileRequest{
		Filename:       "b.txt",
		Size:           int64(len(body)),
		Body:           bytes.NewReader(body),
		ParentSelector: inCourse(course.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, env.blobs.stored())
}

func TestUploadFile_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	course := env.course(t, "Optics")

	_, err := env.svc.File.UploadFile(ctx, alice, &contentSvc.UploadFileRequest{
		Filename:       "huge.bin",
		Size:           4096,
		Body:           bytes.NewReader(make([]byte, 4096)),
		ParentSelector: inCourse(course.ID),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.File.UploadFile(ctx, alice, &contentSvc.UploadFileRequest{
		Name:           "no body",
		ParentSelector: inCourse(course.ID),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, env.blobs.stored())
}

func TestUploadFile_BlobFailureIsRetryable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	course := env.course(t, "Acoustics")
	env.blobs.putErr = errBlobDown

	_, err := env.svc.File.UploadFile(ctx, alice, &contentSvc.UploadFileRequest{
		Filename:       "wave.wav",
		Size:           3,
		Body:           strings.NewReader("abc"),
		ParentSelector: inCourse(course.ID),
	})
	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.True(t, domain.IsRetryable(err))

	reloaded, err := env.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.FileIDs)
}

func TestUpdateFile_FeatureRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Astronomy")
	file := env.upload(t, alice, inCourse(course.ID), "stars.csv")

	_, err := env.svc.File.UpdateFile(ctx, alice, file.ID, &contentSvc.UpdateFileRequest{IsFeatured: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := env.svc.File.UpdateFile(ctx, admin, file.ID, &contentSvc.UpdateFileRequest{IsFeatured: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsFeatured)

	featured, err := env.svc.File.FeaturedFiles(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, file.ID, featured[0].ID)
}

func TestUpdateFile_MoveBetweenFolders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Geology")
	from := env.folderInCourse(t, alice, course.ID, "Rocks")
	to := env.folderInCourse(t, alice, course.ID, "Minerals")
	file := env.upload(t, alice, inFolder(from.ID), "quartz.png")

	updated, err := env.svc.File.UpdateFile(ctx, alice, file.ID, &contentSvc.UpdateFileRequest{
		Name: ptr("Quartz"),
		Move: &contentSvc.MoveTarget{ParentFolderID: &to.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Quartz", updated.Name)
	assert.Equal(t, contentModels.FolderRef(to.ID), updated.Parent)

	reloadedFrom, err := env.repos.Folders.GetByID(ctx, from.ID)
	require.NoError(t, err)
	assert.Empty(t, reloadedFrom.FileIDs)
	reloadedTo, err := env.repos.Folders.GetByID(ctx, to.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{file.ID}, reloadedTo.FileIDs)
}

func TestGetFileLocation_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Archaeology")
	file := env.upload(t, alice, inCourse(course.ID), "dig.jpg")

	_, err := env.svc.File.GetFileLocation(ctx, alice, file.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	location, err := env.svc.File.GetFileLocation(ctx, admin, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.BlobKey, location.BlobKey)
	assert.Equal(t, file.URL, location.URL)
}
