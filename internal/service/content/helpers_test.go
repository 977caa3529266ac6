package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"coursehub/internal/domain/models"
	contentModels "coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"
	contentSvc "coursehub/internal/domain/services/content"
	"coursehub/internal/repository/memory"
	"coursehub/internal/service/auth"

	"github.com/stretchr/testify/require"
)

var (
	admin = models.Actor{UserID: "admin-1", Role: models.RoleAdmin}
	alice = models.Actor{UserID: "alice", Role: models.RoleUser}
	bob   = models.Actor{UserID: "bob", Role: models.RoleUser}
)

// recordingBlobs is an in-memory BlobStore that records releases
type recordingBlobs struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	deleted  []string
	next     int
	putErr   error
	deleteFn func(key string) error
}

func newRecordingBlobs() *recordingBlobs {
	return &recordingBlobs{blobs: make(map[string][]byte)}
}

func (b *recordingBlobs) Put(_ context.Context, filename string, r io.Reader) (string, string, error) {
	if b.putErr != nil {
		return "", "", b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	key := fmt.Sprintf("blob-%d-%s", b.next, filename)
	b.blobs[key] = data
	return key, "/uploads/" + key, nil
}

func (b *recordingBlobs) Delete(_ context.Context, key string) error {
	if b.deleteFn != nil {
		if err := b.deleteFn(key); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.blobs, key)
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *recordingBlobs) stored() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.blobs)
}

// hookedFolders calls afterRead each time a folder is read by id, with the
// number of reads of that folder so far. GetForUpdate is not hooked.
type hookedFolders struct {
	contentRepo.FolderRepository

	mu        sync.Mutex
	reads     map[string]int
	afterRead func(id string, reads int)
}

func (h *hookedFolders) GetByID(ctx context.Context, id string) (*contentModels.Folder, error) {
	folder, err := h.FolderRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.reads[id]++
	n := h.reads[id]
	hook := h.afterRead
	h.mu.Unlock()

	if hook != nil {
		hook(id, n)
	}
	return folder, nil
}

func (h *hookedFolders) setHook(fn func(id string, reads int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads = make(map[string]int)
	h.afterRead = fn
}

// newHookedEnv returns an env whose folder reads can be intercepted
func newHookedEnv(t *testing.T) (*testEnv, *hookedFolders) {
	t.Helper()
	var hooked *hookedFolders
	env := newTestEnvWith(t, func(repos *Repositories) {
		hooked = &hookedFolders{FolderRepository: repos.Folders, reads: make(map[string]int)}
		repos.Folders = hooked
	})
	return env, hooked
}

func (b *recordingBlobs) deletedKeys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.deleted)
}

type testEnv struct {
	store *memory.Store
	repos *Repositories
	blobs *recordingBlobs
	svc   *Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets a test wrap repositories before the services see them
func newTestEnvWith(t *testing.T, wrap func(repos *Repositories)) *testEnv {
	t.Helper()

	store := memory.NewStore()
	repos := &Repositories{
		Courses:   memory.NewCourseRepository(store),
		Folders:   memory.NewFolderRepository(store),
		Files:     memory.NewFileRepository(store),
		Reviews:   memory.NewReviewRepository(store),
		Favorites: memory.NewFavoriteRepository(store),
		Tx:        memory.NewTransactionManager(store),
	}
	if wrap != nil {
		wrap(repos)
	}
	blobs := newRecordingBlobs()
	authorizer := auth.NewOwnerBasedAuthorizer(repos.Courses, repos.Folders, repos.Files)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		store: store,
		repos: repos,
		blobs: blobs,
		svc:   SetupServices(repos, blobs, authorizer, 1024, logger),
	}
}

func (e *testEnv) course(t *testing.T, name string) *contentModels.Course {
	t.Helper()
	course, err := e.svc.Course.CreateCourse(context.Background(), admin, &contentSvc.CreateCourseRequest{Name: name})
	require.NoError(t, err)
	return course
}

func (e *testEnv) folderInCourse(t *testing.T, actor models.Actor, courseID, name string) *contentModels.Folder {
	t.Helper()
	folder, err := e.svc.Folder.CreateFolder(context.Background(), actor, &contentSvc.CreateFolderRequest{
		Name:           name,
		ParentSelector: contentSvc.ParentSelector{CourseID: &courseID},
	})
	require.NoError(t, err)
	return folder
}

func (e *testEnv) subfolder(t *testing.T, actor models.Actor, parentID, name string) *contentModels.Folder {
	t.Helper()
	folder, err := e.svc.Folder.CreateFolder(context.Background(), actor, &contentSvc.CreateFolderRequest{
		Name:           name,
		ParentSelector: contentSvc.ParentSelector{ParentFolderID: &parentID},
	})
	require.NoError(t, err)
	return folder
}

func (e *testEnv) upload(t *testing.T, actor models.Actor, sel contentSvc.ParentSelector, filename string) *contentModels.File {
	t.Helper()
	body := []byte("content of " + filename)
	file, err := e.svc.File.UploadFile(context.Background(), actor, &contentSvc.UploadFileRequest{
		Filename:       filename,
		Size:           int64(len(body)),
		Body:           bytes.NewReader(body),
		ParentSelector: sel,
	})
	require.NoError(t, err)
	return file
}

func (e *testEnv) review(t *testing.T, actor models.Actor, target contentModels.NodeRef, rating int) *contentModels.Review {
	t.Helper()
	review, err := e.svc.Review.CreateReview(context.Background(), actor, &contentSvc.CreateReviewRequest{
		ResourceType: string(target.Kind),
		ResourceID:   target.ID,
		Rating:       rating,
	})
	require.NoError(t, err)
	return review
}

// attachFile adds a file under folder through the repositories only,
// bypassing the services and their folder reads
func (e *testEnv) attachFile(t *testing.T, folder *contentModels.Folder, name string) *contentModels.File {
	t.Helper()
	ctx := context.Background()
	file := &contentModels.File{
		Name:       name,
		CourseID:   folder.CourseID,
		Parent:     contentModels.FolderRef(folder.ID),
		UploadedBy: alice.UserID,
	}
	require.NoError(t, e.repos.Files.Create(ctx, file))
	require.NoError(t, e.repos.Folders.AddChild(ctx, folder.ID, contentModels.FileRef(file.ID)))
	return file
}

func inFolder(id string) contentSvc.ParentSelector {
	return contentSvc.ParentSelector{ParentFolderID: &id}
}

func inCourse(id string) contentSvc.ParentSelector {
	return contentSvc.ParentSelector{CourseID: &id}
}

func ptr[T any](v T) *T {
	return &v
}

var errBlobDown = errors.New("blob backend unavailable")
