package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursehub/internal/blobstore"
	"coursehub/internal/domain/models"
	contentModels "coursehub/internal/domain/models/content"
	"coursehub/internal/httputil"
	"coursehub/internal/repository/memory"
	"coursehub/internal/service/auth"
	contentService "coursehub/internal/service/content"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 1024

// testActor reads the caller from X-Test-User / X-Test-Role so tests skip token signing
func testActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := r.Header.Get("X-Test-User"); user != "" {
			r = httputil.WithActor(r, models.Actor{UserID: user, Role: r.Header.Get("X-Test-Role")})
		}
		next.ServeHTTP(w, r)
	})
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T) *apiClient {
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
	services := contentService.SetupServices(repos, blobs, authorizer, testMaxUpload, logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, services, testMaxUpload, logger)
	return &apiClient{t: t, handler: testActor(mux)}
}

func (c *apiClient) do(method, path, user, role string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
		req.Header.Set("X-Test-Role", role)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *apiClient) json(method, path, user, role string, payload interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(data)
	}
	return c.do(method, path, user, role, body, "application/json")
}

func (c *apiClient) upload(user string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(c.t, writer.WriteField(k, v))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(c.t, err)
	_, err = part.Write(content)
	require.NoError(c.t, err)
	require.NoError(c.t, writer.Close())
	return c.do(http.MethodPost, "/api/files", user, models.RoleUser, &buf, writer.FormDataContentType())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (c *apiClient) createCourse(name string) contentModels.Course {
	c.t.Helper()
	rec := c.json(http.MethodPost, "/api/courses", "root", models.RoleAdmin, map[string]string{"name": name})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[contentModels.Course](c.t, rec)
}

func TestHealthCheck(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/health", "", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]interface{}](t, rec)["status"])
}

func TestCreateCourse_RequiresAdmin(t *testing.T) {
	api := newAPI(t)
	payload := map[string]string{"name": "Compilers"}

	rec := api.json(http.MethodPost, "/api/courses", "", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	rec = api.json(http.MethodPost, "/api/courses", "alice", models.RoleUser, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	course := api.createCourse("Compilers")
	assert.Equal(t, "Compilers", course.Name)
	assert.Equal(t, "root", course.AdminID)
}

func TestGetCourse_PathValidation(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/api/courses/not-a-uuid", "", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/courses/"+uuid.NewString(), "", "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	course := api.createCourse("Databases")
	rec = api.do(http.MethodGet, "/api/courses/"+course.ID, "", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, course.ID, decode[contentModels.Course](t, rec).ID)
}

func TestUpdateCourse_NullDescriptionClears(t *testing.T) {
	api := newAPI(t)
	rec := api.json(http.MethodPost, "/api/courses", "root", models.RoleAdmin, map[string]string{
		"name":        "Networks",
		"description": "Packets and more",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	course := decode[contentModels.Course](t, rec)

	rec = api.do(http.MethodPatch, "/api/courses/"+course.ID, "root", models.RoleAdmin,
		bytes.NewReader([]byte(`{"description": null}`)), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[contentModels.Course](t, rec)
	assert.Equal(t, "Networks", updated.Name)
	assert.Empty(t, updated.Description)
}

func TestUploadAndTree(t *testing.T) {
	api := newAPI(t)
	course := api.createCourse("Signals")

	rec := api.json(http.MethodPost, "/api/folders", "alice", models.RoleUser, map[string]string{
		"name":      "Lectures",
		"course_id": course.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	folder := decode[contentModels.Folder](t, rec)

	rec = api.upload("alice", map[string]string{"parent_folder_id": folder.ID}, "fourier.pdf", []byte("%PDF"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	file := decode[contentModels.File](t, rec)
	assert.Equal(t, "fourier", file.Name)
	assert.Equal(t, course.ID, file.CourseID)

	rec = api.do(http.MethodGet, "/api/courses/"+course.ID+"/tree", "", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decode[contentModels.CourseTree](t, rec)
	require.Len(t, tree.Folders, 1)
	require.Len(t, tree.Folders[0].Files, 1)
	assert.Equal(t, file.ID, tree.Folders[0].Files[0].ID)

	rec = api.do(http.MethodGet, "/api/nodes/folder/"+folder.ID+"/children", "", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []contentModels.NodeRef{contentModels.FileRef(file.ID)}, decode[[]contentModels.NodeRef](t, rec))

	rec = api.do(http.MethodGet, "/api/nodes/shelf/"+folder.ID+"/children", "", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadFile_Rejections(t *testing.T) {
	api := newAPI(t)
	course := api.createCourse("Robotics")

	rec := api.upload("", map[string]string{"course_id": course.ID}, "arm.stl", []byte("solid"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.upload("alice", map[string]string{"course_id": course.ID}, "big.bin", make([]byte, testMaxUpload+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.upload("alice", map[string]string{"course_id": uuid.NewString()}, "lost.txt", []byte("x"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/files", "alice", models.RoleUser, bytes.NewReader([]byte("{}")), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFolder_NullParentMovesToCourseRoot(t *testing.T) {
	api := newAPI(t)
	course := api.createCourse("Ecology")

	rec := api.json(http.MethodPost, "/api/folders", "alice", models.RoleUser, map[string]string{"name": "Forests", "course_id": course.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	outer := decode[contentModels.Folder](t, rec)

	rec = api.json(http.MethodPost, "/api/folders", "alice", models.RoleUser, map[string]string{"name": "Taiga", "parent_folder_id": outer.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	inner := decode[contentModels.Folder](t, rec)

	rec = api.json(http.MethodPatch, "/api/folders/"+inner.ID, "bob", models.RoleUser, map[string]string{"name": "Boreal"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPatch, "/api/folders/"+inner.ID, "alice", models.RoleUser,
		bytes.NewReader([]byte(`{"parent_folder_id": null}`)), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, contentModels.CourseRef(course.ID), decode[contentModels.Folder](t, rec).Parent)

	rec = api.do(http.MethodDelete, "/api/folders/"+outer.ID, "alice", models.RoleUser, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/folders/"+outer.ID, "", "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(http.MethodGet, "/api/folders/"+inner.ID, "", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateReview_ConflictCarriesExistingID(t *testing.T) {
	api := newAPI(t)
	course := api.createCourse("Rhetoric")
	payload := map[string]interface{}{
		"resource_type": "course",
		"resource_id":   course.ID,
		"rating":        4,
		"comment":       "clear",
	}

	rec := api.json(http.MethodPost, "/api/reviews", "alice", models.RoleUser, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	review := decode[contentModels.Review](t, rec)

	rec = api.json(http.MethodPost, "/api/reviews", "alice", models.RoleUser, payload)
	require.Equal(t, http.StatusConflict, rec.Code)
	problem := decode[map[string]interface{}](t, rec)
	assert.Equal(t, review.ID, problem["existing_id"])
	assert.Equal(t, "review", problem["resource_type"])

	rec = api.do(http.MethodGet, "/api/reviews?resource_type=course&resource_id="+course.ID, "", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]contentModels.Review](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/reviews?resource_type=folder&resource_id="+course.ID, "", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodDelete, "/api/reviews/"+review.ID, "bob", models.RoleUser, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = api.do(http.MethodDelete, "/api/reviews/"+review.ID, "alice", models.RoleUser, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFavoritesEndpoints(t *testing.T) {
	api := newAPI(t)
	course := api.createCourse("Sociology")

	rec := api.json(http.MethodPut, "/api/users/me/favorites", "bob", models.RoleUser, map[string]string{
		"resource_id":   course.ID,
		"resource_type": "course",
		"action":        "add",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	favorites := decode[contentModels.Favorites](t, rec)
	require.Len(t, favorites.Courses, 1)
	assert.Equal(t, course.ID, favorites.Courses[0].ID)

	rec = api.do(http.MethodGet, "/api/users/me/favorites", "", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodDelete, "/api/users/me/favorites/course/"+course.ID, "bob", models.RoleUser, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/users/me/favorites", "bob", models.RoleUser, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[contentModels.Favorites](t, rec).Courses)
}
