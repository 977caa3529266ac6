package content

import (
	"context"
	"testing"

	"coursehub/internal/domain"
	contentModels "coursehub/internal/domain/models/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCourseTree_NestsInChildListOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Architecture")
	second := env.folderInCourse(t, alice, course.ID, "B-Modern")
	first := env.folderInCourse(t, alice, course.ID, "A-Classic")
	nested := env.subfolder(t, alice, second.ID, "Bauhaus")
	deep := env.upload(t, alice, inFolder(nested.ID), "plan.dwg")
	root := env.upload(t, alice, inCourse(course.ID), "intro.pdf")

	tree, err := env.svc.Tree.GetCourseTree(ctx, course.ID)
	require.NoError(t, err)

	assert.Equal(t, course.Name, tree.Name)
	require.Len(t, tree.Folders, 2)
	assert.Equal(t, second.ID, tree.Folders[0].ID)
	assert.Equal(t, first.ID, tree.Folders[1].ID)
	assert.Nil(t, tree.Folders[0].ParentID)

	require.Len(t, tree.Folders[0].Folders, 1)
	bauhaus := tree.Folders[0].Folders[0]
	assert.Equal(t, nested.ID, bauhaus.ID)
	require.NotNil(t, bauhaus.ParentID)
	assert.Equal(t, second.ID, *bauhaus.ParentID)
	require.Len(t, bauhaus.Files, 1)
	assert.Equal(t, deep.ID, bauhaus.Files[0].ID)

	require.Len(t, tree.Files, 1)
	assert.Equal(t, root.ID, tree.Files[0].ID)
	assert.Empty(t, tree.Folders[1].Folders)
	assert.Empty(t, tree.Folders[1].Files)
}

func TestGetCourseTree_MissingCourse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Tree.GetCourseTree(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNodeService_ListChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Design")
	file := env.upload(t, alice, inCourse(course.ID), "brief.txt")
	folder := env.folderInCourse(t, alice, course.ID, "Mockups")

	children, err := env.svc.Node.ListChildren(ctx, contentModels.CourseRef(course.ID))
	require.NoError(t, err)
	assert.Equal(t, []contentModels.NodeRef{
		contentModels.FolderRef(folder.ID),
		contentModels.FileRef(file.ID),
	}, children)

	children, err = env.svc.Node.ListChildren(ctx, contentModels.FileRef(file.ID))
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestReferenceMaintainer_AttachChecksRecordedParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Poetry")
	a := env.folderInCourse(t, alice, course.ID, "Sonnets")
	b := env.folderInCourse(t, alice, course.ID, "Haiku")

	err := env.svc.References.Attach(ctx, contentModels.FolderRef(a.ID), contentModels.FolderRef(b.ID))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// re-attaching to the recorded parent is a no-op
	require.NoError(t, env.svc.References.Attach(ctx, contentModels.FolderRef(a.ID), contentModels.CourseRef(course.ID)))
	reloaded, err := env.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, reloaded.FolderIDs)

	err = env.svc.References.Attach(ctx, contentModels.CourseRef(course.ID), contentModels.FolderRef(a.ID))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReferenceMaintainer_DetachIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Drama")
	file := env.upload(t, alice, inCourse(course.ID), "script.txt")

	require.NoError(t, env.svc.References.Detach(ctx, contentModels.FileRef(file.ID)))
	require.NoError(t, env.svc.References.Detach(ctx, contentModels.FileRef(file.ID)))
	require.NoError(t, env.svc.References.Detach(ctx, contentModels.FileRef("missing")))

	reloaded, err := env.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.FileIDs)
}
