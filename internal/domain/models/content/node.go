package content

import (
	"fmt"

	"coursehub/internal/domain"
)

// NodeKind identifies one of the three levels of the content hierarchy.
type NodeKind string

const (
	KindCourse NodeKind = "course"
	KindFolder NodeKind = "folder"
	KindFile   NodeKind = "file"
)

// ParseNodeKind converts a path or payload value into a NodeKind.
func ParseNodeKind(s string) (NodeKind, error) {
	kind := NodeKind(s)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown node kind %q", domain.ErrValidation, s)
	}
	return kind, nil
}

// Valid reports whether k is one of the known kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case KindCourse, KindFolder, KindFile:
		return true
	}
	return false
}

// CanParent reports whether nodes of kind k may hold children.
func (k NodeKind) CanParent() bool {
	return k == KindCourse || k == KindFolder
}

// Reviewable reports whether nodes of kind k can carry reviews and favorites.
func (k NodeKind) Reviewable() bool {
	return k == KindCourse || k == KindFile
}

// NodeRef is a typed reference to a node. A folder or file parent is a
// NodeRef, so a node always has exactly one parent kind.
type NodeRef struct {
	Kind NodeKind `json:"kind"`
	ID   string   `json:"id"`
}

// CourseRef, FolderRef and FileRef build references of a fixed kind.
func CourseRef(id string) NodeRef { return NodeRef{Kind: KindCourse, ID: id} }
func FolderRef(id string) NodeRef { return NodeRef{Kind: KindFolder, ID: id} }
func FileRef(id string) NodeRef   { return NodeRef{Kind: KindFile, ID: id} }

// IsZero reports whether the reference is unset.
func (r NodeRef) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

func (r NodeRef) String() string {
	return string(r.Kind) + ":" + r.ID
}

// Node is the tagged union returned by kind-agnostic lookups.
// Exactly one of Course, Folder, File is set, matching Kind.
type Node struct {
	Kind   NodeKind `json:"kind"`
	Course *Course  `json:"course,omitempty"`
	Folder *Folder  `json:"folder,omitempty"`
	File   *File    `json:"file,omitempty"`
}

// Ref returns the reference of the wrapped node.
func (n *Node) Ref() NodeRef {
	switch n.Kind {
	case KindCourse:
		return CourseRef(n.Course.ID)
	case KindFolder:
		return FolderRef(n.Folder.ID)
	default:
		return FileRef(n.File.ID)
	}
}

// Parent returns the node's parent; courses have none.
func (n *Node) Parent() (NodeRef, bool) {
	switch n.Kind {
	case KindFolder:
		return n.Folder.Parent, true
	case KindFile:
		return n.File.Parent, true
	}
	return NodeRef{}, false
}

// CourseID returns the id of the course the node belongs to.
func (n *Node) CourseID() string {
	switch n.Kind {
	case KindCourse:
		return n.Course.ID
	case KindFolder:
		return n.Folder.CourseID
	default:
		return n.File.CourseID
	}
}

// Owner returns the user who may modify the node besides admins.
func (n *Node) Owner() string {
	switch n.Kind {
	case KindCourse:
		return n.Course.AdminID
	case KindFolder:
		return n.Folder.UploadedBy
	default:
		return n.File.UploadedBy
	}
}

// Children lists the node's children, folders first, each list in insertion order.
func (n *Node) Children() []NodeRef {
	var folderIDs, fileIDs []string
	switch n.Kind {
	case KindCourse:
		folderIDs, fileIDs = n.Course.FolderIDs, n.Course.FileIDs
	case KindFolder:
		folderIDs, fileIDs = n.Folder.SubfolderIDs, n.Folder.FileIDs
	}
	refs := make([]NodeRef, 0, len(folderIDs)+len(fileIDs))
	for _, id := range folderIDs {
		refs = append(refs, FolderRef(id))
	}
	for _, id := range fileIDs {
		refs = append(refs, FileRef(id))
	}
	return refs
}
