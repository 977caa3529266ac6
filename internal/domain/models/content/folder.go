package content

import "time"

type Folder struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	CourseID     string    `json:"course_id" db:"course_id"` // root course, denormalized
	Parent       NodeRef   `json:"parent"`                   // course or folder
	SubfolderIDs []string  `json:"subfolder_ids" db:"subfolder_ids"`
	FileIDs      []string  `json:"file_ids" db:"file_ids"`
	UploadedBy   string    `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HasChildren reports whether any subfolder or file is still attached.
func (f *Folder) HasChildren() bool {
	return len(f.SubfolderIDs) > 0 || len(f.FileIDs) > 0
}

// ParentFolderID returns the parent folder id, or nil when the folder sits at the course root.
func (f *Folder) ParentFolderID() *string {
	if f.Parent.Kind != KindFolder {
		return nil
	}
	id := f.Parent.ID
	return &id
}
