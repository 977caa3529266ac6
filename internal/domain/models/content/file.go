package content

import "time"

type File struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	URL           string    `json:"url" db:"url"`
	BlobKey       string    `json:"-" db:"blob_key"` // storage locator, never sent to clients
	CourseID      string    `json:"course_id" db:"course_id"`
	Parent        NodeRef   `json:"parent"`
	UploadedBy    string    `json:"uploaded_by" db:"uploaded_by"`
	IsFeatured    bool      `json:"is_featured" db:"is_featured"`
	AverageRating float64   `json:"average_rating" db:"average_rating"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// FileLocation is the admin view of where a file's blob lives.
type FileLocation struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	BlobKey string `json:"blob_key"`
}
