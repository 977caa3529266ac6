package content

import "time"

type Course struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	IsFeatured    bool      `json:"is_featured" db:"is_featured"`
	AverageRating float64   `json:"average_rating" db:"average_rating"`
	FolderIDs     []string  `json:"folder_ids" db:"folder_ids"`
	FileIDs       []string  `json:"file_ids" db:"file_ids"`
	AdminID       string    `json:"admin_id" db:"admin_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// HasChildren reports whether any folder or file is still attached.
func (c *Course) HasChildren() bool {
	return len(c.FolderIDs) > 0 || len(c.FileIDs) > 0
}
