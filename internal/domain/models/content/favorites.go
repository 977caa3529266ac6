package content

// Favorites is a user's resolved favorites, dangling references already dropped.
type Favorites struct {
	Courses []Course `json:"courses"`
	Files   []File   `json:"files"`
}
