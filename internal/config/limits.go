package config

const (
	// MaxNameLength is the maximum length for course, folder and file names.
	MaxNameLength = 100

	// MaxDescriptionLength is the maximum length for course descriptions.
	MaxDescriptionLength = 500

	// MaxCommentLength is the maximum length for review comments.
	MaxCommentLength = 500

	// MinRating and MaxRating bound a review's star rating.
	MinRating = 1
	MaxRating = 5

	// MaxCascadeRetries bounds how often a cascade re-walks a folder or course
	// that gained children while its descendants were being deleted.
	MaxCascadeRetries = 3

	// FeaturedLimit caps the featured courses/files listings.
	FeaturedLimit = 10

	// DefaultMaxUploadBytes is the upload limit for documents (20 MiB).
	DefaultMaxUploadBytes = 20 << 20
)
