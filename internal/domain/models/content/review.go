package content

import "time"

type Review struct {
	ID        string    `json:"id" db:"id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	Target    NodeRef   `json:"target"` // course or file
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RatingStats is the raw aggregate the average is derived from.
type RatingStats struct {
	Sum   int
	Count int
}

// Average returns the mean rating rounded to one decimal, half away from zero.
// Integer arithmetic keeps x.x5 boundaries exact.
func (s RatingStats) Average() float64 {
	if s.Count <= 0 {
		return 0
	}
	tenths := (20*s.Sum + s.Count) / (2 * s.Count)
	return float64(tenths) / 10
}
