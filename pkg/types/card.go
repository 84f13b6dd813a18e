package types

import "time"

// Card is a single catalog entry: a collectible card presented through a
// short video clip, grouped under a category and carrying user reviews.
type Card struct {
	ID          int      `yaml:"-"`
	Category    string   `yaml:"category"`
	Title       string   `yaml:"title"`
	MediaRef    string   `yaml:"media_ref"`
	Description string   `yaml:"description"`
	Reviews     []Review `yaml:"reviews"`
}

// Review is one user's feedback on a card. A user may leave at most one
// review per card; enforcement happens in the store at write time.
type Review struct {
	UserID    int64     `yaml:"user_id"`
	Rating    int       `yaml:"rating"`
	Comment   string    `yaml:"comment"`
	CreatedAt time.Time `yaml:"created_at"`
}

// CardSummary is the (id, title) pair returned by category listings.
type CardSummary struct {
	ID    int
	Title string
}

// HasReviewBy reports whether the card already carries a review from the
// given user.
func (c *Card) HasReviewBy(userID int64) bool {
	for _, r := range c.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AverageRating returns the arithmetic mean rating of the given reviews.
// Entries with ratings outside 1..5 are ignored. Returns 0.0 when the set
// is empty or contains no well-formed entries; never divides by zero.
func AverageRating(reviews []Review) float64 {
	var sum, n int
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		sum += r.Rating
		n++
	}
	if n == 0 {
		return 0.0
	}
	return float64(sum) / float64(n)
}
