package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		reviews []Review
		want    float64
	}{
		{
			name:    "empty set returns zero",
			reviews: nil,
			want:    0.0,
		},
		{
			name:    "single review",
			reviews: []Review{{Rating: 4}},
			want:    4.0,
		},
		{
			name:    "mean of two reviews",
			reviews: []Review{{Rating: 4}, {Rating: 2}},
			want:    3.0,
		},
		{
			name:    "malformed ratings ignored",
			reviews: []Review{{Rating: 0}, {Rating: 6}, {Rating: 5}},
			want:    5.0,
		},
		{
			name:    "all malformed returns zero",
			reviews: []Review{{Rating: 0}, {Rating: -3}, {Rating: 17}},
			want:    0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageRating(tt.reviews), 1e-9)
		})
	}
}

func TestCardHasReviewBy(t *testing.T) {
	card := &Card{
		Reviews: []Review{
			{UserID: 100, Rating: 5},
			{UserID: 200, Rating: 3},
		},
	}

	assert.True(t, card.HasReviewBy(100))
	assert.True(t, card.HasReviewBy(200))
	assert.False(t, card.HasReviewBy(300))

	empty := &Card{}
	assert.False(t, empty.HasReviewBy(100))
}
