package bot

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/cardkeeper/internal/i18n"
)

// CardView is a single card prepared for display.
type CardView struct {
	ID            int
	Category      string
	Title         string
	Description   string
	MediaRef      string
	AverageRating float64
	ReviewCount   int
}

// CategoryRow is one entry in a category listing.
type CategoryRow struct {
	ID    int
	Title string
}

// CategoryPage is one page of a category listing, clamped to valid
// bounds.
type CategoryPage struct {
	Category   string
	Page       int
	TotalPages int
	TotalCards int
	Cards      []CategoryRow
	HasPrev    bool
	HasNext    bool
}

// ReviewRow summarizes one card's reviews.
type ReviewRow struct {
	Title   string
	Average float64
	Count   int
}

// ReviewsSummary aggregates reviews across the whole catalog.
type ReviewsSummary struct {
	Rows         []ReviewRow
	OverallAvg   float64
	TotalReviews int
}

// Caption renders a card's display text in the user's language.
func Caption(l *i18n.Locale, v *CardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏷 %s\n\n%s", v.Title, v.Description)
	if v.AverageRating > 0 {
		fmt.Fprintf(&b, "\n\n⭐ %.1f (%d)", v.AverageRating, v.ReviewCount)
	}
	return b.String()
}

// CategoryText renders a category listing page.
func CategoryText(l *i18n.Locale, p *CategoryPage) string {
	var b strings.Builder
	fmt.Fprintf(&b, l.MsgCategory, p.Category)
	if p.TotalCards == 0 {
		b.WriteString(l.NoCards)
		return b.String()
	}
	for _, row := range p.Cards {
		fmt.Fprintf(&b, "\n%d. %s", row.ID, row.Title)
	}
	if p.TotalPages > 1 {
		fmt.Fprintf(&b, "\n\n📄 %d/%d", p.Page, p.TotalPages)
	}
	return b.String()
}

// ReviewsText renders the catalog-wide reviews summary.
func ReviewsText(l *i18n.Locale, s *ReviewsSummary) string {
	var b strings.Builder
	b.WriteString(l.MsgReviewsTitle)
	if s.TotalReviews == 0 {
		b.WriteString(l.NoReviews)
		return b.String()
	}
	for _, row := range s.Rows {
		fmt.Fprintf(&b, l.RowCardReview, row.Title, row.Average, row.Count)
	}
	fmt.Fprintf(&b, l.RowOverallRating, s.OverallAvg, s.TotalReviews)
	return b.String()
}
