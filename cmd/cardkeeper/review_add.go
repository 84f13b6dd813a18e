// Review add command records a review on behalf of a user.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reviewCard    int
	reviewUser    int64
	reviewRating  int
	reviewComment string
)

var reviewAddCmd = &cobra.Command{
	Use:   "review",
	Short: "Add a review to a card",
	Long: `Review records a rating (1-5) with an optional comment. A user
can review each card once.

Example:
  cardkeeper review --card 3 --user 12345 --rating 5 --comment "great seller"`,
	RunE: runReviewAdd,
}

func init() {
	reviewAddCmd.Flags().IntVar(&reviewCard, "card", 0, "card id (required)")
	reviewAddCmd.Flags().Int64Var(&reviewUser, "user", 0, "reviewing user id (required)")
	reviewAddCmd.Flags().IntVar(&reviewRating, "rating", 0, "rating 1-5 (required)")
	reviewAddCmd.Flags().StringVar(&reviewComment, "comment", "", "review comment")
	_ = reviewAddCmd.MarkFlagRequired("card")
	_ = reviewAddCmd.MarkFlagRequired("user")
	_ = reviewAddCmd.MarkFlagRequired("rating")
}

func runReviewAdd(cmd *cobra.Command, args []string) error {
	if err := store.AddReview(reviewCard, reviewUser, reviewRating, reviewComment); err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	fmt.Printf("Review saved on card %d\n", reviewCard)
	return nil
}
