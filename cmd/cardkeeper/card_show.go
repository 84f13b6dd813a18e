// Card show command displays one card with its reviews.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

var showJSON bool

var cardShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a card",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardShow,
}

func init() {
	cardShowCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
}

func runCardShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid card id %q", args[0])
	}

	card, err := store.Card(id)
	if err != nil {
		return fmt.Errorf("show card: %w", err)
	}

	if showJSON {
		out, err := json.MarshalIndent(card, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Card %d [%s]\n", card.ID, card.Category)
	fmt.Printf("  Title:       %s\n", card.Title)
	fmt.Printf("  Description: %s\n", card.Description)
	if card.MediaRef != "" {
		fmt.Printf("  Media:       %s\n", card.MediaRef)
	}
	if len(card.Reviews) > 0 {
		fmt.Printf("  Rating:      %.1f (%d reviews)\n", types.AverageRating(card.Reviews), len(card.Reviews))
		for _, r := range card.Reviews {
			fmt.Printf("    %d⭐ user %d", r.Rating, r.UserID)
			if r.Comment != "" {
				fmt.Printf(": %s", r.Comment)
			}
			fmt.Println()
		}
	}
	return nil
}
