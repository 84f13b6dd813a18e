// Card delete command removes a card from the catalog.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a card",
	Long: `Delete removes a card permanently. A backup snapshot is taken
before the card disappears, so the deletion can be recovered from the
backups directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runCardDelete,
}

func runCardDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid card id %q", args[0])
	}

	card, err := store.Card(id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if err := store.DeleteCard(id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	auditor.CardDelete(operatorID, id, card.Title)

	fmt.Printf("Card %d deleted\n", id)
	return nil
}
