// Card add command publishes a new card from the command line.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addCategory    string
	addTitle       string
	addDescription string
	addMedia       string
	addJSON        bool
)

var cardAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Publish a new card",
	Long: `Add publishes a new card in the given category. Title and
description go through the same sanitization as the chat workflows.

Example:
  cardkeeper add --category pokemon --title "charizard holo" --description "near mint, 50 eur"
  cardkeeper add --category magic --title "black lotus" --description "played" --media file-123 --json`,
	RunE: runCardAdd,
}

func init() {
	cardAddCmd.Flags().StringVar(&addCategory, "category", "", "card category (required)")
	cardAddCmd.Flags().StringVar(&addTitle, "title", "", "card title (required)")
	cardAddCmd.Flags().StringVar(&addDescription, "description", "", "card description (required)")
	cardAddCmd.Flags().StringVar(&addMedia, "media", "", "media reference")
	cardAddCmd.Flags().BoolVar(&addJSON, "json", false, "output as JSON")
	_ = cardAddCmd.MarkFlagRequired("category")
	_ = cardAddCmd.MarkFlagRequired("title")
	_ = cardAddCmd.MarkFlagRequired("description")
}

func runCardAdd(cmd *cobra.Command, args []string) error {
	id, err := store.AddCard(addCategory, addTitle, addDescription, addMedia)
	if err != nil {
		return fmt.Errorf("add card: %w", err)
	}
	auditor.CardAdd(operatorID, id, addTitle, addCategory)

	if addJSON {
		out, err := json.Marshal(map[string]int{"id": id})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Printf("Card %d published\n", id)
	return nil
}
