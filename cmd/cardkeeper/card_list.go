// Card list command queries the catalog.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

var (
	listCategory string
	listJSON     bool
)

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards",
	Long: `List shows the catalog in insertion order.

Example:
  cardkeeper list
  cardkeeper list --category pokemon
  cardkeeper list --json`,
	RunE: runCardList,
}

func init() {
	cardListCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	cardListCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

func runCardList(cmd *cobra.Command, args []string) error {
	var cards []types.CardSummary
	if listCategory != "" {
		var err error
		cards, err = store.Cards(listCategory)
		if err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
	} else {
		all, err := store.AllCards()
		if err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		for _, c := range all {
			cards = append(cards, types.CardSummary{ID: c.ID, Title: c.Title})
		}
	}

	if listJSON {
		out, err := json.MarshalIndent(cards, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE")
	for _, c := range cards {
		fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Title)
	}
	return w.Flush()
}
