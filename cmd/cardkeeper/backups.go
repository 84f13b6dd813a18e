// Backups command lists the retained store snapshots.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cardkeeper/internal/paths"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List store backups",
	Long: `Backups lists the retained snapshots of the card store, newest
first. A snapshot is taken after every successful mutation and before
every deletion.`,
	RunE: runBackups,
}

func runBackups(cmd *cobra.Command, args []string) error {
	dir := paths.BackupsDir(appCfg.DataDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No backups yet")
			return nil
		}
		return fmt.Errorf("read backups: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	if len(names) == 0 {
		fmt.Println("No backups yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE")
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\n", name, info.Size())
	}
	return w.Flush()
}
