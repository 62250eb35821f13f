/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/eztrans/internal/store"
)

var listMode string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the translation memory",
	Long: `The translation memory keeps one entry per source text and translator
mode (wide or a narrow entry point, with or without escaping). Entries are
matched on the NFC form of the text.`,
}

// withStore opens the translation memory for the duration of run.
func withStore(run func(ctx context.Context, db *store.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		return run(cmd.Context(), db, args)
	}
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, most recently used first",
	RunE: withStore(func(ctx context.Context, db *store.Store, _ []string) error {
		entries, err := db.ListMemory(ctx)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMODE\tUSED\tLAST USED\tINVALID\tSOURCE\tTRANSLATION")
		shown := 0
		for _, e := range entries {
			if listMode != "" && e.Mode != listMode {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%v\t%s\t%s\n",
				e.ID, e.Mode, e.UsageCount, e.LastUsed.Format("2006-01-02 15:04"),
				e.Invalidated, snippet(e.SourceText, 30), snippet(e.TranslatedText, 30))
			shown++
		}
		if shown == 0 {
			fmt.Println("Translation memory is empty.")
			return nil
		}
		return w.Flush()
	}),
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show entry and usage counts",
	RunE: withStore(func(ctx context.Context, db *store.Store, _ []string) error {
		stats, err := db.Stats(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Entries:\t%d\n", stats.TotalEntries)
		fmt.Fprintf(w, "Active:\t%d\n", stats.ActiveEntries)
		fmt.Fprintf(w, "Invalidated:\t%d\n", stats.InvalidEntries)
		fmt.Fprintf(w, "Hits + stores:\t%d\n", stats.TotalUsage)
		return w.Flush()
	}),
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove one entry",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, db *store.Store, args []string) error {
		if err := db.DeleteMemory(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	}),
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <id>",
	Short: "Keep an entry but stop serving it",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, db *store.Store, args []string) error {
		if err := db.InvalidateMemory(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to invalidate entry: %w", err)
		}
		fmt.Printf("Invalidated %s\n", args[0])
		return nil
	}),
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every entry",
	RunE: withStore(func(ctx context.Context, db *store.Store, _ []string) error {
		n, err := db.ClearMemory(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear translation memory: %w", err)
		}
		fmt.Printf("Removed %d entries.\n", n)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.PersistentFlags().String("db", "./data/eztrans.db", "Translation memory database path")
	cacheListCmd.Flags().StringVar(&listMode, "mode", "", "Only list entries for this translator mode, e.g. wide+escape")

	cacheCmd.AddCommand(cacheListCmd, cacheStatsCmd, cacheDeleteCmd, cacheInvalidateCmd, cacheClearCmd)
}

// snippet shortens s to at most n runes.
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
