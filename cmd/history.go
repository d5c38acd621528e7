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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/gemtext/internal/history"
)

var (
	historyLimit  int
	historySearch string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the request history",
	Long: `List, search and clear the SQLite journal written when history is enabled
(--history, history.enabled or GEMTEXT_HISTORY_ENABLED).`,
}

var errNoHistory = errors.New("no history database")

// openHistory opens an existing history database. It never creates one, so
// inspecting history with recording disabled leaves the disk untouched.
func openHistory() (*history.Store, error) {
	path := v.GetString("history.path")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, errNoHistory
	}
	db, err := history.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// withHistory runs fn against the history database, printing the empty
// message instead when none has been written yet.
func withHistory(cmd *cobra.Command, fn func(db *history.Store) error) error {
	db, err := openHistory()
	if errors.Is(err, errNoHistory) {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries in history.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(db *history.Store) error {
			ctx := context.Background()
			var (
				entries []history.Entry
				err     error
			)
			if historySearch != "" {
				entries, err = db.Search(ctx, historySearch)
			} else {
				entries, err = db.List(ctx, historyLimit)
			}
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries in history.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODE\tOPTION\tMODEL\tTEMP\tMAX\tLATENCY\tCREATED\tTEXT")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%d\t%dms\t%s\t%s\n",
					e.ID, e.Mode, e.Option, e.Model, e.Temperature, e.MaxTokens,
					e.LatencyMs, e.CreatedAt.Format("2006-01-02 15:04"), snippet(e.SourceText, 40))
			}
			return w.Flush()
		})
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(db *history.Store) error {
			stats, err := db.Stats(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total requests: %d\n", stats.Total)
			fmt.Fprintf(out, "Translations:   %d\n", stats.Translations)
			fmt.Fprintf(out, "Enhancements:   %d\n", stats.Enhancements)
			return nil
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a history entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(db *history.Store) error {
			if err := db.Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry: %s\n", args[0])
			return nil
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(db *history.Store) error {
			n, err := db.Clear(context.Background())
			if err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries.\n", n)
			return nil
		})
	},
}

func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	historyListCmd.Flags().StringVar(&historySearch, "search", "", "Only show entries whose text contains this term")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
