package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/valpere/gemtext/internal/history"
)

func useHistoryPath(t *testing.T, path string) {
	t.Helper()
	prev := v.GetString("history.path")
	v.Set("history.path", path)
	t.Cleanup(func() { v.Set("history.path", prev) })
}

func runHistory(t *testing.T, c *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	defer c.SetOut(nil)
	if err := c.RunE(c, args); err != nil {
		t.Fatalf("%s: unexpected error: %v", c.Name(), err)
	}
	return out.String()
}

func TestHistory_MissingDatabaseNotCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "gemtext.db")
	useHistoryPath(t, path)

	for _, c := range []*cobra.Command{historyListCmd, historyStatsCmd, historyClearCmd} {
		if got := runHistory(t, c); !strings.Contains(got, "No entries in history.") {
			t.Errorf("%s: expected empty message, got %q", c.Name(), got)
		}
	}
	if got := runHistory(t, historyDeleteCmd, "some-id"); !strings.Contains(got, "No entries in history.") {
		t.Errorf("delete: expected empty message, got %q", got)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected %s not to be created, stat err: %v", dir, err)
	}
}

func TestHistory_ListExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gemtext.db")
	db, err := history.New(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	err = db.Save(context.Background(), &history.Entry{
		Mode:        "translation",
		Option:      "Spanish",
		SourceText:  "hello world",
		Output:      "hola mundo",
		Model:       "gemini-2.0-flash",
		Temperature: 0.7,
		MaxTokens:   256,
	})
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	db.Close()

	useHistoryPath(t, path)
	historyLimit, historySearch = 20, ""

	got := runHistory(t, historyListCmd)
	if !strings.Contains(got, "hello world") || !strings.Contains(got, "Spanish") {
		t.Errorf("expected recorded entry in listing, got %q", got)
	}
}
