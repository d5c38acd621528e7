package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput_Args(t *testing.T) {
	inputFile = ""
	got, err := readInput(strings.NewReader("ignored"), []string{"hello", "world"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("expected 'hello world', got %q", got)
	}
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0644); err != nil {
		t.Fatal(err)
	}
	inputFile = path
	defer func() { inputFile = "" }()

	got, err := readInput(strings.NewReader(""), []string{"ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "line one\nline two\n" {
		t.Errorf("file content must be passed verbatim, got %q", got)
	}
}

func TestReadInput_MissingFile(t *testing.T) {
	inputFile = filepath.Join(t.TempDir(), "missing.txt")
	defer func() { inputFile = "" }()

	if _, err := readInput(strings.NewReader(""), nil); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestReadInput_Stdin(t *testing.T) {
	inputFile = ""
	got, err := readInput(strings.NewReader("piped text\n"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "piped text" {
		t.Errorf("expected 'piped text', got %q", got)
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("short", 40); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
	if got := snippet("ááááááááááá", 8); got != "ááááá..." {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
}
