package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelkit-io/go-modelkit/storage"
)

func summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: modelkit summary <workspace.db | build-dir>

Display quick summary of a saved workspace: the stored units and how
many elements each carries.

Examples:
  modelkit summary workspace.db
  modelkit summary build/
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("workspace required")
	}

	target := fs.Arg(0)
	stat, err := os.Stat(target)
	if err != nil {
		return err
	}
	if stat.IsDir() {
		return summarizeDir(target)
	}
	return summarizeDB(target)
}

func summarizeDB(path string) error {
	store, err := storage.NewSQLiteStore(path, newLogger())
	if err != nil {
		return err
	}
	defer store.Close()

	units, err := store.ListUnits()
	if err != nil {
		return err
	}
	fmt.Printf("Workspace: %s\n", path)
	fmt.Printf("Units: %d\n", len(units))
	for _, u := range units {
		fmt.Printf("  %s\n", u)
	}
	return nil
}

func summarizeDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	fmt.Printf("Workspace: %s\n", dir)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xunit") && !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var doc struct {
			Model    string `json:"model"`
			Elements []struct {
				Kind string `json:"kind"`
				Name string `json:"name"`
			} `json:"elements"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		fmt.Printf("  %s (model %s, %d elements)\n", e.Name(), doc.Model, len(doc.Elements))
		for _, el := range doc.Elements {
			fmt.Printf("    %-10s %s\n", el.Kind, el.Name)
		}
	}
	return nil
}
