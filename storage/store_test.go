package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/modelkit-io/go-modelkit/suite"
)

func testUnit(t *testing.T) *suite.StorageUnit {
	t.Helper()
	model := suite.NewSession().NewModel("Test", "test.xscade")
	unit := suite.NewStorageUnit(model, "test.xunit", "")
	c := suite.NewConstant(model, "SIZE")
	c.Value = suite.NewConstValue(c, "8", suite.KindInt)
	suite.SetPragmaText(c, "kcg", "kcg C:name size")
	suite.SetDefinedIn(c, unit)
	return unit
}

func TestFileStoreSaveUnit(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	unit := testUnit(t)
	if err := store.SaveUnit(unit); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "test.xunit"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc struct {
		Model    string `json:"model"`
		Elements []struct {
			Kind    string            `json:"kind"`
			Name    string            `json:"name"`
			Text    string            `json:"text"`
			Pragmas map[string]string `json:"pragmas"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Model != "Test" {
		t.Errorf("model = %q", doc.Model)
	}
	if len(doc.Elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(doc.Elements))
	}
	e := doc.Elements[0]
	if e.Kind != "constant" || e.Name != "SIZE" || e.Text != "8" {
		t.Errorf("element = %+v", e)
	}
	if e.Pragmas["kcg"] != "kcg C:name size" {
		t.Errorf("pragmas = %v", e.Pragmas)
	}
}

func TestFileStoreThroughUnitSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	unit := testUnit(t)
	unit.Store = store
	unit.Modified = true
	if err := unit.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if unit.Modified {
		t.Error("modified flag not cleared")
	}
}

func TestFileStoreSaveProject(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	p := suite.NewProject("demo.xproj")
	p.Store = store
	suite.NewConfiguration(p, "DefaultConf")
	p.SetToolProp("SIMULATOR", "FILE_KIND", []string{"C"}, nil, nil, nil)
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "demo.xproj")); err != nil {
		t.Fatalf("project file: %v", err)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.db")
	store, err := NewSQLiteStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()

	unit := testUnit(t)
	if err := store.SaveUnit(unit); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Saving again upserts, it does not duplicate.
	if err := store.SaveUnit(unit); err != nil {
		t.Fatalf("second save: %v", err)
	}

	units, err := store.ListUnits()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(units) != 1 || units[0] != "test.xunit" {
		t.Errorf("units = %v", units)
	}
}

func TestSQLiteStoreSaveProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.db")
	store, err := NewSQLiteStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()

	p := suite.NewProject("demo.xproj")
	if err := store.SaveProject(p); err != nil {
		t.Fatalf("save: %v", err)
	}
}
