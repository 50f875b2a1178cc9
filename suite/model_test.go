package suite

import (
	"errors"
	"testing"
)

func TestDefaultFile(t *testing.T) {
	m := NewSession().NewModel("Test", "demo.xscade")
	if got := m.DefaultFile(); got != "demo.xunit" {
		t.Errorf("got %q, want demo.xunit", got)
	}
}

func TestStorageUnitDedup(t *testing.T) {
	m := NewSession().NewModel("Test", "demo.xscade")
	a := NewStorageUnit(m, "sizes.xunit", "")
	b := NewStorageUnit(m, "sizes.xunit", "")
	if a != b {
		t.Error("same path produced two units")
	}
	if len(m.StorageUnits) != 1 {
		t.Errorf("units = %d, want 1", len(m.StorageUnits))
	}
}

func TestDefinedInFollowsOwners(t *testing.T) {
	m := NewSession().NewModel("Test", "demo.xscade")
	unit := NewStorageUnit(m, "demo.xunit", "")
	p := NewPackage(m, "pkg")
	SetDefinedIn(p, unit)
	c := NewConstant(p, "SIZE")
	if c.DefinedIn() != unit {
		t.Error("constant did not inherit the package unit")
	}
}

func TestOwnerModel(t *testing.T) {
	m := NewSession().NewModel("Test", "demo.xscade")
	p := NewPackage(m, "pkg")
	c := NewConstant(p, "SIZE")
	if OwnerModel(c) != m {
		t.Error("owner model not found through the package")
	}
	detached := NewConstant(nil, "X")
	if OwnerModel(detached) != nil {
		t.Error("detached object reported an owner model")
	}
}

func TestSaveWithoutStore(t *testing.T) {
	m := NewSession().NewModel("Test", "demo.xscade")
	unit := NewStorageUnit(m, "demo.xunit", "")
	if err := unit.Save(); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestPredefinedTypeSingleton(t *testing.T) {
	s := NewSession()
	if s.FindPredefinedType("int32") != s.FindPredefinedType("int32") {
		t.Error("predefined type is not a singleton")
	}
	if !s.FindPredefinedType("bool").Predefined {
		t.Error("predefined flag not set")
	}
}

func TestProjectToolProps(t *testing.T) {
	p := NewProject("demo.xproj")
	def := []string{"default"}

	if got := p.GetToolProp("kcg", "target", def, nil, nil); got[0] != "default" {
		t.Errorf("absent prop = %v", got)
	}
	p.SetToolProp("kcg", "target", []string{"arm"}, def, nil, nil)
	if got := p.GetToolProp("kcg", "target", def, nil, nil); got[0] != "arm" {
		t.Errorf("prop = %v", got)
	}

	// Setting the default removes the stored prop.
	p.SetToolProp("kcg", "target", def, def, nil, nil)
	if len(p.Props) != 0 {
		t.Errorf("props = %d, want 0", len(p.Props))
	}
}

func TestProjectPropsScopedByConfiguration(t *testing.T) {
	p := NewProject("demo.xproj")
	debug := NewConfiguration(p, "Debug")
	release := NewConfiguration(p, "Release")

	p.SetToolProp("kcg", "opt", []string{"O0"}, nil, debug, nil)
	p.SetToolProp("kcg", "opt", []string{"O2"}, nil, release, nil)

	if got := p.GetToolProp("kcg", "opt", nil, debug, nil); got[0] != "O0" {
		t.Errorf("debug = %v", got)
	}
	if got := p.GetToolProp("kcg", "opt", nil, release, nil); got[0] != "O2" {
		t.Errorf("release = %v", got)
	}
}
