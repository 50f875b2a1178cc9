package suite

import (
	"errors"
	"path/filepath"
)

// ErrNoStore is returned when saving a storage unit that has no store attached.
var ErrNoStore = errors.New("suite: storage unit has no store")

// UnitStore persists storage units. Implementations live in the storage
// package; the suite only calls SaveUnit.
type UnitStore interface {
	SaveUnit(unit *StorageUnit) error
}

// Session is the root of a loaded design: it owns the models and the
// tables of predefined types and type constraints.
type Session struct {
	Models []*Model

	predefined  map[string]*NamedType
	constraints map[string]*TypeConstraint
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		predefined:  make(map[string]*NamedType),
		constraints: make(map[string]*TypeConstraint),
	}
}

// NewModel creates a model in the session with a default storage unit
// derived from the given file name.
func (s *Session) NewModel(name, fileName string) *Model {
	m := &Model{
		object:  newObject(nil),
		Name:    name,
		Session: s,
	}
	m.FileName = fileName
	s.Models = append(s.Models, m)
	return m
}

// FindPredefinedType returns the predefined type with the given name,
// creating it on first use. Predefined types are session singletons.
func (s *Session) FindPredefinedType(name string) *NamedType {
	t, ok := s.predefined[name]
	if !ok {
		t = &NamedType{object: newObject(nil), Name: name, Predefined: true}
		s.predefined[name] = t
	}
	return t
}

// FindTypeConstraint returns the type constraint with the given name,
// creating it on first use.
func (s *Session) FindTypeConstraint(name string) *TypeConstraint {
	c, ok := s.constraints[name]
	if !ok {
		c = &TypeConstraint{object: newObject(nil), Name: name}
		s.constraints[name] = c
	}
	return c
}

// Model is a top-level design. Its declarations are grouped in storage
// units, one per persistence file.
type Model struct {
	object
	Name     string
	Session  *Session
	FileName string

	StorageUnits []*StorageUnit
	Packages     []*Package
	Types        []*NamedType
	Constants    []*Constant
	Sensors      []*Sensor
	Operators    []*Operator
}

// DefaultFile returns the path of the unit storing model-level
// declarations that are not routed to a dedicated file.
func (m *Model) DefaultFile() string {
	ext := filepath.Ext(m.FileName)
	return m.FileName[:len(m.FileName)-len(ext)] + ".xunit"
}

// OwnerModel returns the model owning an object, following the owner
// chain. Returns nil for detached objects such as predefined types.
func OwnerModel(obj Object) *Model {
	if m, ok := obj.(*Model); ok {
		return m
	}
	if u := obj.DefinedIn(); u != nil {
		return u.Model
	}
	for owner := obj.Owner(); owner != nil; owner = owner.Owner() {
		if m, ok := owner.(*Model); ok {
			return m
		}
	}
	return nil
}

// StorageUnit is a persistence boundary: one file grouping declarations.
type StorageUnit struct {
	object
	Model     *Model
	FileName  string
	PersistAs string
	Modified  bool

	Store    UnitStore
	Elements []Object
}

// NewStorageUnit creates a storage unit in a model, or returns the
// existing unit with the same file name.
func NewStorageUnit(m *Model, fileName, persistAs string) *StorageUnit {
	for _, u := range m.StorageUnits {
		if samePath(u.FileName, fileName) {
			return u
		}
	}
	u := &StorageUnit{
		object:    newObject(m),
		Model:     m,
		FileName:  fileName,
		PersistAs: persistAs,
	}
	m.StorageUnits = append(m.StorageUnits, u)
	return u
}

// IsRoot reports whether the unit is the model's default file.
func (u *StorageUnit) IsRoot() bool {
	return samePath(u.FileName, u.Model.DefaultFile())
}

// Save persists the unit through its store and clears the modified flag.
func (u *StorageUnit) Save() error {
	if u.Store == nil {
		return ErrNoStore
	}
	if err := u.Store.SaveUnit(u); err != nil {
		return err
	}
	u.Modified = false
	return nil
}

func (u *StorageUnit) addElement(obj Object) {
	for _, e := range u.Elements {
		if e == obj {
			return
		}
	}
	u.Elements = append(u.Elements, obj)
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return a == b
	}
	return aa == bb
}

// Package is a namespace for declarations. Its owner is a model or
// another package.
type Package struct {
	object
	Name string

	Packages  []*Package
	Types     []*NamedType
	Constants []*Constant
	Sensors   []*Sensor
	Operators []*Operator
}

// NewPackage creates a package owned by a model or package.
func NewPackage(owner Object, name string) *Package {
	p := &Package{object: newObject(owner), Name: name}
	switch o := owner.(type) {
	case *Model:
		o.Packages = append(o.Packages, p)
	case *Package:
		o.Packages = append(o.Packages, p)
	}
	return p
}
