// Package create builds model object graphs from compact tree
// grammars: expression trees, type trees, declarations, data
// definitions, and state machines.
//
// All construction goes through a Session. Trees themselves are pure
// values; the session owns the pending-link buffer, the modified-unit
// set, and the predefined-type caches, so independent construction
// pipelines can coexist in one process as long as each session is used
// from a single goroutine.
package create

import (
	"fmt"

	"github.com/modelkit-io/go-modelkit/suite"
)

// pendingLink is one deferred association: src.role = target, applied
// by Commit once the owning construction unit is structurally complete.
type pendingLink struct {
	src    suite.Object
	role   string
	target suite.Object
}

// Session is one logical construction pipeline.
type Session struct {
	// Store is attached to every storage unit the session creates.
	Store suite.UnitStore

	pending     []pendingLink
	modified    map[*suite.StorageUnit]struct{}
	predefined  map[string]*suite.NamedType
	constraints map[string]*suite.TypeConstraint
}

// NewSession creates an empty construction session.
func NewSession() *Session {
	return &Session{
		modified:    make(map[*suite.StorageUnit]struct{}),
		predefined:  make(map[string]*suite.NamedType),
		constraints: make(map[string]*suite.TypeConstraint),
	}
}

// addPendingLink buffers an association to be set once the owning
// construction unit is built. Links that may point sideways to an
// independently owned object are always deferred, so a failed
// construction never leaves a half-linked reference inside an
// otherwise valid object.
func (s *Session) addPendingLink(src suite.Object, role string, target suite.Object) {
	s.pending = append(s.pending, pendingLink{src: src, role: role, target: target})
}

// Commit applies the buffered links in insertion order and clears the
// buffer unconditionally. A failing assignment indicates a
// construction-logic defect, not a recoverable user error. Calling
// Commit with an empty buffer is a no-op.
func (s *Session) Commit() error {
	links := s.pending
	s.pending = nil
	for _, l := range links {
		if err := suite.Set(l.src, l.role, l.target); err != nil {
			return fmt.Errorf("create: commit: %w", err)
		}
	}
	return nil
}

// PendingLinks returns the number of buffered links.
func (s *Session) PendingLinks() int { return len(s.pending) }

// MarkModified records the storage unit defining an object as touched.
// The unit is saved, and removed from the set, by the next SaveAll.
func (s *Session) MarkModified(obj suite.Object) {
	unit := obj.DefinedIn()
	if unit == nil {
		return
	}
	unit.Modified = true
	s.modified[unit] = struct{}{}
}

// ModifiedUnits returns the number of units touched since the last
// successful SaveAll.
func (s *Session) ModifiedUnits() int { return len(s.modified) }

// SaveAll persists every touched storage unit. The save loop is not
// transactional: a failing unit aborts the loop, and each unit leaves
// the set as soon as it is saved, so a retry after a failure only
// saves the remaining units.
func (s *Session) SaveAll() error {
	for unit := range s.modified {
		if err := unit.Save(); err != nil {
			return fmt.Errorf("create: save %s: %w", unit.FileName, err)
		}
		delete(s.modified, unit)
	}
	return nil
}

// predefinedType resolves a predefined type by name in the session
// owning the context object, caching the result.
func (s *Session) predefinedType(context suite.Object, name string) (*suite.NamedType, error) {
	if t, ok := s.predefined[name]; ok {
		return t, nil
	}
	model := suite.OwnerModel(context)
	if model == nil {
		return nil, fmt.Errorf("create: no model owns %T", context)
	}
	t := model.Session.FindPredefinedType(name)
	s.predefined[name] = t
	return t, nil
}

// typeConstraint resolves a type constraint by name in the session
// owning the context object, caching the result.
func (s *Session) typeConstraint(context suite.Object, name string) (*suite.TypeConstraint, error) {
	if c, ok := s.constraints[name]; ok {
		return c, nil
	}
	model := suite.OwnerModel(context)
	if model == nil {
		return nil, fmt.Errorf("create: no model owns %T", context)
	}
	c := model.Session.FindTypeConstraint(name)
	s.constraints[name] = c
	return c, nil
}

// newUnit adds a storage unit to a model, attaching the session store,
// or returns the existing unit for the path.
func (s *Session) newUnit(model *suite.Model, path, persistAs string) *suite.StorageUnit {
	unit := suite.NewStorageUnit(model, path, persistAs)
	if unit.Store == nil {
		unit.Store = s.Store
	}
	unit.Modified = true
	s.modified[unit] = struct{}{}
	return unit
}
