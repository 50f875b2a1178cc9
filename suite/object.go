// Package suite is the binding to the modeling suite's object model.
//
// The suite owns the in-memory design of a model: declarations, types,
// expressions, diagrams, state machines, and the storage units they are
// persisted in. The create package populates these objects; this package
// never builds trees on its own.
package suite

import (
	"fmt"

	"github.com/google/uuid"
)

// Object is implemented by every element of the suite's object model.
type Object interface {
	// OID returns the stable identifier of the object.
	OID() uuid.UUID

	// Owner returns the owning object, or nil for roots.
	Owner() Object

	// DefinedIn returns the storage unit the object is persisted in.
	// The unit is resolved by following the owner chain when the object
	// is not directly attached to one.
	DefinedIn() *StorageUnit

	// Pragmas returns the pragmas attached to the object.
	Pragmas() []*Pragma

	base() *object
}

// Referenceable is implemented by declarations an ExprId can point to:
// constants, sensors, and local variables.
type Referenceable interface {
	Object
	ReferenceName() string
	referenceable()
}

// object is the common part of every model element.
type object struct {
	oid     uuid.UUID
	owner   Object
	unit    *StorageUnit
	pragmas []*Pragma
}

func newObject(owner Object) object {
	return object{oid: uuid.New(), owner: owner}
}

func (o *object) OID() uuid.UUID { return o.oid }

func (o *object) Owner() Object { return o.owner }

func (o *object) base() *object { return o }

// DefinedIn resolves the storage unit by walking the owner chain.
func (o *object) DefinedIn() *StorageUnit {
	if o.unit != nil {
		return o.unit
	}
	for owner := o.owner; owner != nil; owner = owner.Owner() {
		if u := owner.base().unit; u != nil {
			return u
		}
	}
	return nil
}

func (o *object) Pragmas() []*Pragma { return o.pragmas }

// SetOwner reparents an object. Used by the builders when a constructed
// element is attached to its final owner.
func SetOwner(obj, owner Object) {
	obj.base().owner = owner
}

// SetDefinedIn attaches an object directly to a storage unit.
func SetDefinedIn(obj Object, unit *StorageUnit) {
	obj.base().unit = unit
	if unit != nil {
		unit.addElement(obj)
	}
}

// Set assigns the association end named role on src to target.
// This is the single entry point used when flushing deferred links;
// an unknown role or an incompatible target is a defect in the caller.
func Set(src Object, role string, target Object) error {
	switch s := src.(type) {
	case *ExprId:
		if role == "reference" {
			ref, ok := target.(Referenceable)
			if !ok {
				return fmt.Errorf("suite: %T is not referenceable", target)
			}
			s.Reference = ref
			return nil
		}
	case *ExprType:
		if role == "type" {
			t, ok := target.(Type)
			if !ok {
				return fmt.Errorf("suite: %T is not a type", target)
			}
			s.Type = t
			return nil
		}
	case *ExprCall:
		if role == "operator" {
			op, ok := target.(*Operator)
			if !ok {
				return fmt.Errorf("suite: %T is not an operator", target)
			}
			s.Operator = op
			return nil
		}
	case *Constant:
		if role == "type" {
			return setType(&s.Type, target)
		}
	case *Sensor:
		if role == "type" {
			return setType(&s.Type, target)
		}
	case *LocalVariable:
		if role == "type" {
			return setType(&s.Type, target)
		}
	case *NamedType:
		if role == "definition" {
			return setType(&s.Definition, target)
		}
		if role == "constraint" {
			c, ok := target.(*TypeConstraint)
			if !ok {
				return fmt.Errorf("suite: %T is not a type constraint", target)
			}
			s.Constraint = c
			return nil
		}
	case *Table:
		if role == "type" {
			return setType(&s.Type, target)
		}
	case *CompositeElement:
		if role == "type" {
			return setType(&s.Type, target)
		}
	case *Transition:
		if role == "target" {
			st, ok := target.(*State)
			if !ok {
				return fmt.Errorf("suite: %T is not a state", target)
			}
			s.Target = st
			return nil
		}
	case *Operator:
		if role == "specialized" {
			op, ok := target.(*Operator)
			if !ok {
				return fmt.Errorf("suite: %T is not an operator", target)
			}
			s.Specialized = op
			return nil
		}
	}
	return fmt.Errorf("suite: no role %q on %T", role, src)
}

func setType(dst *Type, target Object) error {
	t, ok := target.(Type)
	if !ok {
		return fmt.Errorf("suite: %T is not a type", target)
	}
	*dst = t
	return nil
}
