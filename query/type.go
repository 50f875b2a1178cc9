// Package query answers structural questions about existing model
// elements, mainly along type alias chains.
package query

import (
	"github.com/modelkit-io/go-modelkit/suite"
)

// GetTypeName returns the name of a type declaration, or the empty
// string for anonymous types.
func GetTypeName(t suite.Type) string {
	if nt, ok := t.(*suite.NamedType); ok {
		return nt.Name
	}
	return ""
}

// GetLeafType resolves a chain of aliases to the type that actually
// defines the structure: a table, a structure, an enumeration, a sized
// type, or a named type without definition (predefined, imported,
// generic).
func GetLeafType(t suite.Type) suite.Type {
	for {
		nt, ok := t.(*suite.NamedType)
		if !ok || nt.Definition == nil {
			return t
		}
		t = nt.Definition
	}
}

// GetLeafAlias returns the last named type of an alias chain, the one
// whose definition is not a named type itself. Returns nil when the
// type is anonymous.
func GetLeafAlias(t suite.Type) *suite.NamedType {
	var last *suite.NamedType
	for {
		nt, ok := t.(*suite.NamedType)
		if !ok {
			return last
		}
		last = nt
		if nt.Definition == nil {
			return last
		}
		t = nt.Definition
	}
}

// GetCellType returns the cell type of an array, resolving aliases.
// Returns nil when the type is not an array.
func GetCellType(t suite.Type) suite.Type {
	if table, ok := GetLeafType(t).(*suite.Table); ok {
		return table.CellType()
	}
	return nil
}

// IsArray reports whether a type resolves to an array.
func IsArray(t suite.Type) bool {
	_, ok := GetLeafType(t).(*suite.Table)
	return ok
}

// IsStructure reports whether a type resolves to a record.
func IsStructure(t suite.Type) bool {
	_, ok := GetLeafType(t).(*suite.Structure)
	return ok
}

// IsEnum reports whether a type resolves to an enumeration.
func IsEnum(t suite.Type) bool {
	_, ok := GetLeafType(t).(*suite.Enumeration)
	return ok
}

// IsPredefined reports whether a type resolves to a predefined type.
func IsPredefined(t suite.Type) bool {
	nt, ok := GetLeafType(t).(*suite.NamedType)
	return ok && nt.Predefined
}

// IsImported reports whether a type resolves to an imported type.
func IsImported(t suite.Type) bool {
	nt, ok := GetLeafType(t).(*suite.NamedType)
	return ok && nt.Imported
}

// IsGeneric reports whether a type resolves to a polymorphic
// parameter.
func IsGeneric(t suite.Type) bool {
	nt, ok := GetLeafType(t).(*suite.NamedType)
	return ok && nt.Generic
}

// IsScalar reports whether a type resolves to a value without
// structure: a predefined type, a sized integer, or an enumeration.
func IsScalar(t suite.Type) bool {
	switch leaf := GetLeafType(t).(type) {
	case *suite.NamedType:
		return leaf.Predefined
	case *suite.SizedType, *suite.Enumeration:
		return true
	}
	return false
}
