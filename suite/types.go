package suite

// Type is implemented by every type node of the object model.
type Type interface {
	Object
	typeNode()
}

// TypeConstraint restricts the set of types a sized or generic type
// accepts: numeric, integer, signed, unsigned, float.
type TypeConstraint struct {
	object
	Name string
}

// NamedType is a type declaration. Predefined types (bool, char,
// int8...float64) have no definition; imported types are defined by
// external code; generic types stand for polymorphic parameters.
type NamedType struct {
	object
	Name       string
	Definition Type
	Constraint *TypeConstraint
	Predefined bool
	Imported   bool
	Generic    bool
}

func (*NamedType) typeNode() {}

// SizedType is a signed or unsigned integer whose width is an expression.
type SizedType struct {
	object
	Constraint     *TypeConstraint
	SizeExpression Expression
}

func (*SizedType) typeNode() {}

// Table is an array type. Multi-dimensional arrays nest tables, the
// innermost dimension first.
type Table struct {
	object
	// Type is the cell type when it is a named-type reference.
	Type Type
	// BuildType is the cell type when it is an owned anonymous type.
	BuildType      Type
	SizeExpression Expression
}

func (*Table) typeNode() {}

// CellType returns the cell type of an array, whether referenced or owned.
func (t *Table) CellType() Type {
	if t.Type != nil {
		return t.Type
	}
	return t.BuildType
}

// Structure is a record type with named fields.
type Structure struct {
	object
	Elements []*CompositeElement
}

func (*Structure) typeNode() {}

// CompositeElement is one field of a structure.
type CompositeElement struct {
	object
	Name string
	// Type is the field type when it is a named-type reference.
	Type Type
	// BuildType is the field type when it is an owned anonymous type.
	BuildType Type
}

// FieldType returns the field type, whether referenced or owned.
func (e *CompositeElement) FieldType() Type {
	if e.Type != nil {
		return e.Type
	}
	return e.BuildType
}

// Enumeration is a type with a fixed set of named values.
type Enumeration struct {
	object
	Values []*EnumValue
}

func (*Enumeration) typeNode() {}

// EnumValue is one value of an enumeration.
type EnumValue struct {
	object
	Name string
}

// NewEnumValue creates a value owned by an enumeration.
func NewEnumValue(owner *Enumeration, name string) *EnumValue {
	v := &EnumValue{object: newObject(owner), Name: name}
	owner.Values = append(owner.Values, v)
	return v
}
