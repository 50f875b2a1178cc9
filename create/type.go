package create

import (
	"strings"

	"github.com/modelkit-io/go-modelkit/suite"
)

// TypeTree is a validated type to be attached to a declaration.
// References to existing or predefined types stay references; sized
// integers, tables, and structures become anonymous types owned by the
// declaration.
type TypeTree interface {
	typeTree()
}

// existingTypeTree references a type declared in the model.
type existingTypeTree struct {
	typ suite.Type
}

// predefTypeTree references a predefined type by name.
type predefTypeTree struct {
	name string
}

// sizedTypeTree is an anonymous signed or unsigned integer type whose
// width is an expression.
type sizedTypeTree struct {
	signed bool
	size   ExpressionTree
}

// tableTypeTree is an anonymous array type.
type tableTypeTree struct {
	cell TypeTree
	size ExpressionTree
}

type structTypeField struct {
	name string
	typ  TypeTree
}

// structTypeTree is an anonymous record type.
type structTypeTree struct {
	fields []structTypeField
}

func (*existingTypeTree) typeTree() {}
func (*predefTypeTree) typeTree()   {}
func (*sizedTypeTree) typeTree()    {}
func (*tableTypeTree) typeTree()    {}
func (*structTypeTree) typeTree()   {}

// normalizeTypeTree turns a loose item into a validated type tree:
// trees pass through, type objects become references, and names become
// predefined type references. Polymorphic placeholders are rejected,
// concrete declarations only.
func normalizeTypeTree(context string, item any) (TypeTree, error) {
	switch x := item.(type) {
	case nil:
		return nil, syntaxError(context, nil)
	case TypeTree:
		return x, nil
	case suite.Type:
		return &existingTypeTree{typ: x}, nil
	case string:
		if strings.HasPrefix(x, "'") {
			return nil, polymorphicError(context, x)
		}
		if !isIdent(x) {
			return nil, identifierError(context, x)
		}
		return &predefTypeTree{name: x}, nil
	}
	return nil, syntaxError(context, item)
}

// Sized builds an anonymous integer type of the given signedness whose
// width is an expression.
func Sized(signed bool, size any) (TypeTree, error) {
	sz, err := normalizeTree("type width", size)
	if err != nil {
		return nil, err
	}
	return &sizedTypeTree{signed: signed, size: sz}, nil
}

// TableType builds an anonymous array type. Multi-dimensional arrays
// nest table trees, the innermost dimension first.
func TableType(cell, size any) (TypeTree, error) {
	c, err := normalizeTypeTree("table cell", cell)
	if err != nil {
		return nil, err
	}
	sz, err := normalizeTree("table size", size)
	if err != nil {
		return nil, err
	}
	return &tableTypeTree{cell: c, size: sz}, nil
}

// StructureType builds an anonymous record type from a flat list of
// field name and type pairs.
func StructureType(pairs ...any) (TypeTree, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyTree
	}
	if len(pairs)%2 != 0 {
		return nil, syntaxError("structure fields", len(pairs))
	}
	fields := make([]structTypeField, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return nil, syntaxError("field name", pairs[i])
		}
		if !isIdent(name) {
			return nil, identifierError("field name", name)
		}
		typ, err := normalizeTypeTree("field type", pairs[i+1])
		if err != nil {
			return nil, err
		}
		fields = append(fields, structTypeField{name: name, typ: typ})
	}
	return &structTypeTree{fields: fields}, nil
}

// linkType attaches a type tree to an owner: references to existing
// and predefined types become deferred links on role, anonymous types
// are built immediately and handed to assign as owned nodes.
func (s *Session) linkType(tree TypeTree, owner suite.Object, role string, assign func(suite.Type)) error {
	switch t := tree.(type) {
	case *existingTypeTree:
		s.addPendingLink(owner, role, t.typ)
		return nil
	case *predefTypeTree:
		pt, err := s.predefinedType(owner, t.name)
		if err != nil {
			return err
		}
		s.addPendingLink(owner, role, pt)
		return nil
	case *sizedTypeTree:
		name := "unsigned"
		if t.signed {
			name = "signed"
		}
		constraint, err := s.typeConstraint(owner, name)
		if err != nil {
			return err
		}
		node := suite.NewSizedType(owner, constraint, nil)
		node.SizeExpression = s.buildExpr(t.size, node)
		assign(node)
		return nil
	case *tableTypeTree:
		node := suite.NewTable(owner, nil)
		node.SizeExpression = s.buildExpr(t.size, node)
		if err := s.linkType(t.cell, node, "type", func(bt suite.Type) { node.BuildType = bt }); err != nil {
			return err
		}
		assign(node)
		return nil
	case *structTypeTree:
		node := suite.NewStructure(owner)
		for _, f := range t.fields {
			elem := suite.NewCompositeElement(node, f.name)
			err := s.linkType(f.typ, elem, "type", func(bt suite.Type) { elem.BuildType = bt })
			if err != nil {
				return err
			}
		}
		assign(node)
		return nil
	}
	return syntaxError("type tree", tree)
}
