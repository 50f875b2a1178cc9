package create

import (
	"github.com/modelkit-io/go-modelkit/suite"
)

// Var declares one variable: a name and its type. The type accepts
// whatever normalizeTypeTree accepts.
type Var struct {
	Name string
	Type any
}

// routeUnit resolves the storage unit for a new declaration: an
// explicit path creates or reuses a dedicated unit, otherwise the
// declaration inherits the unit of its owner, falling back to the
// model's default file.
func (s *Session) routeUnit(owner suite.Object, path string) (*suite.StorageUnit, error) {
	model := suite.OwnerModel(owner)
	if model == nil {
		return nil, &KindError{Context: "declaration", Param: "owner", Expected: "Model or Package", Actual: owner}
	}
	if path != "" {
		return s.newUnit(model, path, ""), nil
	}
	if unit := owner.DefinedIn(); unit != nil {
		return unit, nil
	}
	return s.newUnit(model, model.DefaultFile(), ""), nil
}

// place registers a declaration in its owner's collections and in the
// routed storage unit.
func (s *Session) place(owner, decl suite.Object, path string) error {
	unit, err := s.routeUnit(owner, path)
	if err != nil {
		return err
	}
	if err := suite.AddDeclaration(owner, decl); err != nil {
		return err
	}
	suite.SetDefinedIn(decl, unit)
	s.MarkModified(decl)
	return nil
}

// CreatePackage creates a package in a model or package. A non-empty
// path routes the package content to a dedicated file.
func (s *Session) CreatePackage(owner suite.Object, name, path string) (*suite.Package, error) {
	if !isIdent(name) {
		return nil, identifierError("package name", name)
	}
	model := suite.OwnerModel(owner)
	if model == nil {
		return nil, &KindError{Context: "package", Param: "owner", Expected: "Model or Package", Actual: owner}
	}
	p := suite.NewPackage(owner, name)
	unit, err := s.routeUnit(owner, path)
	if err != nil {
		return nil, err
	}
	suite.SetDefinedIn(p, unit)
	s.MarkModified(p)
	return p, nil
}

// CreateNamedType creates a type declaration with the given definition.
func (s *Session) CreateNamedType(owner suite.Object, name string, definition any, path string) (*suite.NamedType, error) {
	if !isIdent(name) {
		return nil, identifierError("type name", name)
	}
	tree, err := normalizeTypeTree("type definition", definition)
	if err != nil {
		return nil, err
	}
	nt := suite.NewNamedType(owner, name)
	if err := s.place(owner, nt, path); err != nil {
		return nil, err
	}
	err = s.linkType(tree, nt, "definition", func(bt suite.Type) { nt.Definition = bt })
	if err != nil {
		return nil, err
	}
	return nt, nil
}

// CreateImportedType creates a type whose definition lives in external
// code.
func (s *Session) CreateImportedType(owner suite.Object, name, path string) (*suite.NamedType, error) {
	if !isIdent(name) {
		return nil, identifierError("type name", name)
	}
	nt := suite.NewNamedType(owner, name)
	nt.Imported = true
	if err := s.place(owner, nt, path); err != nil {
		return nil, err
	}
	return nt, nil
}

// CreateEnumeration creates a type defined as an enumeration of the
// given values.
func (s *Session) CreateEnumeration(owner suite.Object, name string, values []string, path string) (*suite.NamedType, error) {
	if !isIdent(name) {
		return nil, identifierError("enumeration name", name)
	}
	for _, v := range values {
		if !isIdent(v) {
			return nil, identifierError("enumeration value", v)
		}
	}
	nt := suite.NewNamedType(owner, name)
	enum := suite.NewEnumeration(nt)
	for _, v := range values {
		suite.NewEnumValue(enum, v)
	}
	nt.Definition = enum
	if err := s.place(owner, nt, path); err != nil {
		return nil, err
	}
	return nt, nil
}

// AddEnumerationValues appends values to an enumeration type.
func (s *Session) AddEnumerationValues(t *suite.NamedType, values ...string) ([]*suite.EnumValue, error) {
	enum, err := checkObject[*suite.Enumeration](t.Definition, "enumeration", "type", "Enumeration")
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if !isIdent(v) {
			return nil, identifierError("enumeration value", v)
		}
	}
	added := make([]*suite.EnumValue, len(values))
	for i, v := range values {
		added[i] = suite.NewEnumValue(enum, v)
	}
	s.MarkModified(t)
	return added, nil
}

// SetTypeConstraint constrains a generic type parameter to a category
// of types: numeric, integer, signed, unsigned, or float.
func (s *Session) SetTypeConstraint(t *suite.NamedType, name string) error {
	if !isIdent(name) {
		return identifierError("constraint name", name)
	}
	c, err := s.typeConstraint(t, name)
	if err != nil {
		return err
	}
	s.addPendingLink(t, "constraint", c)
	s.MarkModified(t)
	return nil
}

// CreateConstant creates a constant with the given type and value.
func (s *Session) CreateConstant(owner suite.Object, name string, typ, value any, path string) (*suite.Constant, error) {
	if !isIdent(name) {
		return nil, identifierError("constant name", name)
	}
	tt, err := normalizeTypeTree("constant type", typ)
	if err != nil {
		return nil, err
	}
	vt, err := normalizeTree("constant value", value)
	if err != nil {
		return nil, err
	}
	c := suite.NewConstant(owner, name)
	if err := s.place(owner, c, path); err != nil {
		return nil, err
	}
	if err := s.linkType(tt, c, "type", func(bt suite.Type) { c.BuildType = bt }); err != nil {
		return nil, err
	}
	c.Value = s.buildExpr(vt, c)
	return c, nil
}

// CreateImportedConstant creates a constant whose value lives in
// external code.
func (s *Session) CreateImportedConstant(owner suite.Object, name string, typ any, path string) (*suite.Constant, error) {
	if !isIdent(name) {
		return nil, identifierError("constant name", name)
	}
	tt, err := normalizeTypeTree("constant type", typ)
	if err != nil {
		return nil, err
	}
	c := suite.NewConstant(owner, name)
	c.Imported = true
	if err := s.place(owner, c, path); err != nil {
		return nil, err
	}
	if err := s.linkType(tt, c, "type", func(bt suite.Type) { c.BuildType = bt }); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateSensor creates a model-wide input.
func (s *Session) CreateSensor(owner suite.Object, name string, typ any, path string) (*suite.Sensor, error) {
	if !isIdent(name) {
		return nil, identifierError("sensor name", name)
	}
	tt, err := normalizeTypeTree("sensor type", typ)
	if err != nil {
		return nil, err
	}
	sn := suite.NewSensor(owner, name)
	if err := s.place(owner, sn, path); err != nil {
		return nil, err
	}
	if err := s.linkType(tt, sn, "type", func(bt suite.Type) { sn.BuildType = bt }); err != nil {
		return nil, err
	}
	return sn, nil
}

func (s *Session) createOperator(owner suite.Object, name string, kind suite.OperatorKind, function bool, path string) (*suite.Operator, error) {
	if !isIdent(name) {
		return nil, identifierError("operator name", name)
	}
	op := suite.NewOperator(owner, name, kind)
	op.Function = function
	if err := s.place(owner, op, path); err != nil {
		return nil, err
	}
	return op, nil
}

// CreateGraphicalOperator creates an operator whose body is edited as
// diagrams.
func (s *Session) CreateGraphicalOperator(owner suite.Object, name string, function bool, path string) (*suite.Operator, error) {
	return s.createOperator(owner, name, suite.OperatorGraphical, function, path)
}

// CreateTextualOperator creates an operator whose body is edited as
// text.
func (s *Session) CreateTextualOperator(owner suite.Object, name string, function bool, path string) (*suite.Operator, error) {
	return s.createOperator(owner, name, suite.OperatorTextual, function, path)
}

// CreateImportedOperator creates an operator implemented by external
// code.
func (s *Session) CreateImportedOperator(owner suite.Object, name string, function bool, path string) (*suite.Operator, error) {
	return s.createOperator(owner, name, suite.OperatorImported, function, path)
}

func (s *Session) addOperatorVars(op *suite.Operator, kind suite.VarKind, vars []Var, into *[]*suite.LocalVariable) ([]*suite.LocalVariable, error) {
	trees := make([]TypeTree, len(vars))
	for i, v := range vars {
		if !isIdent(v.Name) {
			return nil, identifierError("variable name", v.Name)
		}
		t, err := normalizeTypeTree("variable type", v.Type)
		if err != nil {
			return nil, err
		}
		trees[i] = t
	}
	added := make([]*suite.LocalVariable, len(vars))
	for i, v := range vars {
		lv := suite.NewLocalVariable(op, v.Name, kind)
		err := s.linkType(trees[i], lv, "type", func(bt suite.Type) { lv.BuildType = bt })
		if err != nil {
			return nil, err
		}
		*into = append(*into, lv)
		added[i] = lv
	}
	s.MarkModified(op)
	return added, nil
}

// AddOperatorInputs appends inputs to an operator.
func (s *Session) AddOperatorInputs(op *suite.Operator, vars ...Var) ([]*suite.LocalVariable, error) {
	return s.addOperatorVars(op, suite.VarInput, vars, &op.Inputs)
}

// AddOperatorHiddens appends hidden inputs to an operator.
func (s *Session) AddOperatorHiddens(op *suite.Operator, vars ...Var) ([]*suite.LocalVariable, error) {
	return s.addOperatorVars(op, suite.VarHidden, vars, &op.Hiddens)
}

// AddOperatorOutputs appends outputs to an operator.
func (s *Session) AddOperatorOutputs(op *suite.Operator, vars ...Var) ([]*suite.LocalVariable, error) {
	return s.addOperatorVars(op, suite.VarOutput, vars, &op.Outputs)
}

// AddOperatorParameters appends generic type parameters to an
// operator. Parameter names carry a leading quote, 'T style.
func (s *Session) AddOperatorParameters(op *suite.Operator, names ...string) ([]*suite.NamedType, error) {
	for _, n := range names {
		if len(n) < 2 || n[0] != '\'' || !isIdent(n[1:]) {
			return nil, identifierError("parameter name", n)
		}
	}
	added := make([]*suite.NamedType, len(names))
	for i, n := range names {
		p := suite.NewNamedType(op, n)
		p.Generic = true
		op.Parameters = append(op.Parameters, p)
		added[i] = p
	}
	s.MarkModified(op)
	return added, nil
}

// SetSpecializedOperator records that an imported operator specializes
// a generic one.
func (s *Session) SetSpecializedOperator(op, target *suite.Operator) error {
	if target == nil {
		return &KindError{Context: "specialization", Param: "target", Expected: "Operator", Actual: nil}
	}
	s.addPendingLink(op, "specialized", target)
	s.MarkModified(op)
	return nil
}
