package suite

import "fmt"

// Constructors for model elements. The create package allocates nodes
// through these and wires ownership as it assembles trees; scripts are
// not expected to call them directly.

// NewLabel creates a flow label.
func NewLabel(owner Object, name string) *Label {
	return &Label{object: newObject(owner), Name: name}
}

// NewConstValue creates a literal expression.
func NewConstValue(owner Object, value string, kind ValueKind) *ConstValue {
	return &ConstValue{object: newObject(owner), Value: value, Kind: kind}
}

// NewExprId creates a reference expression. The Reference slot is set
// later, when the deferred links are committed.
func NewExprId(owner Object) *ExprId {
	return &ExprId{object: newObject(owner)}
}

// NewExprType creates a type reference expression. The Type slot is
// set later, when the deferred links are committed.
func NewExprType(owner Object) *ExprType {
	return &ExprType{object: newObject(owner)}
}

// NewExprCall creates a call expression. predefOpr is 0 for a user
// operator call; the operator itself is a deferred link.
func NewExprCall(owner Object, predefOpr int) *ExprCall {
	return &ExprCall{object: newObject(owner), PredefOpr: predefOpr}
}

// NewNamedType creates a type declaration.
func NewNamedType(owner Object, name string) *NamedType {
	return &NamedType{object: newObject(owner), Name: name}
}

// NewSizedType creates a sized integer type node.
func NewSizedType(owner Object, constraint *TypeConstraint, size Expression) *SizedType {
	return &SizedType{object: newObject(owner), Constraint: constraint, SizeExpression: size}
}

// NewTable creates an array type node.
func NewTable(owner Object, size Expression) *Table {
	return &Table{object: newObject(owner), SizeExpression: size}
}

// NewStructure creates a record type node.
func NewStructure(owner Object) *Structure {
	return &Structure{object: newObject(owner)}
}

// NewCompositeElement creates a structure field owned by a structure.
func NewCompositeElement(owner *Structure, name string) *CompositeElement {
	e := &CompositeElement{object: newObject(owner), Name: name}
	owner.Elements = append(owner.Elements, e)
	return e
}

// NewEnumeration creates an enumeration type node.
func NewEnumeration(owner Object) *Enumeration {
	return &Enumeration{object: newObject(owner)}
}

// NewConstant creates a constant declaration.
func NewConstant(owner Object, name string) *Constant {
	return &Constant{object: newObject(owner), Name: name}
}

// NewSensor creates a sensor declaration.
func NewSensor(owner Object, name string) *Sensor {
	return &Sensor{object: newObject(owner), Name: name}
}

// NewLocalVariable creates a variable of the given kind.
func NewLocalVariable(owner Object, name string, kind VarKind) *LocalVariable {
	return &LocalVariable{object: newObject(owner), Name: name, Kind: kind}
}

// NewOperator creates an operator declaration with an empty body.
func NewOperator(owner Object, name string, kind OperatorKind) *Operator {
	o := &Operator{object: newObject(owner), Name: name, Kind: kind}
	if kind != OperatorImported {
		o.DataDef = NewDataDef(o)
	}
	return o
}

// NewEquation creates an equation owned by a data definition.
func NewEquation(owner *DataDef) *Equation {
	e := &Equation{object: newObject(owner)}
	owner.Equations = append(owner.Equations, e)
	return e
}

// NewAssertion creates an assertion owned by a data definition.
func NewAssertion(owner *DataDef, name string, kind AssertionKind) *Assertion {
	a := &Assertion{object: newObject(owner), Name: name, Kind: kind}
	owner.Assertions = append(owner.Assertions, a)
	return a
}

// NewTextDiagram creates a textual diagram owned by a data definition.
func NewTextDiagram(owner *DataDef, name string) *TextDiagram {
	d := &TextDiagram{object: newObject(owner), Name: name}
	owner.Diagrams = append(owner.Diagrams, d)
	return d
}

// NewNetDiagram creates a graphical diagram owned by a data definition.
func NewNetDiagram(owner *DataDef, name string) *NetDiagram {
	d := &NetDiagram{object: newObject(owner), Name: name}
	owner.Diagrams = append(owner.Diagrams, d)
	return d
}

// NewEquationGE creates the graphical element presenting an equation.
func NewEquationGE(owner *NetDiagram, eq *Equation) *EquationGE {
	ge := &EquationGE{object: newObject(owner), Equation: eq}
	owner.Boxes = append(owner.Boxes, ge)
	return ge
}

// NewEdge creates an edge between two graphical equations.
func NewEdge(owner *NetDiagram, source, target *EquationGE) *Edge {
	e := &Edge{object: newObject(owner), Source: source, Target: target}
	owner.Edges = append(owner.Edges, e)
	return e
}

// NewStateMachine creates a state machine owned by a data definition.
func NewStateMachine(owner *DataDef, name string) *StateMachine {
	sm := &StateMachine{object: newObject(owner), Name: name}
	owner.StateMachines = append(owner.StateMachines, sm)
	return sm
}

// NewState creates a state owned by a state machine.
func NewState(owner *StateMachine, name string, kind StateKind) *State {
	st := &State{object: newObject(owner), Name: name, Kind: kind}
	st.DataDef = NewDataDef(st)
	owner.States = append(owner.States, st)
	return st
}

// NewTransition creates a transition leaving a state. The target state
// is a deferred link.
func NewTransition(owner *State, kind TransitionKind) *Transition {
	t := &Transition{object: newObject(owner), Kind: kind}
	owner.Outgoings = append(owner.Outgoings, t)
	return t
}

// NewForkBranch creates a branch of a fork transition, owned by the
// forking transition.
func NewForkBranch(owner *Transition) *Transition {
	t := &Transition{object: newObject(owner), Kind: owner.Kind}
	owner.Forked = append(owner.Forked, t)
	return t
}

// NewFolder creates a project folder.
func NewFolder(owner Object, name string) *Folder {
	return &Folder{object: newObject(owner), Name: name}
}

// NewFileRef creates a project file reference.
func NewFileRef(owner Object, pathName string) *FileRef {
	return &FileRef{object: newObject(owner), PathName: pathName}
}

// NewConfiguration creates a configuration owned by a project.
func NewConfiguration(owner *Project, name string) *Configuration {
	c := &Configuration{object: newObject(owner), Name: name}
	owner.Configurations = append(owner.Configurations, c)
	return c
}

// AddDeclaration registers a declaration in the collections of its
// owner, which must be a model or a package.
func AddDeclaration(owner, decl Object) error {
	switch o := owner.(type) {
	case *Model:
		switch d := decl.(type) {
		case *NamedType:
			o.Types = append(o.Types, d)
		case *Constant:
			o.Constants = append(o.Constants, d)
		case *Sensor:
			o.Sensors = append(o.Sensors, d)
		case *Operator:
			o.Operators = append(o.Operators, d)
		default:
			return fmt.Errorf("suite: %T cannot be declared in a model", decl)
		}
		return nil
	case *Package:
		switch d := decl.(type) {
		case *NamedType:
			o.Types = append(o.Types, d)
		case *Constant:
			o.Constants = append(o.Constants, d)
		case *Sensor:
			o.Sensors = append(o.Sensors, d)
		case *Operator:
			o.Operators = append(o.Operators, d)
		default:
			return fmt.Errorf("suite: %T cannot be declared in a package", decl)
		}
		return nil
	}
	return fmt.Errorf("suite: %T cannot own declarations", owner)
}
