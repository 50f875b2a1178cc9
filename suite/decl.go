package suite

import "strings"

// Constant is a named value declaration.
type Constant struct {
	object
	Name string
	// Type is the constant type when it is a named-type reference.
	Type Type
	// BuildType is the constant type when it is an owned anonymous type.
	BuildType Type
	Value     Expression
	Imported  bool
}

func (c *Constant) referenceable() {}

// ReferenceName returns the constant name, satisfying Referenceable.
func (c *Constant) ReferenceName() string { return c.Name }

// VarKind classifies local variables.
type VarKind int

// Local variable kinds.
const (
	VarInput VarKind = iota
	VarHidden
	VarOutput
	VarLocal
	VarSignal
	VarProbe
	VarInternal
)

var varKindNames = map[VarKind]string{
	VarInput:    "input",
	VarHidden:   "hidden",
	VarOutput:   "output",
	VarLocal:    "local",
	VarSignal:   "signal",
	VarProbe:    "probe",
	VarInternal: "internal",
}

func (k VarKind) String() string { return varKindNames[k] }

// Sensor is a model-wide input.
type Sensor struct {
	object
	Name string
	// Type is the sensor type when it is a named-type reference.
	Type Type
	// BuildType is the sensor type when it is an owned anonymous type.
	BuildType Type
}

func (s *Sensor) referenceable() {}

// ReferenceName returns the sensor name, satisfying Referenceable.
func (s *Sensor) ReferenceName() string { return s.Name }

// LocalVariable is an input, output, hidden, local, signal, or probe of
// a data definition.
type LocalVariable struct {
	object
	Name string
	Kind VarKind
	// Type is the variable type when it is a named-type reference.
	Type Type
	// BuildType is the variable type when it is an owned anonymous type.
	BuildType Type
	Default   Expression
	Last      Expression
}

func (v *LocalVariable) referenceable() {}

// ReferenceName returns the variable name, satisfying Referenceable.
func (v *LocalVariable) ReferenceName() string { return v.Name }

// OperatorKind classifies operator declarations.
type OperatorKind int

// Operator kinds.
const (
	OperatorGraphical OperatorKind = iota
	OperatorTextual
	OperatorImported
)

// Operator is a node or function declaration. Its body is a DataDef.
type Operator struct {
	object
	Name string
	Kind OperatorKind
	// Function operators are stateless.
	Function bool

	Inputs     []*LocalVariable
	Hiddens    []*LocalVariable
	Outputs    []*LocalVariable
	Parameters []*NamedType

	DataDef     *DataDef
	Specialized *Operator
}

// FindParameter returns the generic type parameter with the given name.
func (o *Operator) FindParameter(name string) *NamedType {
	for _, p := range o.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// DataDef is the behavioral content of an operator, a state, or an
// action branch: variables, equations, diagrams, state machines.
type DataDef struct {
	object
	Locals        []*LocalVariable
	Signals       []*LocalVariable
	Probes        []*LocalVariable
	Internals     []*LocalVariable
	Equations     []*Equation
	Assertions    []*Assertion
	Diagrams      []Diagram
	StateMachines []*StateMachine
}

// NewDataDef creates an empty data definition.
func NewDataDef(owner Object) *DataDef {
	return &DataDef{object: newObject(owner)}
}

// Equation defines one or more flows from an expression.
type Equation struct {
	object
	Lefts []*LocalVariable
	Right Expression
}

func (*Equation) exprNode() {}

func (e *Equation) String() string {
	names := make([]string, len(e.Lefts))
	for i, v := range e.Lefts {
		names[i] = v.Name
	}
	return strings.Join(names, ", ") + " = " + exprString(e.Right) + ";"
}

// AssertionKind distinguishes assumptions from guarantees.
type AssertionKind int

// Assertion kinds.
const (
	AssertAssume AssertionKind = iota
	AssertGuarantee
)

// Assertion attaches an assume or guarantee expression to a data
// definition.
type Assertion struct {
	object
	Name       string
	Kind       AssertionKind
	Expression Expression
}

// Diagram is a presentation of a data definition.
type Diagram interface {
	Object
	DiagramName() string
}

// TextDiagram presents equations textually.
type TextDiagram struct {
	object
	Name string
	// Equations laid out in this diagram, in order.
	Presented []*Equation
}

func (d *TextDiagram) DiagramName() string { return d.Name }

// NetDiagram presents equations as graphical boxes linked by edges.
type NetDiagram struct {
	object
	Name  string
	Boxes []*EquationGE
	Edges []*Edge
}

func (d *NetDiagram) DiagramName() string { return d.Name }

// EquationGE is the graphical element presenting one equation in a net
// diagram.
type EquationGE struct {
	object
	Equation *Equation
	// Position and size, in the suite's graphical units.
	X, Y          int
	Width, Height int
}

// Edge links the output pin of one graphical equation to an input pin
// of another.
type Edge struct {
	object
	Source    *EquationGE
	Target    *EquationGE
	LeftVar   *LocalVariable
	RightIdx  int
	Positions [][2]int
}

// StateMachine is a set of exclusive states with transitions.
type StateMachine struct {
	object
	Name   string
	States []*State
}

// StateKind classifies the initial status of a state.
type StateKind int

// State kinds.
const (
	StateNormal StateKind = iota
	StateInitial
)

// State is one state of a state machine. Its behavior is a DataDef.
type State struct {
	object
	Name        string
	Kind        StateKind
	DataDef     *DataDef
	Outgoings   []*Transition
	Incomings   []*Transition
	ForkedViews []*Transition
}

// TransitionKind classifies transitions.
type TransitionKind int

// Transition kinds.
const (
	TransitionStrong TransitionKind = iota
	TransitionWeak
	TransitionSynchro
)

// Transition links a state to a destination on a condition. A fork
// transition has ForkedTransitions instead of a Target.
type Transition struct {
	object
	Kind      TransitionKind
	Condition Expression
	Target    *State
	Forked    []*Transition
	Priority  int
	History   bool
	// Effect holds the actions executed when the transition fires.
	Effect *DataDef
}
