package create

import (
	"fmt"

	"github.com/modelkit-io/go-modelkit/suite"
)

// AddDataDefLocals appends local variables to a data definition.
func (s *Session) AddDataDefLocals(dd *suite.DataDef, vars ...Var) ([]*suite.LocalVariable, error) {
	return s.addDataDefVars(dd, suite.VarLocal, vars, &dd.Locals)
}

// AddDataDefProbes appends probes to a data definition.
func (s *Session) AddDataDefProbes(dd *suite.DataDef, vars ...Var) ([]*suite.LocalVariable, error) {
	return s.addDataDefVars(dd, suite.VarProbe, vars, &dd.Probes)
}

func (s *Session) addDataDefVars(dd *suite.DataDef, kind suite.VarKind, vars []Var, into *[]*suite.LocalVariable) ([]*suite.LocalVariable, error) {
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
		lv := suite.NewLocalVariable(dd, v.Name, kind)
		err := s.linkType(trees[i], lv, "type", func(bt suite.Type) { lv.BuildType = bt })
		if err != nil {
			return nil, err
		}
		*into = append(*into, lv)
		added[i] = lv
	}
	s.MarkModified(dd)
	return added, nil
}

// AddDataDefSignals appends signals to a data definition. Signals are
// named only, they carry no type.
func (s *Session) AddDataDefSignals(dd *suite.DataDef, names ...string) ([]*suite.LocalVariable, error) {
	for _, n := range names {
		if !isIdent(n) {
			return nil, identifierError("signal name", n)
		}
	}
	added := make([]*suite.LocalVariable, len(names))
	for i, n := range names {
		lv := suite.NewLocalVariable(dd, n, suite.VarSignal)
		dd.Signals = append(dd.Signals, lv)
		added[i] = lv
	}
	s.MarkModified(dd)
	return added, nil
}

// SetVariableDefault sets the default expression of a variable.
func (s *Session) SetVariableDefault(v *suite.LocalVariable, tree any) error {
	t, err := normalizeTree("variable default", tree)
	if err != nil {
		return err
	}
	v.Default = s.buildExpr(t, v)
	s.MarkModified(v)
	return nil
}

// SetVariableLast sets the last expression of a variable.
func (s *Session) SetVariableLast(v *suite.LocalVariable, tree any) error {
	t, err := normalizeTree("variable last", tree)
	if err != nil {
		return err
	}
	v.Last = s.buildExpr(t, v)
	s.MarkModified(v)
	return nil
}

// AddDataDefTextDiagram adds a textual diagram to a data definition.
func (s *Session) AddDataDefTextDiagram(dd *suite.DataDef, name string) (*suite.TextDiagram, error) {
	if !isIdent(name) {
		return nil, identifierError("diagram name", name)
	}
	d := suite.NewTextDiagram(dd, name)
	s.MarkModified(dd)
	return d, nil
}

// AddDataDefNetDiagram adds a graphical diagram to a data definition.
func (s *Session) AddDataDefNetDiagram(dd *suite.DataDef, name string) (*suite.NetDiagram, error) {
	if !isIdent(name) {
		return nil, identifierError("diagram name", name)
	}
	d := suite.NewNetDiagram(dd, name)
	s.MarkModified(dd)
	return d, nil
}

// AddDataDefEquation adds an equation defining the given flows. Each
// left is an existing variable, or "_" to define a fresh internal
// variable.
func (s *Session) AddDataDefEquation(dd *suite.DataDef, lefts []any, right any) (*suite.Equation, error) {
	if len(lefts) == 0 {
		return nil, ErrEmptyTree
	}
	rt, err := normalizeTree("equation right", right)
	if err != nil {
		return nil, err
	}
	vars := make([]*suite.LocalVariable, len(lefts))
	for i, l := range lefts {
		switch x := l.(type) {
		case *suite.LocalVariable:
			vars[i] = x
		case string:
			if x != "_" {
				return nil, syntaxError("equation left", x)
			}
			lv := suite.NewLocalVariable(dd, fmt.Sprintf("_L%d", len(dd.Internals)+1), suite.VarInternal)
			dd.Internals = append(dd.Internals, lv)
			vars[i] = lv
		default:
			return nil, syntaxError("equation left", l)
		}
	}
	eq := suite.NewEquation(dd)
	eq.Lefts = vars
	eq.Right = s.buildExpr(rt, eq)
	s.MarkModified(dd)
	return eq, nil
}

// PresentEquation lays an equation out in a diagram. In a net diagram
// the equation gets a box at the given position; text diagrams ignore
// the geometry.
func (s *Session) PresentEquation(d suite.Diagram, eq *suite.Equation, x, y, width, height int) (*suite.EquationGE, error) {
	switch diag := d.(type) {
	case *suite.TextDiagram:
		diag.Presented = append(diag.Presented, eq)
		s.MarkModified(diag)
		return nil, nil
	case *suite.NetDiagram:
		ge := suite.NewEquationGE(diag, eq)
		ge.X, ge.Y = x, y
		ge.Width, ge.Height = width, height
		s.MarkModified(diag)
		return ge, nil
	}
	return nil, &KindError{Context: "presentation", Param: "diagram", Expected: "Diagram", Actual: d}
}

// AddDiagramEdge links the output pin of one box to an input pin of
// another.
func (s *Session) AddDiagramEdge(d *suite.NetDiagram, source, target *suite.EquationGE, leftVar *suite.LocalVariable, rightIdx int, positions ...[2]int) (*suite.Edge, error) {
	if source == nil || target == nil {
		return nil, &KindError{Context: "edge", Param: "box", Expected: "EquationGE", Actual: nil}
	}
	e := suite.NewEdge(d, source, target)
	e.LeftVar = leftVar
	e.RightIdx = rightIdx
	e.Positions = positions
	s.MarkModified(d)
	return e, nil
}

// AddDiagramMissingEdges creates the edges a diagram is missing: for
// every variable produced by one box and read by another, an edge is
// added unless one already exists.
func (s *Session) AddDiagramMissingEdges(d *suite.NetDiagram) ([]*suite.Edge, error) {
	producers := make(map[*suite.LocalVariable]*suite.EquationGE)
	for _, box := range d.Boxes {
		for _, v := range box.Equation.Lefts {
			producers[v] = box
		}
	}
	var added []*suite.Edge
	for _, box := range d.Boxes {
		idx := 0
		for _, ref := range referencedVars(box.Equation.Right) {
			idx++
			source, ok := producers[ref]
			if !ok || source == box {
				continue
			}
			if hasEdge(d, source, box, ref, idx) {
				continue
			}
			e := suite.NewEdge(d, source, box)
			e.LeftVar = ref
			e.RightIdx = idx
			added = append(added, e)
		}
	}
	if len(added) > 0 {
		s.MarkModified(d)
	}
	return added, nil
}

func hasEdge(d *suite.NetDiagram, source, target *suite.EquationGE, v *suite.LocalVariable, idx int) bool {
	for _, e := range d.Edges {
		if e.Source == source && e.Target == target && e.LeftVar == v && e.RightIdx == idx {
			return true
		}
	}
	return false
}

// referencedVars collects the local variables an expression reads, in
// reading order.
func referencedVars(e suite.Expression) []*suite.LocalVariable {
	var vars []*suite.LocalVariable
	var walk func(suite.Expression)
	walk = func(e suite.Expression) {
		switch x := e.(type) {
		case *suite.ExprId:
			if v, ok := x.Reference.(*suite.LocalVariable); ok {
				vars = append(vars, v)
			}
		case *suite.ExprCall:
			for _, p := range x.Parameters {
				walk(p)
			}
			for _, p := range x.InstParameters {
				walk(p)
			}
			if x.Wrapped != nil {
				walk(x.Wrapped)
			}
		}
	}
	if e != nil {
		walk(e)
	}
	return vars
}

// AddDataDefAssertion attaches an assume or guarantee expression to a
// data definition.
func (s *Session) AddDataDefAssertion(dd *suite.DataDef, name string, kind suite.AssertionKind, expression any) (*suite.Assertion, error) {
	if !isIdent(name) {
		return nil, identifierError("assertion name", name)
	}
	t, err := normalizeTree("assertion", expression)
	if err != nil {
		return nil, err
	}
	a := suite.NewAssertion(dd, name, kind)
	a.Expression = s.buildExpr(t, a)
	s.MarkModified(dd)
	return a, nil
}

// AddDataDefStateMachine adds a state machine to a data definition.
// An empty name is replaced by a generated one.
func (s *Session) AddDataDefStateMachine(dd *suite.DataDef, name string) (*suite.StateMachine, error) {
	if name == "" {
		name = fmt.Sprintf("SM%d", len(dd.StateMachines)+1)
	}
	if !isIdent(name) {
		return nil, identifierError("state machine name", name)
	}
	sm := suite.NewStateMachine(dd, name)
	s.MarkModified(dd)
	return sm, nil
}

// AddStateMachineState adds a state to a state machine.
func (s *Session) AddStateMachineState(sm *suite.StateMachine, name string, kind suite.StateKind) (*suite.State, error) {
	if !isIdent(name) {
		return nil, identifierError("state name", name)
	}
	st := suite.NewState(sm, name, kind)
	s.MarkModified(sm)
	return st, nil
}

// AddStateTransition adds a transition leaving a state. The target
// state is recorded as a deferred link.
func (s *Session) AddStateTransition(st *suite.State, kind suite.TransitionKind, condition any, target *suite.State, priority int, history bool) (*suite.Transition, error) {
	if target == nil {
		return nil, &KindError{Context: "transition", Param: "target", Expected: "State", Actual: nil}
	}
	ct, err := normalizeTree("transition condition", condition)
	if err != nil {
		return nil, err
	}
	t := suite.NewTransition(st, kind)
	t.Priority = priority
	t.History = history
	t.Condition = s.buildExpr(ct, t)
	s.addPendingLink(t, "target", target)
	target.Incomings = append(target.Incomings, t)
	s.MarkModified(st)
	return t, nil
}

// AddForkedTransition adds a branch to a fork transition.
func (s *Session) AddForkedTransition(parent *suite.Transition, condition any, target *suite.State, priority int) (*suite.Transition, error) {
	if target == nil {
		return nil, &KindError{Context: "fork", Param: "target", Expected: "State", Actual: nil}
	}
	ct, err := normalizeTree("fork condition", condition)
	if err != nil {
		return nil, err
	}
	branch := suite.NewForkBranch(parent)
	branch.Priority = priority
	branch.Condition = s.buildExpr(ct, branch)
	s.addPendingLink(branch, "target", target)
	target.ForkedViews = append(target.ForkedViews, branch)
	s.MarkModified(parent)
	return branch, nil
}

// AddTransitionEquation adds an equation to the actions of a
// transition, creating the action block on first use.
func (s *Session) AddTransitionEquation(t *suite.Transition, lefts []any, right any) (*suite.Equation, error) {
	if t.Effect == nil {
		t.Effect = suite.NewDataDef(t)
	}
	return s.AddDataDefEquation(t.Effect, lefts, right)
}
