package create

import (
	"testing"

	"github.com/modelkit-io/go-modelkit/expr"
	"github.com/modelkit-io/go-modelkit/suite"
)

func testOperator(t *testing.T, s *Session) *suite.Operator {
	t.Helper()
	model := testModel(t)
	op, err := s.CreateTextualOperator(model, "Main", false, "")
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	if _, err := s.AddOperatorInputs(op, Var{"a", "int32"}, Var{"b", "int32"}); err != nil {
		t.Fatalf("inputs: %v", err)
	}
	if _, err := s.AddOperatorOutputs(op, Var{"o", "int32"}); err != nil {
		t.Fatalf("outputs: %v", err)
	}
	return op
}

func TestAddDataDefEquation(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	tree, err := Nary(expr.EckPlus, op.Inputs[0], op.Inputs[1])
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	eq, err := s.AddDataDefEquation(op.DataDef, []any{op.Outputs[0]}, tree)
	if err != nil {
		t.Fatalf("equation: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := eq.String(); got != "o = a + b;" {
		t.Errorf("equation = %q, want %q", got, "o = a + b;")
	}
}

func TestEquationInternalVariable(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	eq, err := s.AddDataDefEquation(op.DataDef, []any{"_"}, 42)
	if err != nil {
		t.Fatalf("equation: %v", err)
	}
	if len(op.DataDef.Internals) != 1 {
		t.Fatalf("internals = %d, want 1", len(op.DataDef.Internals))
	}
	if eq.Lefts[0] != op.DataDef.Internals[0] {
		t.Error("equation does not define the internal variable")
	}
	if eq.Lefts[0].Kind != suite.VarInternal {
		t.Errorf("kind = %s, want internal", eq.Lefts[0].Kind)
	}
}

func TestEquationBadLeft(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	if _, err := s.AddDataDefEquation(op.DataDef, []any{"o"}, 42); err == nil {
		t.Error("left name accepted in place of a variable")
	}
}

func TestAddDataDefLocals(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	locals, err := s.AddDataDefLocals(op.DataDef, Var{"acc", "int32"})
	if err != nil {
		t.Fatalf("locals: %v", err)
	}
	if err := s.SetVariableDefault(locals[0], 0); err != nil {
		t.Fatalf("default: %v", err)
	}
	if locals[0].Default == nil || locals[0].Default.String() != "0" {
		t.Error("default not set")
	}
	if err := s.SetVariableLast(locals[0], 0); err != nil {
		t.Fatalf("last: %v", err)
	}
	if locals[0].Last == nil {
		t.Error("last not set")
	}
}

func TestNetDiagramMissingEdges(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	locals, err := s.AddDataDefLocals(op.DataDef, Var{"mid", "int32"})
	if err != nil {
		t.Fatalf("locals: %v", err)
	}
	mid := locals[0]

	d, err := s.AddDataDefNetDiagram(op.DataDef, "View")
	if err != nil {
		t.Fatalf("diagram: %v", err)
	}

	t1, err := Nary(expr.EckPlus, op.Inputs[0], op.Inputs[1])
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	eq1, err := s.AddDataDefEquation(op.DataDef, []any{mid}, t1)
	if err != nil {
		t.Fatalf("equation: %v", err)
	}
	t2, err := Binary(expr.EckMul, mid, 2)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	eq2, err := s.AddDataDefEquation(op.DataDef, []any{op.Outputs[0]}, t2)
	if err != nil {
		t.Fatalf("equation: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	box1, err := s.PresentEquation(d, eq1, 0, 0, 100, 50)
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	box2, err := s.PresentEquation(d, eq2, 200, 0, 100, 50)
	if err != nil {
		t.Fatalf("present: %v", err)
	}

	added, err := s.AddDiagramMissingEdges(d)
	if err != nil {
		t.Fatalf("missing edges: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("added = %d edges, want 1", len(added))
	}
	e := added[0]
	if e.Source != box1 || e.Target != box2 || e.LeftVar != mid {
		t.Error("edge does not connect the producer to the consumer")
	}

	// A second pass adds nothing.
	again, err := s.AddDiagramMissingEdges(d)
	if err != nil {
		t.Fatalf("missing edges: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second pass added %d edges", len(again))
	}
}

func TestStateMachine(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	sm, err := s.AddDataDefStateMachine(op.DataDef, "Modes")
	if err != nil {
		t.Fatalf("state machine: %v", err)
	}
	idle, err := s.AddStateMachineState(sm, "Idle", suite.StateInitial)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	run, err := s.AddStateMachineState(sm, "Running", suite.StateNormal)
	if err != nil {
		t.Fatalf("state: %v", err)
	}

	tr, err := s.AddStateTransition(idle, suite.TransitionStrong, true, run, 1, false)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := s.AddTransitionEquation(tr, []any{"_"}, 0); err != nil {
		t.Fatalf("action: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if tr.Target != run {
		t.Error("transition target not linked")
	}
	if len(run.Incomings) != 1 || run.Incomings[0] != tr {
		t.Error("incoming transition not recorded")
	}
	if tr.Effect == nil || len(tr.Effect.Equations) != 1 {
		t.Error("transition action missing")
	}
}

func TestForkTransition(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	sm, err := s.AddDataDefStateMachine(op.DataDef, "")
	if err != nil {
		t.Fatalf("state machine: %v", err)
	}
	if sm.Name == "" {
		t.Error("generated name missing")
	}
	a, _ := s.AddStateMachineState(sm, "A", suite.StateInitial)
	b, _ := s.AddStateMachineState(sm, "B", suite.StateNormal)
	c, _ := s.AddStateMachineState(sm, "C", suite.StateNormal)

	tr, err := s.AddStateTransition(a, suite.TransitionWeak, true, b, 1, false)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	branch, err := s.AddForkedTransition(tr, false, c, 2)
	if err != nil {
		t.Fatalf("fork: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(tr.Forked) != 1 || tr.Forked[0] != branch {
		t.Error("branch not attached to the fork")
	}
	if branch.Target != c {
		t.Error("branch target not linked")
	}
}

func TestAssertion(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	tree, err := Binary(expr.EckGEqual, op.Inputs[0], 0)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	a, err := s.AddDataDefAssertion(op.DataDef, "positive", suite.AssertAssume, tree)
	if err != nil {
		t.Fatalf("assertion: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := a.Expression.String(); got != "a >= 0" {
		t.Errorf("assertion = %q, want %q", got, "a >= 0")
	}
}

func TestSignals(t *testing.T) {
	s := NewSession()
	op := testOperator(t, s)

	added, err := s.AddDataDefSignals(op.DataDef, "alarm")
	if err != nil {
		t.Fatalf("signals: %v", err)
	}
	if added[0].Kind != suite.VarSignal {
		t.Errorf("kind = %s, want signal", added[0].Kind)
	}
	if _, err := s.AddDataDefSignals(op.DataDef, "a b"); err == nil {
		t.Error("bad signal name accepted")
	}
}
