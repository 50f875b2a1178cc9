package create

import (
	"errors"
	"testing"

	"github.com/modelkit-io/go-modelkit/expr"
	"github.com/modelkit-io/go-modelkit/suite"
)

func testModel(t *testing.T) *suite.Model {
	t.Helper()
	return suite.NewSession().NewModel("Test", "test.xscade")
}

// render builds a tree in a fresh model, commits the deferred links,
// and returns the surface syntax.
func render(t *testing.T, tree ExpressionTree, err error) string {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	s := NewSession()
	model := testModel(t)
	e, err := s.Build(tree, model)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return e.String()
}

func TestNaryRendering(t *testing.T) {
	tests := []struct {
		name     string
		code     expr.Eck
		operands []any
		want     string
	}{
		{"plus two", expr.EckPlus, []any{9, 12}, "9 + 12"},
		{"plus four", expr.EckPlus, []any{9, 12, 31, 32}, "9 + 12 + 31 + 32"},
		{"and", expr.EckAnd, []any{true, false}, "true and false"},
		{"mul", expr.EckMul, []any{2, 3, 4}, "2 * 3 * 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Nary(tt.code, tt.operands...)
			if got := render(t, tree, err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNaryRejectsSingleOperand(t *testing.T) {
	_, err := Nary(expr.EckPlus, 9)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

func TestNaryRejectsNonAssociative(t *testing.T) {
	_, err := Nary(expr.EckSub, 9, 12)
	var uerr *UnsupportedError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
}

func TestBinaryRendering(t *testing.T) {
	tree, err := Binary(expr.EckSub, 7, 2)
	if got := render(t, tree, err); got != "7 - 2" {
		t.Errorf("got %q, want %q", got, "7 - 2")
	}
}

func TestUnaryRendering(t *testing.T) {
	tree, err := Unary(expr.EckNot, true)
	if got := render(t, tree, err); got != "not true" {
		t.Errorf("got %q, want %q", got, "not true")
	}
}

func TestIfGroupedBranches(t *testing.T) {
	cond := suite.NewLocalVariable(nil, "c", suite.VarLocal)
	tree, err := If(cond, []any{0}, []any{1})
	if got := render(t, tree, err); got != "if c then (0) else (1)" {
		t.Errorf("got %q, want %q", got, "if c then (0) else (1)")
	}
}

func TestIfPlainBranches(t *testing.T) {
	// Scalar branches are grouped like slice branches.
	tree, err := If(true, 0, 1)
	if got := render(t, tree, err); got != "if true then (0) else (1)" {
		t.Errorf("got %q, want %q", got, "if true then (0) else (1)")
	}
}

func TestIfBranchCounts(t *testing.T) {
	tests := []struct {
		name            string
		then, otherwise any
	}{
		{"mismatch", []any{1, 2}, 3},
		{"empty", []any{}, []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := If(true, tt.then, tt.otherwise)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
		})
	}
}

func TestDataStructRendering(t *testing.T) {
	tree, err := DataStruct("x", 1, "y", 2)
	if got := render(t, tree, err); got != "{x: 1, y: 2}" {
		t.Errorf("got %q, want %q", got, "{x: 1, y: 2}")
	}
}

func TestDataStructOddPairs(t *testing.T) {
	s := NewSession()
	_, err := DataStruct("x", 1, "y")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if s.PendingLinks() != 0 {
		t.Errorf("failed construction buffered %d links", s.PendingLinks())
	}
}

func TestDataStructBadLabel(t *testing.T) {
	_, err := DataStruct("a b c", 1)
	var ierr *IdentifierError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IdentifierError, got %v", err)
	}
}

func TestLiteralClassification(t *testing.T) {
	tests := []struct {
		input string
		kind  suite.ValueKind
	}{
		{"true", suite.KindBool},
		{"false", suite.KindBool},
		{"42", suite.KindInt},
		{"-7", suite.KindInt},
		{"42_i16", suite.KindInt},
		{"42_ui32", suite.KindInt},
		{"3.14", suite.KindReal},
		{"1e6", suite.KindReal},
		{"2_f32", suite.KindReal},
		{"'a'", suite.KindChar},
		{"speed", suite.KindString},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := classifyLiteral("test", tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.kind != tt.kind {
				t.Errorf("kind = %s, want %s", v.kind, tt.kind)
			}
		})
	}
}

func TestLiteralRejected(t *testing.T) {
	for _, input := range []string{"a b c", "1.2.3", "''", "3x"} {
		t.Run(input, func(t *testing.T) {
			_, err := classifyLiteral("test", input)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
		})
	}
}

func TestReferenceResolvedOnCommit(t *testing.T) {
	model := testModel(t)
	v := suite.NewLocalVariable(nil, "speed", suite.VarLocal)
	tree, err := Pre(v)
	if err != nil {
		t.Fatalf("pre: %v", err)
	}
	s := NewSession()
	e, err := s.Build(tree, model)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := e.String(); got != "pre ?" {
		t.Errorf("before commit: got %q, want %q", got, "pre ?")
	}
	if s.PendingLinks() != 1 {
		t.Fatalf("pending links = %d, want 1", s.PendingLinks())
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := e.String(); got != "pre speed" {
		t.Errorf("after commit: got %q, want %q", got, "pre speed")
	}
}

func TestCommitIdempotent(t *testing.T) {
	model := testModel(t)
	v := suite.NewLocalVariable(nil, "x", suite.VarLocal)
	tree, _ := Pre(v)
	s := NewSession()
	if _, err := s.Build(tree, model); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if s.PendingLinks() != 0 {
		t.Fatalf("pending links = %d after commit", s.PendingLinks())
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("second commit: %v", err)
	}
}

func TestProjectionRendering(t *testing.T) {
	v := suite.NewLocalVariable(nil, "s", suite.VarLocal)
	tree, err := Prj(v, "field", 2)
	if got := render(t, tree, err); got != "s.field[2]" {
		t.Errorf("got %q, want %q", got, "s.field[2]")
	}
}

func TestChangeIthRendering(t *testing.T) {
	v := suite.NewLocalVariable(nil, "s", suite.VarLocal)
	tree, err := ChangeIth(v, 0, "field")
	if got := render(t, tree, err); got != "(s with .field = 0)" {
		t.Errorf("got %q, want %q", got, "(s with .field = 0)")
	}
}

func TestDataArrayRendering(t *testing.T) {
	tree, err := DataArray(1, 2, 3)
	if got := render(t, tree, err); got != "[1, 2, 3]" {
		t.Errorf("got %q, want %q", got, "[1, 2, 3]")
	}
}

func TestInitRendering(t *testing.T) {
	v := suite.NewLocalVariable(nil, "x", suite.VarLocal)
	tree, err := Init(v, 0)
	if got := render(t, tree, err); got != "x -> 0" {
		t.Errorf("got %q, want %q", got, "x -> 0")
	}
}

func TestInitMultipleFlows(t *testing.T) {
	a := suite.NewLocalVariable(nil, "a", suite.VarLocal)
	b := suite.NewLocalVariable(nil, "b", suite.VarLocal)
	tree, err := Init([]any{a, b}, []any{0, 1})
	if got := render(t, tree, err); got != "(a, b) -> (0, 1)" {
		t.Errorf("got %q, want %q", got, "(a, b) -> (0, 1)")
	}
}

func TestCaseRequiresBranches(t *testing.T) {
	v := suite.NewLocalVariable(nil, "mode", suite.VarLocal)
	_, err := Case(v, nil, 99)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

func TestFbyRendering(t *testing.T) {
	v := suite.NewLocalVariable(nil, "x", suite.VarLocal)
	tree, err := Fby(v, 1, 0)
	if got := render(t, tree, err); got != "fby(x; 1; 0)" {
		t.Errorf("got %q, want %q", got, "fby(x; 1; 0)")
	}
}

func TestFbyFlatParameters(t *testing.T) {
	a := suite.NewLocalVariable(nil, "a", suite.VarLocal)
	b := suite.NewLocalVariable(nil, "b", suite.VarLocal)
	tree, err := Fby([]any{a, b}, 1, []any{0, 0})
	if got := render(t, tree, err); got != "fby(a, b; 1; 0, 0)" {
		t.Errorf("got %q, want %q", got, "fby(a, b; 1; 0, 0)")
	}
}

func TestFlowInitCounts(t *testing.T) {
	v := suite.NewLocalVariable(nil, "x", suite.VarLocal)
	tests := []struct {
		name  string
		build func() (ExpressionTree, error)
	}{
		{"init mismatch", func() (ExpressionTree, error) { return Init([]any{v}, []any{0, 1}) }},
		{"init empty", func() (ExpressionTree, error) { return Init([]any{}, []any{}) }},
		{"fby mismatch", func() (ExpressionTree, error) { return Fby([]any{v, v}, 1, 0) }},
		{"fby empty", func() (ExpressionTree, error) { return Fby([]any{}, 1, []any{}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
		})
	}
}

func TestRestartWrapsCall(t *testing.T) {
	model := testModel(t)
	op := suite.NewOperator(model, "Counter", suite.OperatorTextual)
	v := suite.NewLocalVariable(nil, "reset", suite.VarLocal)
	call, err := Call(op, 1)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	tree, err := Restart(call, v)
	if got := render(t, tree, err); got != "(restart Counter(1) every reset)" {
		t.Errorf("got %q, want %q", got, "(restart Counter(1) every reset)")
	}
}

func TestRestartRejectsPlainExpression(t *testing.T) {
	_, err := Restart(1, true)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

func TestMapIterator(t *testing.T) {
	model := testModel(t)
	op := suite.NewOperator(model, "Add", suite.OperatorTextual)
	call, err := Call(op, 1, 2)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	tree, err := Map(call, 8)
	if got := render(t, tree, err); got != "(map Add(1, 2) <<8>>)" {
		t.Errorf("got %q, want %q", got, "(map Add(1, 2) <<8>>)")
	}
}

func TestHigherOrderCallRendering(t *testing.T) {
	model := testModel(t)
	op := suite.NewOperator(model, "Filter", suite.OperatorTextual)
	tree, err := HigherOrderCall(op, []any{1}, []any{4})
	if got := render(t, tree, err); got != "Filter <<4>>(1)" {
		t.Errorf("got %q, want %q", got, "Filter <<4>>(1)")
	}
}

func TestEmptyGroupRejected(t *testing.T) {
	_, err := Binary(expr.EckSub, []any{}, 1)
	if !errors.Is(err, ErrEmptyTree) {
		t.Fatalf("expected ErrEmptyTree, got %v", err)
	}
}
