package suite

import "testing"

func lit(v string, k ValueKind) *ConstValue {
	return &ConstValue{object: newObject(nil), Value: v, Kind: k}
}

func call(op int, params ...Expression) *ExprCall {
	return &ExprCall{object: newObject(nil), PredefOpr: op, Parameters: params}
}

func TestRenderPredefined(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{
			"infix plus",
			call(opPlus, lit("9", KindInt), lit("12", KindInt)),
			"9 + 12",
		},
		{
			"prefix neg",
			call(opNeg, lit("4", KindInt)),
			"- 4",
		},
		{
			"sequence",
			call(opSeqExpr, lit("1", KindInt), lit("2", KindInt)),
			"(1, 2)",
		},
		{
			"slice",
			call(opSlice, lit("a", KindString), lit("0", KindInt), lit("3", KindInt)),
			"a[0 .. 3]",
		},
		{
			"numeric cast",
			call(opNumericCast, lit("x", KindString), lit("int8", KindString)),
			"(x :> int8)",
		},
		{
			"concat",
			call(opConcat, lit("a", KindString), lit("b", KindString)),
			"a @ b",
		},
		{
			"sharp",
			call(opSharp, lit("a", KindString), lit("b", KindString)),
			"#(a, b)",
		},
		{
			"replicate single",
			call(opScalarToVector, lit("0", KindInt), lit("8", KindInt)),
			"0 ^ 8",
		},
		{
			"replicate pair",
			call(opScalarToVector, lit("0", KindInt), lit("1", KindInt), lit("8", KindInt)),
			"(0, 1) ^ 8",
		},
		{
			"times",
			call(opTimes, lit("3", KindInt), lit("c", KindString)),
			"3 times c",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderProjectionPath(t *testing.T) {
	prj := call(opPrj,
		lit("s", KindString),
		lit("field", KindString),
		lit("2", KindInt),
	)
	if got := prj.String(); got != "s.field[2]" {
		t.Errorf("got %q", got)
	}
}

func TestRenderUnresolvedReference(t *testing.T) {
	id := &ExprId{object: newObject(nil)}
	if got := id.String(); got != "?" {
		t.Errorf("got %q, want ?", got)
	}
}

func TestSetRoles(t *testing.T) {
	model := NewSession().NewModel("Test", "test.xscade")
	c := NewConstant(model, "SIZE")
	intT := model.Session.FindPredefinedType("int32")

	if err := Set(c, "type", intT); err != nil {
		t.Fatalf("set type: %v", err)
	}
	if c.Type != Type(intT) {
		t.Error("type not assigned")
	}

	if err := Set(c, "nope", intT); err == nil {
		t.Error("unknown role accepted")
	}
	if err := Set(c, "type", NewOperator(model, "Op", OperatorTextual)); err == nil {
		t.Error("non-type target accepted")
	}

	id := NewExprId(nil)
	if err := Set(id, "reference", c); err != nil {
		t.Fatalf("set reference: %v", err)
	}
	if id.String() != "SIZE" {
		t.Errorf("reference renders %q", id.String())
	}
	if err := Set(id, "reference", intT); err == nil {
		t.Error("non-referenceable target accepted")
	}
}
