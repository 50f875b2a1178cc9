package suite

import (
	"strings"
)

// Expression is implemented by every expression node.
type Expression interface {
	Object
	// String returns the surface syntax of the expression.
	String() string
	exprNode()
}

// ValueKind classifies literal values.
type ValueKind string

// Literal kinds. String is only legal in projection paths and
// structure labels.
const (
	KindBool   ValueKind = "Bool"
	KindInt    ValueKind = "Int"
	KindReal   ValueKind = "Real"
	KindChar   ValueKind = "Char"
	KindString ValueKind = "String"
)

// Label names a flow inside a group or structure expression.
type Label struct {
	object
	Name string
}

// ConstValue is a literal.
type ConstValue struct {
	object
	Value string
	Kind  ValueKind
	Label *Label
}

func (*ConstValue) exprNode() {}

func (v *ConstValue) String() string { return v.Value }

// ExprId references a constant, sensor, or local variable.
type ExprId struct {
	object
	Reference Referenceable
	Label     *Label
}

func (*ExprId) exprNode() {}

func (e *ExprId) String() string {
	if e.Reference == nil {
		return "?"
	}
	return e.Reference.ReferenceName()
}

// ExprType references a type inside an expression, for example the
// type argument of make.
type ExprType struct {
	object
	Type Type
}

func (*ExprType) exprNode() {}

func (e *ExprType) String() string { return typeDisplayName(e.Type) }

// ExprCall is a call to a predefined operator or to a user operator.
// Higher-order wrappers (restart, activate, iterators) are ExprCalls
// whose Wrapped slot holds the call they modify.
type ExprCall struct {
	object
	// PredefOpr is the host code of the predefined operator, 0 for a
	// user operator call.
	PredefOpr int
	Operator  *Operator
	InstName  string

	Parameters     []Expression
	InstParameters []Expression
	Wrapped        Expression
	Label          *Label
}

func (*ExprCall) exprNode() {}

// Predefined operator codes, as documented by the host. The expr
// package exposes the same table to scripts.
const (
	opNone           = 1
	opAnd            = 2
	opOr             = 3
	opXor            = 4
	opNot            = 5
	opSharp          = 6
	opPlus           = 7
	opSub            = 8
	opNeg            = 9
	opMul            = 10
	opReal2Int       = 11
	opInt2Real       = 12
	opSlash          = 14
	opDiv            = 15
	opMod            = 16
	opPrj            = 18
	opChangeIth      = 19
	opLess           = 20
	opLEqual         = 21
	opGreat          = 22
	opGEqual         = 23
	opEqual          = 24
	opNEqual         = 25
	opPre            = 26
	opWhen           = 28
	opFollow         = 29
	opFby            = 30
	opIf             = 31
	opCase           = 32
	opSeqExpr        = 33
	opBldStruct      = 34
	opMap            = 35
	opFold           = 36
	opMapFold        = 37
	opMapi           = 38
	opFoldi          = 39
	opScalarToVector = 40
	opBldVector      = 41
	opPrjDyn         = 42
	opMake           = 43
	opFlatten        = 44
	opMerge          = 45
	opReverse        = 46
	opTranspose      = 47
	opTimes          = 49
	opMatch          = 50
	opSlice          = 51
	opConcat         = 52
	opActivate       = 53
	opRestart        = 54
	opFoldw          = 55
	opFoldwi         = 56
	opActivateNoInit = 57
	opClockedAct     = 58
	opClockedNot     = 59
	opPos            = 60
	opMapw           = 61
	opMapwi          = 62
	opNumericCast    = 63
	opMapFoldi       = 64
	opMapFoldw       = 65
	opMapFoldwi      = 66
	opLand           = 67
	opLor            = 68
	opLxor           = 69
	opLnot           = 70
	opLsl            = 71
	opLsr            = 72
)

var infixSymbols = map[int]string{
	opAnd:    "and",
	opOr:     "or",
	opXor:    "xor",
	opPlus:   "+",
	opSub:    "-",
	opMul:    "*",
	opSlash:  "/",
	opDiv:    "div",
	opMod:    "mod",
	opLess:   "<",
	opLEqual: "<=",
	opGreat:  ">",
	opGEqual: ">=",
	opEqual:  "=",
	opNEqual: "<>",
	opLand:   "land",
	opLor:    "lor",
	opLxor:   "lxor",
	opLsl:    "lsl",
	opLsr:    "lsr",
	opConcat: "@",
}

var prefixSymbols = map[int]string{
	opNot:      "not",
	opNeg:      "-",
	opPos:      "+",
	opReal2Int: "int",
	opInt2Real: "real",
	opLnot:     "lnot",
	opPre:      "pre",
	opReverse:  "reverse",
}

var iteratorNames = map[int]string{
	opMap:       "map",
	opMapi:      "mapi",
	opFold:      "fold",
	opFoldi:     "foldi",
	opMapFold:   "mapfold",
	opMapFoldi:  "mapfoldi",
	opFoldw:     "foldw",
	opFoldwi:    "foldwi",
	opMapw:      "mapw",
	opMapwi:     "mapwi",
	opMapFoldw:  "mapfoldw",
	opMapFoldwi: "mapfoldwi",
}

var genericNames = map[int]string{
	opWhen:       "when",
	opMerge:      "merge",
	opMatch:      "match",
	opClockedAct: "clocked_activate",
	opClockedNot: "clocked_not",
}

func (e *ExprCall) String() string {
	if e.Operator != nil {
		return e.renderOperatorCall(e.Operator.Name)
	}
	if sym, ok := infixSymbols[e.PredefOpr]; ok {
		return joinExprs(e.Parameters, " "+sym+" ")
	}
	if sym, ok := prefixSymbols[e.PredefOpr]; ok {
		if len(e.Parameters) == 1 {
			return sym + " " + e.Parameters[0].String()
		}
		return sym + " (" + joinExprs(e.Parameters, ", ") + ")"
	}
	if name, ok := iteratorNames[e.PredefOpr]; ok {
		return "(" + name + " " + exprString(e.Wrapped) + " <<" + joinExprs(e.Parameters, ", ") + ">>)"
	}
	switch e.PredefOpr {
	case opSeqExpr:
		return "(" + joinExprs(e.Parameters, ", ") + ")"
	case opIf:
		return "if " + nthString(e.Parameters, 0) + " then " + nthString(e.Parameters, 1) +
			" else " + nthString(e.Parameters, 2)
	case opCase:
		return "(case " + nthString(e.Parameters, 0) + " of " + nthString(e.Parameters, 2) +
			" : " + nthString(e.Parameters, 1) + ")"
	case opFollow:
		parts := make([]string, len(e.Parameters))
		for i, p := range e.Parameters {
			parts[i] = flowsString(p)
		}
		return strings.Join(parts, " -> ")
	case opFby:
		// Flat layout: one flow per init around a single delay.
		if n := (len(e.Parameters) - 1) / 2; n > 0 {
			return "fby(" + joinExprs(e.Parameters[:n], ", ") + "; " +
				e.Parameters[n].String() + "; " + joinExprs(e.Parameters[n+1:], ", ") + ")"
		}
		return "fby(" + joinExprs(e.Parameters, "; ") + ")"
	case opSharp:
		return "#(" + joinExprs(e.Parameters, ", ") + ")"
	case opPrj:
		return renderProjection(e.Parameters[0], e.Parameters[1:])
	case opPrjDyn:
		n := len(e.Parameters)
		return "(" + renderProjection(e.Parameters[0], e.Parameters[1:n-1]) +
			" default " + e.Parameters[n-1].String() + ")"
	case opChangeIth:
		return "(" + e.Parameters[0].String() + " with " +
			renderPath(e.Parameters[2:]) + " = " + e.Parameters[1].String() + ")"
	case opScalarToVector:
		n := len(e.Parameters)
		values := e.Parameters[:n-1]
		if len(values) == 1 {
			return values[0].String() + " ^ " + e.Parameters[n-1].String()
		}
		return "(" + joinExprs(values, ", ") + ") ^ " + e.Parameters[n-1].String()
	case opBldVector:
		return "[" + joinExprs(e.Parameters, ", ") + "]"
	case opBldStruct:
		parts := make([]string, len(e.Parameters))
		for i, p := range e.Parameters {
			parts[i] = exprLabelName(p) + ": " + p.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case opMake:
		return "(make " + nthString(e.Parameters, 1) + ") " + nthString(e.Parameters, 0)
	case opFlatten:
		return "(flatten " + nthString(e.Parameters, 1) + ") " + nthString(e.Parameters, 0)
	case opSlice:
		return nthString(e.Parameters, 0) + "[" + nthString(e.Parameters, 1) + " .. " +
			nthString(e.Parameters, 2) + "]"
	case opTranspose:
		return "transpose(" + joinExprs(e.Parameters, "; ") + ")"
	case opTimes:
		return nthString(e.Parameters, 0) + " times " + nthString(e.Parameters, 1)
	case opNumericCast:
		return "(" + nthString(e.Parameters, 0) + " :> " + nthString(e.Parameters, 1) + ")"
	case opRestart:
		return "(restart " + exprString(e.Wrapped) + " every " + nthString(e.Parameters, 0) + ")"
	case opActivate:
		return "(activate " + exprString(e.Wrapped) + " every " + nthString(e.Parameters, 0) +
			" initial " + nthString(e.Parameters, 1) + ")"
	case opActivateNoInit:
		return "(activate " + exprString(e.Wrapped) + " every " + nthString(e.Parameters, 0) +
			" default " + nthString(e.Parameters, 1) + ")"
	}
	if name, ok := genericNames[e.PredefOpr]; ok {
		return name + "(" + joinExprs(e.Parameters, ", ") + ")"
	}
	return "?(" + joinExprs(e.Parameters, ", ") + ")"
}

func (e *ExprCall) renderOperatorCall(name string) string {
	var b strings.Builder
	b.WriteString(name)
	if len(e.InstParameters) > 0 {
		b.WriteString(" <<")
		b.WriteString(joinExprs(e.InstParameters, ", "))
		b.WriteString(">>")
	}
	b.WriteString("(")
	b.WriteString(joinExprs(e.Parameters, ", "))
	b.WriteString(")")
	return b.String()
}

func renderProjection(flow Expression, path []Expression) string {
	return flow.String() + renderPath(path)
}

// renderPath renders projection path elements: labels as field access,
// anything else as an index.
func renderPath(path []Expression) string {
	var b strings.Builder
	for _, p := range path {
		if v, ok := p.(*ConstValue); ok && v.Kind == KindString {
			b.WriteString("." + v.Value)
			continue
		}
		b.WriteString("[" + p.String() + "]")
	}
	return b.String()
}

// flowsString renders a flow group, dropping the parentheses of a
// singleton group.
func flowsString(p Expression) string {
	if c, ok := p.(*ExprCall); ok && c.Operator == nil &&
		c.PredefOpr == opSeqExpr && len(c.Parameters) == 1 {
		return c.Parameters[0].String()
	}
	return p.String()
}

func joinExprs(exprs []Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

func nthString(exprs []Expression, i int) string {
	if i >= len(exprs) {
		return "?"
	}
	return exprs[i].String()
}

func exprString(e Expression) string {
	if e == nil {
		return "?"
	}
	return e.String()
}

func exprLabelName(e Expression) string {
	switch x := e.(type) {
	case *ConstValue:
		if x.Label != nil {
			return x.Label.Name
		}
	case *ExprId:
		if x.Label != nil {
			return x.Label.Name
		}
	case *ExprCall:
		if x.Label != nil {
			return x.Label.Name
		}
	}
	return "?"
}

func typeDisplayName(t Type) string {
	switch x := t.(type) {
	case *NamedType:
		return x.Name
	case nil:
		return "?"
	default:
		return "<anonymous>"
	}
}
