package expr

import (
	"errors"
	"fmt"

	"github.com/modelkit-io/go-modelkit/suite"
)

// ErrUnsupportedExpression is returned by Accessor for constructs the
// access layer does not expose: merge, match, when, and the clocked
// operators.
var ErrUnsupportedExpression = errors.New("expr: unsupported expression construct")

// Accessor wraps a suite expression with a typed read view.
type Accessor interface {
	// Expr returns the wrapped suite expression.
	Expr() suite.Expression
}

type accessor struct {
	expr suite.Expression
}

func (a accessor) Expr() suite.Expression { return a.expr }

// IdExpression is a reference to a constant, sensor, or variable.
type IdExpression struct {
	accessor
	Path suite.Referenceable
}

// ConstValue is a literal value.
type ConstValue struct {
	accessor
	Value string
	Kind  suite.ValueKind
}

// TypeReference is a type used as an expression argument.
type TypeReference struct {
	accessor
	Type suite.Type
}

// CallAccessor is the common part of operator call views.
type CallAccessor struct {
	accessor
	Code Eck
}

// UnaryOp is a call to -, +, not, lnot, int, real, pre, or reverse
// with a single operand.
type UnaryOp struct {
	CallAccessor
	Operand Accessor
}

// NAryOp is a call to an associative operator over two or more operands.
type NAryOp struct {
	CallAccessor
	Operands []Accessor
}

// BinaryOp is a call to a non-associative binary operator.
type BinaryOp struct {
	CallAccessor
	Left  Accessor
	Right Accessor
}

// IfThenElseOp is the if-then-else selector. Then and Else hold one
// accessor per flow.
type IfThenElseOp struct {
	CallAccessor
	Condition Accessor
	Then      []Accessor
	Else      []Accessor
}

// CaseBranch is one pattern/value pair of a case operator.
type CaseBranch struct {
	Pattern Accessor
	Value   Accessor
}

// CaseOp is the case selector.
type CaseOp struct {
	CallAccessor
	Selector Accessor
	Branches []CaseBranch
}

// InitOp is the -> operator: flows with their initial values.
type InitOp struct {
	CallAccessor
	Flows []Accessor
	Inits []Accessor
}

// PreOp is the pre operator.
type PreOp struct {
	CallAccessor
	Flows []Accessor
}

// FbyOp is the fby operator.
type FbyOp struct {
	CallAccessor
	Flows []Accessor
	Delay Accessor
	Inits []Accessor
}

// TimesOp is the times operator.
type TimesOp struct {
	CallAccessor
	Number Accessor
	Flow   Accessor
}

// PrjOp is the static projection.
type PrjOp struct {
	CallAccessor
	Flow Accessor
	Path []Accessor
}

// PrjDynOp is the dynamic projection with a default value.
type PrjDynOp struct {
	CallAccessor
	Flow    Accessor
	Path    []Accessor
	Default Accessor
}

// ChgIthOp is the with operator.
type ChgIthOp struct {
	CallAccessor
	Flow  Accessor
	Path  []Accessor
	Value Accessor
}

// MakeOp instantiates a structured value of a named type.
type MakeOp struct {
	CallAccessor
	Values []Accessor
	Type   Accessor
}

// FlattenOp decomposes a structured value of a named type.
type FlattenOp struct {
	CallAccessor
	Target Accessor
	Type   Accessor
}

// DataStructField is one labelled field of a structure expression.
type DataStructField struct {
	Label string
	Value Accessor
}

// DataStructOp builds a structure value.
type DataStructOp struct {
	CallAccessor
	Fields []DataStructField
}

// DataArrayOp builds an array value.
type DataArrayOp struct {
	CallAccessor
	Values []Accessor
}

// ScalarToVectorOp replicates scalars into a vector.
type ScalarToVectorOp struct {
	CallAccessor
	Values []Accessor
	Size   Accessor
}

// SliceOp extracts a sub-array.
type SliceOp struct {
	CallAccessor
	Array Accessor
	From  Accessor
	To    Accessor
}

// TransposeOp swaps two dimensions of an array.
type TransposeOp struct {
	CallAccessor
	Array Accessor
	Dim1  Accessor
	Dim2  Accessor
}

// ConcatOp concatenates arrays.
type ConcatOp struct {
	CallAccessor
	Operands []Accessor
}

// SharpOp is the exclusivity operator.
type SharpOp struct {
	CallAccessor
	Operands []Accessor
}

// NumericCastOp converts between numeric types.
type NumericCastOp struct {
	CallAccessor
	Flow Accessor
	Type Accessor
}

// ListExpression is a group of flows, as found inside selectors,
// activates, and structured-value constructors.
type ListExpression struct {
	CallAccessor
	Items []Accessor
}

// OpCall is a call to a user operator, possibly wrapped by
// higher-order constructs.
type OpCall struct {
	CallAccessor
	Operator *suite.Operator
	Args     []Accessor
	InstArgs []Accessor
}

// RestartOp is the restart higher-order construct.
type RestartOp struct {
	CallAccessor
	Operator Accessor
	Every    Accessor
}

// ActivateOp is the activate-with-initial-values construct.
type ActivateOp struct {
	CallAccessor
	Operator Accessor
	Every    Accessor
	Initial  Accessor
}

// ActivateNoInitOp is the activate-with-default-values construct.
type ActivateNoInitOp struct {
	CallAccessor
	Operator Accessor
	Every    Accessor
	Default  Accessor
}

// IteratorOp is a map/fold family construct. Extra holds the
// accumulator count, iteration condition, or default, depending on
// the iterator.
type IteratorOp struct {
	CallAccessor
	Operator Accessor
	Size     Accessor
	Extra    []Accessor
}

// NewAccessor wraps an expression with the matching typed view.
// Constructs outside the supported subset return
// ErrUnsupportedExpression.
func NewAccessor(expression suite.Expression) (Accessor, error) {
	switch e := expression.(type) {
	case *suite.ConstValue:
		return &ConstValue{accessor: accessor{e}, Value: e.Value, Kind: e.Kind}, nil
	case *suite.ExprId:
		return &IdExpression{accessor: accessor{e}, Path: e.Reference}, nil
	case *suite.ExprType:
		return &TypeReference{accessor: accessor{e}, Type: e.Type}, nil
	case *suite.ExprCall:
		return newCallAccessor(e)
	case nil:
		return nil, errors.New("expr: nil expression")
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedExpression, expression)
	}
}

func newCallAccessor(e *suite.ExprCall) (Accessor, error) {
	if e.Operator != nil || e.Wrapped != nil {
		return newOpAccessor(e)
	}
	code, err := EckFromCode(e.PredefOpr)
	if err != nil {
		return nil, err
	}
	call := CallAccessor{accessor: accessor{e}, Code: code}
	params, err := wrapAll(e.Parameters)
	if err != nil {
		return nil, err
	}

	switch code {
	case EckNeg, EckPos, EckNot, EckLnot, EckReal2Int, EckInt2Real, EckReverse:
		if len(params) != 1 {
			return nil, shapeError(code, len(params))
		}
		return &UnaryOp{CallAccessor: call, Operand: params[0]}, nil
	case EckAnd, EckOr, EckXor, EckPlus, EckMul:
		return &NAryOp{CallAccessor: call, Operands: params}, nil
	case EckSub, EckSlash, EckDiv, EckMod, EckLess, EckLEqual, EckGreat,
		EckGEqual, EckEqual, EckNEqual, EckLand, EckLor, EckLxor, EckLsl, EckLsr:
		if len(params) != 2 {
			return nil, shapeError(code, len(params))
		}
		return &BinaryOp{CallAccessor: call, Left: params[0], Right: params[1]}, nil
	case EckSharp:
		return &SharpOp{CallAccessor: call, Operands: params}, nil
	case EckIf:
		then, err1 := flowsAt(e.Parameters, 1)
		else_, err2 := flowsAt(e.Parameters, 2)
		if len(params) != 3 || err1 != nil || err2 != nil {
			return nil, shapeError(code, len(params))
		}
		return &IfThenElseOp{CallAccessor: call, Condition: params[0], Then: then, Else: else_}, nil
	case EckCase:
		if len(params) != 3 {
			return nil, shapeError(code, len(params))
		}
		values, err1 := groupOperands(e.Parameters, 1)
		patterns, err2 := groupOperands(e.Parameters, 2)
		if err1 != nil || err2 != nil || len(values) != len(patterns) {
			return nil, shapeError(code, len(params))
		}
		branches := make([]CaseBranch, len(values))
		for i := range values {
			branches[i] = CaseBranch{Pattern: patterns[i], Value: values[i]}
		}
		return &CaseOp{CallAccessor: call, Selector: params[0], Branches: branches}, nil
	case EckFollow:
		flows, err1 := flowsAt(e.Parameters, 0)
		inits, err2 := flowsAt(e.Parameters, 1)
		if len(params) != 2 || err1 != nil || err2 != nil {
			return nil, shapeError(code, len(params))
		}
		return &InitOp{CallAccessor: call, Flows: flows, Inits: inits}, nil
	case EckPre:
		return &PreOp{CallAccessor: call, Flows: params}, nil
	case EckFby:
		if len(params) < 3 || len(params)%2 == 0 {
			return nil, shapeError(code, len(params))
		}
		n := (len(params) - 1) / 2
		return &FbyOp{
			CallAccessor: call,
			Flows:        params[:n],
			Delay:        params[n],
			Inits:        params[n+1:],
		}, nil
	case EckTimes:
		if len(params) != 2 {
			return nil, shapeError(code, len(params))
		}
		return &TimesOp{CallAccessor: call, Number: params[0], Flow: params[1]}, nil
	case EckPrj:
		if len(params) < 2 {
			return nil, shapeError(code, len(params))
		}
		return &PrjOp{CallAccessor: call, Flow: params[0], Path: params[1:]}, nil
	case EckPrjDyn:
		if len(params) < 3 {
			return nil, shapeError(code, len(params))
		}
		n := len(params)
		return &PrjDynOp{CallAccessor: call, Flow: params[0], Path: params[1 : n-1], Default: params[n-1]}, nil
	case EckChangeIth:
		if len(params) < 3 {
			return nil, shapeError(code, len(params))
		}
		return &ChgIthOp{CallAccessor: call, Flow: params[0], Value: params[1], Path: params[2:]}, nil
	case EckMake:
		values, err1 := groupOperands(e.Parameters, 0)
		if len(params) != 2 || err1 != nil {
			return nil, shapeError(code, len(params))
		}
		return &MakeOp{CallAccessor: call, Values: values, Type: params[1]}, nil
	case EckFlatten:
		if len(params) != 2 {
			return nil, shapeError(code, len(params))
		}
		return &FlattenOp{CallAccessor: call, Target: params[0], Type: params[1]}, nil
	case EckBldStruct:
		fields := make([]DataStructField, len(e.Parameters))
		for i, p := range e.Parameters {
			fields[i] = DataStructField{Label: paramLabel(p), Value: params[i]}
		}
		return &DataStructOp{CallAccessor: call, Fields: fields}, nil
	case EckBldVector:
		return &DataArrayOp{CallAccessor: call, Values: params}, nil
	case EckScalarToVector:
		if len(params) < 2 {
			return nil, shapeError(code, len(params))
		}
		n := len(params)
		return &ScalarToVectorOp{CallAccessor: call, Values: params[:n-1], Size: params[n-1]}, nil
	case EckSlice:
		if len(params) != 3 {
			return nil, shapeError(code, len(params))
		}
		return &SliceOp{CallAccessor: call, Array: params[0], From: params[1], To: params[2]}, nil
	case EckTranspose:
		if len(params) != 3 {
			return nil, shapeError(code, len(params))
		}
		return &TransposeOp{CallAccessor: call, Array: params[0], Dim1: params[1], Dim2: params[2]}, nil
	case EckConcat:
		return &ConcatOp{CallAccessor: call, Operands: params}, nil
	case EckNumericCast:
		if len(params) != 2 {
			return nil, shapeError(code, len(params))
		}
		return &NumericCastOp{CallAccessor: call, Flow: params[0], Type: params[1]}, nil
	case EckSeqExpr:
		return &ListExpression{CallAccessor: call, Items: params}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, code)
}

// newOpAccessor wraps user operator calls and higher-order wrappers.
func newOpAccessor(e *suite.ExprCall) (Accessor, error) {
	if e.Wrapped != nil {
		code, err := EckFromCode(e.PredefOpr)
		if err != nil {
			return nil, err
		}
		call := CallAccessor{accessor: accessor{e}, Code: code}
		wrapped, err := NewAccessor(e.Wrapped)
		if err != nil {
			return nil, err
		}
		params, err := wrapAll(e.Parameters)
		if err != nil {
			return nil, err
		}
		switch code {
		case EckRestart:
			if len(params) != 1 {
				return nil, shapeError(code, len(params))
			}
			return &RestartOp{CallAccessor: call, Operator: wrapped, Every: params[0]}, nil
		case EckActivate:
			if len(params) != 2 {
				return nil, shapeError(code, len(params))
			}
			return &ActivateOp{CallAccessor: call, Operator: wrapped, Every: params[0], Initial: params[1]}, nil
		case EckActivateNoInit:
			if len(params) != 2 {
				return nil, shapeError(code, len(params))
			}
			return &ActivateNoInitOp{CallAccessor: call, Operator: wrapped, Every: params[0], Default: params[1]}, nil
		case EckMap, EckMapi, EckFold, EckFoldi, EckMapFold, EckMapFoldi,
			EckFoldw, EckFoldwi, EckMapw, EckMapwi, EckMapFoldw, EckMapFoldwi:
			if len(params) == 0 {
				return nil, shapeError(code, len(params))
			}
			return &IteratorOp{CallAccessor: call, Operator: wrapped, Size: params[0], Extra: params[1:]}, nil
		}
		return nil, fmt.Errorf("%w: %s modifier", ErrUnsupportedExpression, code)
	}

	args, err := wrapAll(e.Parameters)
	if err != nil {
		return nil, err
	}
	instArgs, err := wrapAll(e.InstParameters)
	if err != nil {
		return nil, err
	}
	return &OpCall{
		CallAccessor: CallAccessor{accessor: accessor{e}, Code: EckNone},
		Operator:     e.Operator,
		Args:         args,
		InstArgs:     instArgs,
	}, nil
}

func wrapAll(exprs []suite.Expression) ([]Accessor, error) {
	out := make([]Accessor, len(exprs))
	for i, e := range exprs {
		a, err := NewAccessor(e)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// groupOperands unwraps the group expression at the given parameter
// index and wraps its operands.
func groupOperands(params []suite.Expression, index int) ([]Accessor, error) {
	if index >= len(params) {
		return nil, fmt.Errorf("expr: missing group parameter %d", index)
	}
	group, ok := params[index].(*suite.ExprCall)
	if !ok || group.PredefOpr != EckSeqExpr.Code() {
		return nil, fmt.Errorf("expr: parameter %d is not a group", index)
	}
	return wrapAll(group.Parameters)
}

// flowsAt wraps the parameter at the given index as a flow list: a
// group contributes its operands, anything else is a single flow.
func flowsAt(params []suite.Expression, index int) ([]Accessor, error) {
	if index >= len(params) {
		return nil, fmt.Errorf("expr: missing parameter %d", index)
	}
	if group, ok := params[index].(*suite.ExprCall); ok && group.PredefOpr == EckSeqExpr.Code() {
		return wrapAll(group.Parameters)
	}
	a, err := NewAccessor(params[index])
	if err != nil {
		return nil, err
	}
	return []Accessor{a}, nil
}

func paramLabel(e suite.Expression) string {
	switch x := e.(type) {
	case *suite.ConstValue:
		if x.Label != nil {
			return x.Label.Name
		}
	case *suite.ExprId:
		if x.Label != nil {
			return x.Label.Name
		}
	case *suite.ExprCall:
		if x.Label != nil {
			return x.Label.Name
		}
	}
	return ""
}

func shapeError(code Eck, n int) error {
	return fmt.Errorf("expr: %s: unexpected parameter count %d", code, n)
}
