package create

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/modelkit-io/go-modelkit/expr"
	"github.com/modelkit-io/go-modelkit/suite"
)

// ExpressionTree is a validated expression to be built in a model.
// Trees are produced by the constructors of this package and stay
// independent from any model until Session.Build attaches them.
type ExpressionTree interface {
	exprTree()
}

// valueTree is a literal leaf.
type valueTree struct {
	value string
	kind  suite.ValueKind
	label string
}

// referenceTree is a leaf pointing at an existing declaration.
type referenceTree struct {
	ref   suite.Referenceable
	label string
}

// typeRefTree is a leaf pointing at an existing type, for the type
// argument of make, flatten, and numeric casts.
type typeRefTree struct {
	typ suite.Type
}

// callTree is an application of a predefined or user operator.
// Modifiers (restart, activate, iterators) are callTrees wrapping the
// call they modify; the outermost modifier is the tree root.
type callTree struct {
	code       expr.Eck
	op         *suite.Operator
	instName   string
	params     []ExpressionTree
	instParams []ExpressionTree
	wrapped    *callTree
	label      string
}

func (*valueTree) exprTree()     {}
func (*referenceTree) exprTree() {}
func (*typeRefTree) exprTree()   {}
func (*callTree) exprTree()      {}

func setLabel(t ExpressionTree, name string) {
	switch x := t.(type) {
	case *valueTree:
		x.label = name
	case *referenceTree:
		x.label = name
	case *callTree:
		x.label = name
	}
}

var (
	intLiteral   = regexp.MustCompile(`^[+-]?[0-9]+(_u?i(8|16|32|64))?$`)
	realLiteral  = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][+-]?[0-9]+)?(_f(32|64))?$`)
	charLiteral  = regexp.MustCompile(`^'(\\.|[^'\\])'$`)
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func isIdent(name string) bool { return identPattern.MatchString(name) }

// classifyLiteral determines the kind of a textual literal. Booleans
// win over identifiers, integers over reals, so a plain number is an
// integer unless it carries a dot, an exponent, or a float suffix.
// Bare identifiers are string literals, legal only in projection paths
// and structure labels.
func classifyLiteral(context, s string) (*valueTree, error) {
	switch {
	case s == "true" || s == "false":
		return &valueTree{value: s, kind: suite.KindBool}, nil
	case intLiteral.MatchString(s):
		return &valueTree{value: s, kind: suite.KindInt}, nil
	case realLiteral.MatchString(s):
		return &valueTree{value: s, kind: suite.KindReal}, nil
	case charLiteral.MatchString(s):
		return &valueTree{value: s, kind: suite.KindChar}, nil
	case isIdent(s):
		return &valueTree{value: s, kind: suite.KindString}, nil
	}
	return nil, syntaxError(context, s)
}

// normalizeTree turns a loose item into a validated tree: trees pass
// through, Go scalars and literal strings become values, declarations
// become references, types become type references, and slices become
// groups. Everything else is a syntax error.
func normalizeTree(context string, item any) (ExpressionTree, error) {
	switch x := item.(type) {
	case nil:
		return nil, syntaxError(context, nil)
	case ExpressionTree:
		return x, nil
	case bool:
		if x {
			return &valueTree{value: "true", kind: suite.KindBool}, nil
		}
		return &valueTree{value: "false", kind: suite.KindBool}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return &valueTree{value: fmt.Sprint(x), kind: suite.KindInt}, nil
	case float32:
		return &valueTree{value: formatReal(float64(x), 32), kind: suite.KindReal}, nil
	case float64:
		return &valueTree{value: formatReal(x, 64), kind: suite.KindReal}, nil
	case string:
		return classifyLiteral(context, x)
	case suite.Referenceable:
		return &referenceTree{ref: x}, nil
	case suite.Type:
		return &typeRefTree{typ: x}, nil
	case []any:
		return normalizeGroup(context, x)
	}
	return nil, syntaxError(context, item)
}

// normalizeGroup builds a parenthesized group. A group always becomes
// a sequence node, even for a single flow, so grouped operands keep
// their parentheses in the rendered form.
func normalizeGroup(context string, items []any) (ExpressionTree, error) {
	if len(items) == 0 {
		return nil, ErrEmptyTree
	}
	params, err := normalizeList(context, items)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckSeqExpr, params: params}, nil
}

func normalizeList(context string, items []any) ([]ExpressionTree, error) {
	trees := make([]ExpressionTree, len(items))
	for i, item := range items {
		t, err := normalizeTree(context, item)
		if err != nil {
			return nil, err
		}
		trees[i] = t
	}
	return trees, nil
}

// normalizeFlows accepts either one flow or a slice of flows, grouping
// the latter.
func normalizeFlows(context string, item any) (ExpressionTree, error) {
	if items, ok := item.([]any); ok {
		return normalizeGroup(context, items)
	}
	return normalizeTree(context, item)
}

// normalizeFlowList accepts either one flow or a slice of flows and
// returns the flow trees.
func normalizeFlowList(context string, item any) ([]ExpressionTree, error) {
	if items, ok := item.([]any); ok {
		return normalizeList(context, items)
	}
	t, err := normalizeTree(context, item)
	if err != nil {
		return nil, err
	}
	return []ExpressionTree{t}, nil
}

func groupOf(flows []ExpressionTree) ExpressionTree {
	return &callTree{code: expr.EckSeqExpr, params: flows}
}

// normalizePath validates projection path elements: identifiers become
// field labels, anything else must normalize to an index expression.
func normalizePath(context string, path []any) ([]ExpressionTree, error) {
	if len(path) == 0 {
		return nil, ErrEmptyTree
	}
	trees := make([]ExpressionTree, len(path))
	for i, item := range path {
		if s, ok := item.(string); ok && isIdent(s) &&
			s != "true" && s != "false" {
			trees[i] = &valueTree{value: s, kind: suite.KindString}
			continue
		}
		t, err := normalizeTree(context, item)
		if err != nil {
			return nil, err
		}
		trees[i] = t
	}
	return trees, nil
}

// normalizeType accepts an existing type and returns its reference
// tree.
func normalizeType(context string, item any) (ExpressionTree, error) {
	t, ok := item.(suite.Type)
	if !ok {
		return nil, &KindError{Context: context, Param: "type", Expected: "Type", Actual: item}
	}
	return &typeRefTree{typ: t}, nil
}

var unaryOps = map[expr.Eck]bool{
	expr.EckNot:      true,
	expr.EckNeg:      true,
	expr.EckPos:      true,
	expr.EckReal2Int: true,
	expr.EckInt2Real: true,
	expr.EckLnot:     true,
}

var binaryOps = map[expr.Eck]bool{
	expr.EckSub:    true,
	expr.EckSlash:  true,
	expr.EckDiv:    true,
	expr.EckMod:    true,
	expr.EckLess:   true,
	expr.EckLEqual: true,
	expr.EckGreat:  true,
	expr.EckGEqual: true,
	expr.EckEqual:  true,
	expr.EckNEqual: true,
	expr.EckLsl:    true,
	expr.EckLsr:    true,
}

var naryOps = map[expr.Eck]bool{
	expr.EckAnd:  true,
	expr.EckOr:   true,
	expr.EckXor:  true,
	expr.EckLand: true,
	expr.EckLor:  true,
	expr.EckLxor: true,
	expr.EckPlus: true,
	expr.EckMul:  true,
}

// Unary builds the application of a unary predefined operator.
func Unary(code expr.Eck, operand any) (ExpressionTree, error) {
	if !unaryOps[code] {
		return nil, unsupportedError("unary operator", code)
	}
	t, err := normalizeTree("unary operand", operand)
	if err != nil {
		return nil, err
	}
	return &callTree{code: code, params: []ExpressionTree{t}}, nil
}

// Binary builds the application of a binary predefined operator.
func Binary(code expr.Eck, left, right any) (ExpressionTree, error) {
	if !binaryOps[code] {
		return nil, unsupportedError("binary operator", code)
	}
	params, err := normalizeList("binary operand", []any{left, right})
	if err != nil {
		return nil, err
	}
	return &callTree{code: code, params: params}, nil
}

// Nary builds the application of an associative predefined operator
// over two or more operands.
func Nary(code expr.Eck, operands ...any) (ExpressionTree, error) {
	if !naryOps[code] {
		return nil, unsupportedError("nary operator", code)
	}
	if len(operands) < 2 {
		return nil, syntaxError("nary operands", len(operands))
	}
	params, err := normalizeList("nary operand", operands)
	if err != nil {
		return nil, err
	}
	return &callTree{code: code, params: params}, nil
}

// If builds a conditional expression. Each branch accepts one flow or
// a slice of flows; both branches carry the same number of flows and
// render as parenthesized groups.
func If(condition, then, otherwise any) (ExpressionTree, error) {
	cond, err := normalizeTree("if condition", condition)
	if err != nil {
		return nil, err
	}
	t, err := normalizeFlowList("then branch", then)
	if err != nil {
		return nil, err
	}
	e, err := normalizeFlowList("else branch", otherwise)
	if err != nil {
		return nil, err
	}
	if len(t) == 0 || len(t) != len(e) {
		return nil, syntaxError("if branches", len(t))
	}
	return &callTree{code: expr.EckIf, params: []ExpressionTree{cond, groupOf(t), groupOf(e)}}, nil
}

// CasePair is one branch of a case expression.
type CasePair struct {
	Pattern any
	Value   any
}

// Case builds a case expression over a selector. A non-nil
// defaultValue adds a trailing wildcard branch.
func Case(selector any, pairs []CasePair, defaultValue any) (ExpressionTree, error) {
	if len(pairs) == 0 {
		return nil, syntaxError("case branches", len(pairs))
	}
	sel, err := normalizeTree("case selector", selector)
	if err != nil {
		return nil, err
	}
	var patterns, values []any
	for _, p := range pairs {
		patterns = append(patterns, p.Pattern)
		values = append(values, p.Value)
	}
	if defaultValue != nil {
		patterns = append(patterns, &valueTree{value: "_", kind: suite.KindString})
		values = append(values, defaultValue)
	}
	vg, err := normalizeGroup("case value", values)
	if err != nil {
		return nil, err
	}
	pg, err := normalizeGroup("case pattern", patterns)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckCase, params: []ExpressionTree{sel, vg, pg}}, nil
}

// Call builds the application of a user operator.
func Call(op *suite.Operator, args ...any) (ExpressionTree, error) {
	if op == nil {
		return nil, &KindError{Context: "call", Param: "operator", Expected: "Operator", Actual: nil}
	}
	params, err := normalizeList("call argument", args)
	if err != nil {
		return nil, err
	}
	return &callTree{op: op, params: params}, nil
}

// HigherOrderCall builds the application of a user operator with
// static instantiation arguments, rendered between << and >>.
func HigherOrderCall(op *suite.Operator, args, instArgs []any) (ExpressionTree, error) {
	t, err := Call(op, args...)
	if err != nil {
		return nil, err
	}
	inst, err := normalizeList("instantiation argument", instArgs)
	if err != nil {
		return nil, err
	}
	call := t.(*callTree)
	call.instParams = inst
	return call, nil
}

// Make builds a structured value of the given type from flat flows.
func Make(typ any, flows ...any) (ExpressionTree, error) {
	tr, err := normalizeType("make", typ)
	if err != nil {
		return nil, err
	}
	group, err := normalizeGroup("make flow", flows)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckMake, params: []ExpressionTree{group, tr}}, nil
}

// Flatten explodes a structured flow of the given type into its
// elements.
func Flatten(typ any, flow any) (ExpressionTree, error) {
	tr, err := normalizeType("flatten", typ)
	if err != nil {
		return nil, err
	}
	f, err := normalizeTree("flatten flow", flow)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckFlatten, params: []ExpressionTree{f, tr}}, nil
}

// ScalarToVector replicates one or more flows into vectors of the
// given size.
func ScalarToVector(size any, flows ...any) (ExpressionTree, error) {
	if len(flows) == 0 {
		return nil, ErrEmptyTree
	}
	params, err := normalizeList("replicated flow", flows)
	if err != nil {
		return nil, err
	}
	sz, err := normalizeTree("vector size", size)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckScalarToVector, params: append(params, sz)}, nil
}

// DataArray builds an array value from its cells.
func DataArray(cells ...any) (ExpressionTree, error) {
	if len(cells) == 0 {
		return nil, ErrEmptyTree
	}
	params, err := normalizeList("array cell", cells)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckBldVector, params: params}, nil
}

// DataStruct builds a structure value from a flat list of label and
// value pairs.
func DataStruct(pairs ...any) (ExpressionTree, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyTree
	}
	if len(pairs)%2 != 0 {
		return nil, syntaxError("structure pairs", len(pairs))
	}
	params := make([]ExpressionTree, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		label, ok := pairs[i].(string)
		if !ok {
			return nil, syntaxError("structure label", pairs[i])
		}
		if !isIdent(label) {
			return nil, identifierError("structure label", label)
		}
		value, err := normalizeTree("structure value", pairs[i+1])
		if err != nil {
			return nil, err
		}
		setLabel(value, label)
		params = append(params, value)
	}
	return &callTree{code: expr.EckBldStruct, params: params}, nil
}

// Prj projects a flow along a static path of field labels and indexes.
func Prj(flow any, path ...any) (ExpressionTree, error) {
	f, err := normalizeTree("projected flow", flow)
	if err != nil {
		return nil, err
	}
	p, err := normalizePath("projection path", path)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckPrj, params: append([]ExpressionTree{f}, p...)}, nil
}

// PrjDyn projects a flow along a dynamic path, with a default value
// for out-of-range accesses.
func PrjDyn(flow, defaultValue any, path ...any) (ExpressionTree, error) {
	f, err := normalizeTree("projected flow", flow)
	if err != nil {
		return nil, err
	}
	p, err := normalizePath("projection path", path)
	if err != nil {
		return nil, err
	}
	d, err := normalizeTree("projection default", defaultValue)
	if err != nil {
		return nil, err
	}
	params := append([]ExpressionTree{f}, p...)
	return &callTree{code: expr.EckPrjDyn, params: append(params, d)}, nil
}

// ChangeIth copies a flow with the element at the given path replaced.
func ChangeIth(flow, value any, path ...any) (ExpressionTree, error) {
	f, err := normalizeTree("updated flow", flow)
	if err != nil {
		return nil, err
	}
	v, err := normalizeTree("updated value", value)
	if err != nil {
		return nil, err
	}
	p, err := normalizePath("update path", path)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckChangeIth, params: append([]ExpressionTree{f, v}, p...)}, nil
}

// Pre delays one or more flows by one cycle.
func Pre(flows ...any) (ExpressionTree, error) {
	if len(flows) == 0 {
		return nil, ErrEmptyTree
	}
	params, err := normalizeList("delayed flow", flows)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckPre, params: params}, nil
}

// Init initializes flows on the first cycle. Both arguments accept a
// single flow or a slice of flows; one initial value per flow.
func Init(flows, inits any) (ExpressionTree, error) {
	f, err := normalizeFlowList("initialized flow", flows)
	if err != nil {
		return nil, err
	}
	i, err := normalizeFlowList("initial value", inits)
	if err != nil {
		return nil, err
	}
	if len(f) == 0 || len(f) != len(i) {
		return nil, syntaxError("init flows", len(f))
	}
	return &callTree{code: expr.EckFollow, params: []ExpressionTree{groupOf(f), groupOf(i)}}, nil
}

// Fby delays flows by the given number of cycles with initial values.
// The parameters are laid out flat: the flows, then the delay, then
// one initial value per flow.
func Fby(flows, delay, inits any) (ExpressionTree, error) {
	f, err := normalizeFlowList("delayed flow", flows)
	if err != nil {
		return nil, err
	}
	i, err := normalizeFlowList("initial value", inits)
	if err != nil {
		return nil, err
	}
	if len(f) == 0 || len(f) != len(i) {
		return nil, syntaxError("fby flows", len(f))
	}
	d, err := normalizeTree("delay", delay)
	if err != nil {
		return nil, err
	}
	params := append(f, d)
	params = append(params, i...)
	return &callTree{code: expr.EckFby, params: params}, nil
}

// Times counts down from a value and emits true when it reaches zero.
func Times(count, flow any) (ExpressionTree, error) {
	c, err := normalizeTree("count", count)
	if err != nil {
		return nil, err
	}
	f, err := normalizeTree("counted flow", flow)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckTimes, params: []ExpressionTree{c, f}}, nil
}

// Slice extracts the elements of an array between two static indexes.
func Slice(array, from, to any) (ExpressionTree, error) {
	params, err := normalizeList("slice", []any{array, from, to})
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckSlice, params: params}, nil
}

// Concat concatenates two or more arrays.
func Concat(arrays ...any) (ExpressionTree, error) {
	if len(arrays) < 2 {
		return nil, syntaxError("concat operands", len(arrays))
	}
	params, err := normalizeList("concatenated array", arrays)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckConcat, params: params}, nil
}

// Reverse reverses the elements of an array.
func Reverse(array any) (ExpressionTree, error) {
	a, err := normalizeTree("reversed array", array)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckReverse, params: []ExpressionTree{a}}, nil
}

// Transpose swaps two dimensions of a multi-dimensional array.
func Transpose(array, dim1, dim2 any) (ExpressionTree, error) {
	params, err := normalizeList("transpose", []any{array, dim1, dim2})
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckTranspose, params: params}, nil
}

// Sharp is true when at most one of the flows is true.
func Sharp(flows ...any) (ExpressionTree, error) {
	if len(flows) == 0 {
		return nil, ErrEmptyTree
	}
	params, err := normalizeList("sharp flow", flows)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckSharp, params: params}, nil
}

// NumericCast converts a flow to another numeric type.
func NumericCast(flow, typ any) (ExpressionTree, error) {
	f, err := normalizeTree("cast flow", flow)
	if err != nil {
		return nil, err
	}
	tr, err := normalizeType("numeric cast", typ)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckNumericCast, params: []ExpressionTree{f, tr}}, nil
}

// modifierTarget checks that an item is an operator application a
// modifier can wrap: a user operator call, an iterator, or another
// modifier.
func modifierTarget(context string, item any) (*callTree, error) {
	t, err := normalizeTree(context, item)
	if err != nil {
		return nil, err
	}
	call, ok := t.(*callTree)
	if !ok || (call.op == nil && call.wrapped == nil) {
		return nil, syntaxError(context, item)
	}
	return call, nil
}

// Restart resets the state of an operator application every time the
// condition is true.
func Restart(target, every any) (ExpressionTree, error) {
	call, err := modifierTarget("restarted operator", target)
	if err != nil {
		return nil, err
	}
	e, err := normalizeTree("restart condition", every)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckRestart, wrapped: call, params: []ExpressionTree{e}}, nil
}

// Activate runs an operator application only when the clock is true,
// holding the initial values elsewhere before the first activation.
func Activate(target, clock, initial any) (ExpressionTree, error) {
	call, err := modifierTarget("activated operator", target)
	if err != nil {
		return nil, err
	}
	c, err := normalizeTree("activation clock", clock)
	if err != nil {
		return nil, err
	}
	i, err := normalizeFlows("activation initial", initial)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckActivate, wrapped: call, params: []ExpressionTree{c, i}}, nil
}

// ActivateNoInit runs an operator application only when the clock is
// true, emitting the default values elsewhere.
func ActivateNoInit(target, clock, defaults any) (ExpressionTree, error) {
	call, err := modifierTarget("activated operator", target)
	if err != nil {
		return nil, err
	}
	c, err := normalizeTree("activation clock", clock)
	if err != nil {
		return nil, err
	}
	d, err := normalizeFlows("activation default", defaults)
	if err != nil {
		return nil, err
	}
	return &callTree{code: expr.EckActivateNoInit, wrapped: call, params: []ExpressionTree{c, d}}, nil
}

func iterate(code expr.Eck, context string, target any, extra ...any) (ExpressionTree, error) {
	call, err := modifierTarget(context, target)
	if err != nil {
		return nil, err
	}
	params, err := normalizeList(context, extra)
	if err != nil {
		return nil, err
	}
	return &callTree{code: code, wrapped: call, params: params}, nil
}

// Map applies an operator pointwise over arrays of the given size.
func Map(target, size any) (ExpressionTree, error) {
	return iterate(expr.EckMap, "mapped operator", target, size)
}

// Mapi is Map with the iteration index as first input.
func Mapi(target, size any) (ExpressionTree, error) {
	return iterate(expr.EckMapi, "mapped operator", target, size)
}

// Fold accumulates an operator over arrays of the given size.
func Fold(target, size any) (ExpressionTree, error) {
	return iterate(expr.EckFold, "folded operator", target, size)
}

// Foldi is Fold with the iteration index as first input.
func Foldi(target, size any) (ExpressionTree, error) {
	return iterate(expr.EckFoldi, "folded operator", target, size)
}

// MapFold maps and accumulates an operator at once.
func MapFold(target, size any) (ExpressionTree, error) {
	return iterate(expr.EckMapFold, "mapfolded operator", target, size)
}

// MapFoldi is MapFold with the iteration index as first input.
func MapFoldi(target, size any) (ExpressionTree, error) {
	return iterate(expr.EckMapFoldi, "mapfolded operator", target, size)
}

// Foldw accumulates an operator while the condition holds.
func Foldw(target, size, condition any) (ExpressionTree, error) {
	return iterate(expr.EckFoldw, "folded operator", target, size, condition)
}

// Foldwi is Foldw with the iteration index as first input.
func Foldwi(target, size, condition any) (ExpressionTree, error) {
	return iterate(expr.EckFoldwi, "folded operator", target, size, condition)
}

// Mapw maps an operator while the condition holds, emitting the
// default values afterwards.
func Mapw(target, size, condition, defaults any) (ExpressionTree, error) {
	return iterate(expr.EckMapw, "mapped operator", target, size, condition, defaults)
}

// Mapwi is Mapw with the iteration index as first input.
func Mapwi(target, size, condition, defaults any) (ExpressionTree, error) {
	return iterate(expr.EckMapwi, "mapped operator", target, size, condition, defaults)
}

// MapFoldw maps and accumulates an operator while the condition holds.
func MapFoldw(target, size, condition, defaults any) (ExpressionTree, error) {
	return iterate(expr.EckMapFoldw, "mapfolded operator", target, size, condition, defaults)
}

// MapFoldwi is MapFoldw with the iteration index as first input.
func MapFoldwi(target, size, condition, defaults any) (ExpressionTree, error) {
	return iterate(expr.EckMapFoldwi, "mapfolded operator", target, size, condition, defaults)
}

// Build attaches a validated tree to the model, owned by context, and
// returns the root expression. References to declarations, types, and
// operators are buffered as deferred links; call Commit once the
// enclosing construction is complete.
func (s *Session) Build(tree ExpressionTree, context suite.Object) (suite.Expression, error) {
	if tree == nil {
		return nil, ErrEmptyTree
	}
	return s.buildExpr(tree, context), nil
}

// buildExpr allocates host objects for a tree. Validation happened at
// construction time, so building cannot fail and never leaves a
// half-built node behind.
func (s *Session) buildExpr(tree ExpressionTree, owner suite.Object) suite.Expression {
	switch t := tree.(type) {
	case *valueTree:
		v := suite.NewConstValue(owner, t.value, t.kind)
		if t.label != "" {
			v.Label = suite.NewLabel(v, t.label)
		}
		return v
	case *referenceTree:
		id := suite.NewExprId(owner)
		s.addPendingLink(id, "reference", t.ref)
		if t.label != "" {
			id.Label = suite.NewLabel(id, t.label)
		}
		return id
	case *typeRefTree:
		et := suite.NewExprType(owner)
		s.addPendingLink(et, "type", t.typ)
		return et
	case *callTree:
		call := suite.NewExprCall(owner, int(t.code))
		if t.op != nil {
			call.InstName = t.instName
			s.addPendingLink(call, "operator", t.op)
		}
		for _, p := range t.params {
			call.Parameters = append(call.Parameters, s.buildExpr(p, call))
		}
		for _, p := range t.instParams {
			call.InstParameters = append(call.InstParameters, s.buildExpr(p, call))
		}
		if t.wrapped != nil {
			call.Wrapped = s.buildExpr(t.wrapped, call)
		}
		if t.label != "" {
			call.Label = suite.NewLabel(call, t.label)
		}
		return call
	}
	return nil
}

func formatReal(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}
