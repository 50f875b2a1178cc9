package create

import (
	"errors"
	"fmt"
)

// ErrEmptyTree is returned when a grammar list that requires at least
// one element is empty.
var ErrEmptyTree = errors.New("create: illegal empty tree")

// SyntaxError reports a grammar node with the wrong shape: wrong
// arity, wrong discriminator, or an empty required list.
type SyntaxError struct {
	Context string
	Item    any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("create: %s: %v: syntax error", e.Context, e.Item)
}

func syntaxError(context string, item any) error {
	return &SyntaxError{Context: context, Item: item}
}

// IdentifierError reports a label or field name that is not a valid
// identifier.
type IdentifierError struct {
	Context string
	Item    any
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("create: %s: %v: not a valid identifier", e.Context, e.Item)
}

func identifierError(context string, item any) error {
	return &IdentifierError{Context: context, Item: item}
}

// PolymorphicTypeError reports a polymorphic type placeholder used
// where only a concrete construction is valid.
type PolymorphicTypeError struct {
	Context string
	Name    string
}

func (e *PolymorphicTypeError) Error() string {
	return fmt.Sprintf("create: %s: %s: illegal polymorphic type", e.Context, e.Name)
}

func polymorphicError(context, name string) error {
	return &PolymorphicTypeError{Context: context, Name: name}
}

// UnsupportedError reports a well-formed construct outside the
// supported subset, such as an unknown predefined operator code.
type UnsupportedError struct {
	Context string
	Item    any
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("create: %s: %v: unsupported construct", e.Context, e.Item)
}

func unsupportedError(context string, item any) error {
	return &UnsupportedError{Context: context, Item: item}
}

// KindError reports a parameter that is not an instance of the
// required host class.
type KindError struct {
	Context  string
	Param    string
	Expected string
	Actual   any
}

func (e *KindError) Error() string {
	return fmt.Sprintf("create: %s: %s: expected %s, got %T",
		e.Context, e.Param, e.Expected, e.Actual)
}

// checkObject guards a host object parameter, mirroring the shared
// per-parameter kind check of the scripting API.
func checkObject[T any](obj any, context, param, expected string) (T, error) {
	t, ok := obj.(T)
	if !ok {
		var zero T
		return zero, &KindError{Context: context, Param: param, Expected: expected, Actual: obj}
	}
	return t, nil
}
