package utils

import (
	"github.com/pkg/errors"
)

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected interface{}, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}

// NewUnsupportedOperandError is used when an operation is handed an operand type it has no
// implementation for.
func NewUnsupportedOperandError(operation string, actual interface{}, supported ...string) error {
	return errors.Errorf("%s is not available for operands of type %T, use one of %v", operation, actual, supported)
}

// NewShapeMismatchError is used when two batches cannot be combined elementwise.
func NewShapeMismatchError(operation string, left, right []int) error {
	return errors.Errorf("%s: shapes %v and %v are not compatible", operation, left, right)
}
