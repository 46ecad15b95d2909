package object3d

import "fmt"

// DimensionError is returned when data handed to a constructor does not have the trailing
// dimension the type requires.
type DimensionError struct {
	Type     string
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s requires data of dimension %d but received dimension %d", e.Type, e.Expected, e.Actual)
}

// NewDimensionError returns a DimensionError for the named type.
func NewDimensionError(typeName string, expected, actual int) error {
	return &DimensionError{Type: typeName, Expected: expected, Actual: actual}
}
