package bmi

import "fmt"

// InvalidInputError is returned when weight or height is not a positive finite number.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %v (must be a positive finite number)", e.Field, e.Value)
}

// UnknownCategoryError means a Category value has no display mapping.
type UnknownCategoryError struct {
	Category Category
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown bmi category: %q", string(e.Category))
}
