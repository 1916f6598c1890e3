package vecmem

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when topK is not positive.
	ErrInvalidK = errors.New("top-k must be positive")

	// ErrInvalidName is returned when a collection name is blank.
	ErrInvalidName = errors.New("collection name must not be blank")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch, or a
// create-or-get request for an existing collection with a different dimension.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates a non-positive configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrSizeMismatch indicates that parallel batch lists have unequal lengths.
type ErrSizeMismatch struct {
	Field    string
	Expected int
	Actual   int
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("size mismatch: %s has %d elements, expected %d", e.Field, e.Actual, e.Expected)
}

// ErrInvalidID indicates a blank record id within a batch.
type ErrInvalidID struct {
	Index int
}

func (e *ErrInvalidID) Error() string {
	return fmt.Sprintf("id at index %d must not be blank", e.Index)
}

// ErrDuplicateID indicates that an add targeted an id already present.
type ErrDuplicateID struct {
	ID string
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("id already exists: %s", e.ID)
}
