package vector

import "github.com/pkg/errors"

var (
	// ErrAllocation is returned when a block of the requested size cannot be
	// obtained. The container is left unchanged.
	ErrAllocation = errors.New("vector: allocation failed")

	// ErrNotCopyable is returned by copying operations on vectors whose
	// element type is declared NoCopy.
	ErrNotCopyable = errors.New("vector: element type is not copyable")
)
