package vector

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// maxAllocBytes bounds a single block. The runtime refuses slices whose byte
// size does not fit in an int, so requests above it can never be satisfied.
const maxAllocBytes = math.MaxInt

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// RawMemory is a fixed-size block of slots for elements of type T.
//
// RawMemory never constructs or destroys elements: which slots hold live
// values is tracked entirely by the owner. A slot that is not live holds the
// zero value of T.
//
// RawMemory must not be copied; transfer ownership with Swap.
type RawMemory[T any] struct {
	_   noCopy
	buf []T // len(buf) == cap(buf) == capacity
}

// AllocateRaw returns a block sized for capacity elements of T, or an empty
// block if capacity is 0. If limit > 0, requests above limit slots fail.
// A failed allocation returns ErrAllocation and allocates nothing.
func AllocateRaw[T any](capacity, limit int) (RawMemory[T], error) {
	if capacity == 0 {
		return RawMemory[T]{}, nil
	}
	if err := checkAlloc[T](capacity, limit); err != nil {
		return RawMemory[T]{}, err
	}
	buf, err := makeBlock[T](capacity)
	if err != nil {
		return RawMemory[T]{}, err
	}
	return RawMemory[T]{buf: buf}, nil
}

// makeBlock turns the runtime's "len out of range" panic into ErrAllocation.
func makeBlock[T any](n int) (buf []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Wrapf(ErrAllocation, "capacity %d: %v", n, r)
		}
	}()
	return make([]T, n), nil
}

func checkAlloc[T any](capacity, limit int) error {
	if capacity < 0 {
		return errors.Wrapf(ErrAllocation, "negative capacity %d", capacity)
	}
	if limit > 0 && capacity > limit {
		return errors.Wrapf(ErrAllocation, "capacity %d exceeds limit %d", capacity, limit)
	}
	if size := int(sizeOf[T]()); size > 0 && capacity > maxAllocBytes/size {
		return errors.Wrapf(ErrAllocation, "capacity %d of %d-byte elements overflows", capacity, size)
	}
	return nil
}

// Deallocate drops the block. Safe on an empty block. The caller must have
// destroyed every live element first.
func (m *RawMemory[T]) Deallocate() {
	m.buf = nil
}

// Cap returns the number of slots in the block.
func (m *RawMemory[T]) Cap() int {
	return len(m.buf)
}

// At returns the address of slot i without bounds or liveness checks.
func (m *RawMemory[T]) At(i int) *T {
	// Skip bounds checks; callers guarantee 0 <= i < Cap().
	return (*T)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(m.buf)), uintptr(i)*sizeOf[T]()))
}

// Tail returns the slots starting at offset. Tail(Cap()) is the empty
// one-past-end view.
func (m *RawMemory[T]) Tail(offset int) []T {
	return m.buf[offset:]
}

// Slots returns every slot of the block, live or not.
func (m *RawMemory[T]) Slots() []T {
	return m.buf
}

// Swap exchanges the blocks of m and other. No element is touched.
func (m *RawMemory[T]) Swap(other *RawMemory[T]) {
	m.buf, other.buf = other.buf, m.buf
}

// sizeOf returns the size of T in bytes.
func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
