package vector

import (
	"iter"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Vector is a resizable array of T with value semantics.
//
// Slots [0, Len()) of the underlying block hold live elements, the rest of the
// block holds zero values. Every mutation either completes or leaves the
// vector as it was before the call; see the individual methods for the few
// documented exceptions.
//
// The zero value is an empty vector of plain values. A Vector must not be
// copied; use Clone, Take or CopyFrom. Not goroutine-safe.
type Vector[T any] struct {
	data   RawMemory[T]
	size   int
	traits Traits[T]
	opts   *options
}

// New returns an empty vector. A nil tr treats T as a plain value.
func New[T any](tr *Traits[T], opts ...Option) *Vector[T] {
	v := &Vector[T]{opts: newOptions(opts)}
	if tr != nil {
		v.traits = *tr
	}
	return v
}

// NewSized returns a vector holding n value-initialised elements.
// If initialising element k fails, elements [0, k) are destroyed, the block
// is dropped and the error is returned.
func NewSized[T any](n int, tr *Traits[T], opts ...Option) (*Vector[T], error) {
	v := New(tr, opts...)
	if err := v.allocate(&v.data, n); err != nil {
		return nil, err
	}
	if i, err := v.traits.constructN(v.data.Slots()); err != nil {
		v.data.Deallocate()
		v.rollback("construct", err)
		return nil, errors.Wrapf(err, "vector: construct element %d", i)
	}
	v.size = n
	return v, nil
}

// Clone returns an independent copy of v with a block sized to v.Len().
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := &Vector[T]{traits: v.traits, opts: v.opts}
	if err := v.copyInto(c); err != nil {
		return nil, err
	}
	return c, nil
}

// copyInto fills the empty vector c with copies of v's elements.
func (v *Vector[T]) copyInto(c *Vector[T]) error {
	if v.traits.NoCopy {
		return ErrNotCopyable
	}
	if err := c.allocate(&c.data, v.size); err != nil {
		return err
	}
	if i, err := v.traits.copyN(c.data.Slots(), v.live()); err != nil {
		c.data.Deallocate()
		c.rollback("copy", err)
		return errors.Wrapf(err, "vector: copy element %d", i)
	}
	c.size = v.size
	return nil
}

// Take moves v's elements into a new vector and leaves v empty.
func (v *Vector[T]) Take() *Vector[T] {
	t := &Vector[T]{traits: v.traits, opts: v.opts}
	t.Swap(v)
	return t
}

// CopyFrom replaces v's elements with copies of src's elements.
//
// When src does not fit in v's block a full copy is built first and swapped
// in, so a failure leaves v unchanged. Otherwise v is updated in place: the
// common prefix is assigned, then the surplus tail is destroyed or the
// missing suffix is copied in. A failing assignment leaves the prefix
// partially updated; a failing suffix copy leaves v.Len() unchanged.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.traits.NoCopy {
		return ErrNotCopyable
	}
	if src.size > v.Cap() {
		c := &Vector[T]{traits: src.traits, opts: v.opts}
		if err := src.copyInto(c); err != nil {
			return err
		}
		v.Swap(c)
		c.Release()
		return nil
	}

	common := min(v.size, src.size)
	for i := range common {
		if err := v.traits.assign(v.data.At(i), src.data.At(i)); err != nil {
			v.rollback("assign", err)
			return errors.Wrapf(err, "vector: assign element %d", i)
		}
	}
	if src.size < v.size {
		v.traits.destroyN(v.data.Slots()[src.size:v.size])
	} else if i, err := v.traits.copyN(v.data.Tail(v.size), src.live()[v.size:]); err != nil {
		v.rollback("assign", err)
		return errors.Wrapf(err, "vector: copy element %d", v.size+i)
	}
	v.size = src.size
	return nil
}

// MoveFrom destroys v's elements and takes over src's block, length and
// traits. src is left empty. Never fails.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Release()
	v.data.Swap(&src.data)
	v.size, src.size = src.size, 0
	v.traits, v.opts = src.traits, src.opts
}

// Swap exchanges the contents of v and other in constant time.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.data.Swap(&other.data)
	v.size, other.size = other.size, v.size
	v.traits, other.traits = other.traits, v.traits
	v.opts, other.opts = other.opts, v.opts
}

// Release destroys every element in index order and drops the block.
// The vector is empty and reusable afterwards.
func (v *Vector[T]) Release() {
	v.traits.destroyN(v.live())
	v.size = 0
	v.data.Deallocate()
}

// Clear destroys every element but keeps the block.
func (v *Vector[T]) Clear() {
	v.traits.destroyN(v.live())
	v.size = 0
}

// Reserve makes room for at least n elements. It is a no-op if n <= Cap().
// Otherwise a block of exactly n slots is allocated and the elements are
// relocated into it. On failure the vector is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	var nd RawMemory[T]
	if err := v.allocate(&nd, n); err != nil {
		v.rollback("reserve", err)
		return err
	}
	if err := v.relocate(&nd, v.size, 0); err != nil {
		v.rollback("reserve", err)
		return err
	}
	v.commit(&nd)
	return nil
}

// Resize changes the length to n. Shrinking destroys [n, Len()); growing
// reserves n slots and value-initialises [Len(), n). If initialisation fails
// the length is unchanged, the capacity may have grown.
func (v *Vector[T]) Resize(n int) error {
	assertf(n >= 0, "Resize(%d): negative length", n)
	switch {
	case n < v.size:
		v.traits.destroyN(v.data.Slots()[n:v.size])
		v.size = n
		return nil
	case n == v.size:
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	if i, err := v.traits.constructN(v.data.Tail(v.size)[:n-v.size]); err != nil {
		v.rollback("resize", err)
		return errors.Wrapf(err, "vector: construct element %d", v.size+i)
	}
	v.size = n
	return nil
}

// PushBack appends a copy of val.
func (v *Vector[T]) PushBack(val T) error {
	if v.traits.NoCopy {
		return ErrNotCopyable
	}
	_, err := v.EmplaceBack(func() (T, error) { return v.traits.copy(&val) })
	return err
}

// PushBackMove appends *p by moving it; *p is left moved-from on success.
func (v *Vector[T]) PushBackMove(p *T) error {
	_, err := v.EmplaceBack(func() (T, error) { return v.traits.move(p) })
	return err
}

// EmplaceBack appends the element produced by ctor and returns its address.
// A nil ctor value-initialises the element.
//
// When the block is full a new one of max(1, 2*Cap()) slots is allocated and
// the new element is built there before the existing elements are relocated,
// so a failing ctor leaves the old block untouched.
func (v *Vector[T]) EmplaceBack(ctor func() (T, error)) (*T, error) {
	if ctor == nil {
		ctor = v.traits.construct
	}
	if v.size < v.Cap() {
		elem, err := ctor()
		if err != nil {
			v.rollback("emplace_back", err)
			return nil, errors.Wrapf(err, "vector: construct element %d", v.size)
		}
		*v.data.At(v.size) = elem
		v.size++
		return v.data.At(v.size - 1), nil
	}

	var nd RawMemory[T]
	if err := v.allocate(&nd, v.grownCap()); err != nil {
		v.rollback("emplace_back", err)
		return nil, err
	}
	elem, err := ctor()
	if err != nil {
		v.rollback("emplace_back", err)
		return nil, errors.Wrapf(err, "vector: construct element %d", v.size)
	}
	*nd.At(v.size) = elem
	if err := v.relocate(&nd, v.size, 0); err != nil {
		v.traits.destroy(nd.At(v.size))
		v.rollback("emplace_back", err)
		return nil, err
	}
	v.commit(&nd)
	v.size++
	return v.data.At(v.size - 1), nil
}

// PopBack destroys the last element. It is a no-op on an empty vector.
func (v *Vector[T]) PopBack() {
	assertf(v.size > 0, "PopBack on empty vector")
	if v.size == 0 {
		return
	}
	v.size--
	v.traits.destroy(v.data.At(v.size))
}

// Insert inserts a copy of val before pos and returns pos.
func (v *Vector[T]) Insert(pos int, val T) (int, error) {
	if v.traits.NoCopy {
		return 0, ErrNotCopyable
	}
	return v.Emplace(pos, func() (T, error) { return v.traits.copy(&val) })
}

// InsertMove inserts *p before pos by moving it and returns pos.
func (v *Vector[T]) InsertMove(pos int, p *T) (int, error) {
	return v.Emplace(pos, func() (T, error) { return v.traits.move(p) })
}

// Emplace inserts the element produced by ctor before pos and returns pos.
// pos must be in [0, Len()]; pos == Len() appends. A nil ctor
// value-initialises the element.
//
// When the block is full the new element is built in a fresh block first,
// then the elements before and after pos are relocated around it. A failure
// at any step destroys what was built in the fresh block and leaves the
// vector unchanged.
func (v *Vector[T]) Emplace(pos int, ctor func() (T, error)) (int, error) {
	assertf(pos >= 0 && pos <= v.size, "Emplace position %d out of range [0,%d]", pos, v.size)
	if ctor == nil {
		ctor = v.traits.construct
	}
	if pos == v.size {
		if _, err := v.EmplaceBack(ctor); err != nil {
			return 0, err
		}
		return pos, nil
	}

	if v.size < v.Cap() {
		tmp, err := ctor()
		if err != nil {
			v.rollback("emplace", err)
			return 0, errors.Wrapf(err, "vector: construct element %d", pos)
		}
		// Shift [pos, size) one slot right, last element first.
		s := v.data.Slots()
		copy(s[pos+1:v.size+1], s[pos:v.size])
		s[pos] = tmp
		v.size++
		return pos, nil
	}

	var nd RawMemory[T]
	if err := v.allocate(&nd, v.grownCap()); err != nil {
		v.rollback("emplace", err)
		return 0, err
	}
	elem, err := ctor()
	if err != nil {
		v.rollback("emplace", err)
		return 0, errors.Wrapf(err, "vector: construct element %d", pos)
	}
	*nd.At(pos) = elem
	if err := v.relocate(&nd, pos, 1); err != nil {
		v.traits.destroy(nd.At(pos))
		v.rollback("emplace", err)
		return 0, err
	}
	v.commit(&nd)
	v.size++
	return pos, nil
}

// Erase removes the element at pos and returns pos, which now indexes the
// element that followed it (or Len()). pos must be in [0, Len()).
func (v *Vector[T]) Erase(pos int) int {
	assertf(pos >= 0 && pos < v.size, "Erase position %d out of range [0,%d)", pos, v.size)
	s := v.data.Slots()
	erased := s[pos]
	copy(s[pos:v.size-1], s[pos+1:v.size])
	s[v.size-1] = erased
	v.PopBack()
	return pos
}

// At returns the address of element i. i must be in [0, Len()); the index is
// only checked in builds with the vectordebug tag.
func (v *Vector[T]) At(i int) *T {
	assertf(i >= 0 && i < v.size, "index %d out of range [0,%d)", i, v.size)
	return v.data.At(i)
}

// Get returns element i. See At.
func (v *Vector[T]) Get(i int) T {
	return *v.At(i)
}

// All yields the index and address of every element from first to last.
// Growing the vector while iterating invalidates the yielded addresses.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data.At(i)) {
				return
			}
		}
	}
}

// Values yields every element from first to last.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.data.At(i)) {
				return
			}
		}
	}
}

// Slice returns the live elements as a slice sharing v's block. Appending to
// it never writes into v. It is invalidated by the next growth.
func (v *Vector[T]) Slice() []T {
	return v.data.Slots()[:v.size:v.size]
}

func (v *Vector[T]) live() []T {
	return v.data.Slots()[:v.size]
}

func (v *Vector[T]) options() *options {
	if v.opts == nil {
		return defaultOptions
	}
	return v.opts
}

func (v *Vector[T]) grownCap() int {
	if v.Cap() == 0 {
		return 1
	}
	return 2 * v.Cap()
}

// allocate obtains a block of capacity slots and swaps it into dst.
func (v *Vector[T]) allocate(dst *RawMemory[T], capacity int) error {
	o := v.options()
	mem, err := AllocateRaw[T](capacity, o.maxCapacity)
	o.metrics.observeAllocation(capacity, err)
	if err != nil {
		return err
	}
	dst.Swap(&mem)
	return nil
}

// relocate transfers the live elements into nd: [0, index) to the front of
// nd and [index, Len()) after a gap of gap slots. On failure nothing built
// by relocate is left live in nd and v is untouched.
func (v *Vector[T]) relocate(nd *RawMemory[T], index, gap int) error {
	dst, src := nd.Slots(), v.live()
	if i, err := v.traits.relocateN(dst[:index], src[:index]); err != nil {
		return errors.Wrapf(err, "vector: relocate element %d", i)
	}
	if i, err := v.traits.relocateN(dst[index+gap:], src[index:]); err != nil {
		v.traits.destroyN(dst[:index])
		return errors.Wrapf(err, "vector: relocate element %d", index+i)
	}

	o := v.options()
	byMove := v.traits.relocateByMove()
	o.metrics.observeRelocation(byMove, v.size)
	mode := relocateCopy
	if byMove {
		mode = relocateMove
	}
	level.Debug(o.logger).Log("msg", "relocated vector storage", "from", v.Cap(), "to", nd.Cap(), "len", v.size, "relocation", mode)
	return nil
}

// commit destroys the originals and installs nd as the vector's block.
func (v *Vector[T]) commit(nd *RawMemory[T]) {
	v.traits.destroyN(v.live())
	v.data.Swap(nd)
}

func (v *Vector[T]) rollback(op string, err error) {
	o := v.options()
	o.metrics.observeRollback(op)
	level.Debug(o.logger).Log("msg", "vector operation rolled back", "op", op, "len", v.size, "cap", v.Cap(), "err", err)
}
