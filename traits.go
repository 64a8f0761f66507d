package vector

// Traits describes how a Vector manages the lifetime of its elements.
//
// Every hook is optional. A nil Traits, or a Traits with no hooks set,
// describes a plain Go value: new elements are the zero value, copies and
// moves are assignments and destruction only clears the slot.
//
// Hooks that can fail report the failure as an error. A failing hook must
// leave its source untouched and must not produce a live element.
//
// A Traits that sets Destroy must also set Copy or NoCopy: the default copy
// is a shallow assignment, so Clone, CopyFrom, PushBack and Insert would
// otherwise produce elements sharing what Destroy releases.
type Traits[T any] struct {
	// New value-initialises a fresh element.
	New func() (T, error)
	// Copy returns an independent copy of a live element.
	Copy func(src *T) (T, error)
	// Move transfers a live element into a different block. On success
	// src is left moved-from and will still be destroyed.
	Move func(src *T) (T, error)
	// Assign replaces the live element dst with a copy of src.
	Assign func(dst, src *T) error
	// Destroy ends the lifetime of a live element.
	Destroy func(v *T)

	// NothrowMove declares that Move never fails.
	NothrowMove bool
	// NoCopy declares that T cannot be copied. Copying operations return
	// ErrNotCopyable and relocation always moves.
	NoCopy bool
}

// relocateByMove reports whether growth moves elements into the new block.
// It holds when Move cannot fail, T cannot be copied or there is no Copy
// hook; otherwise elements are copied and the old block stays intact until
// the new one is complete.
func (t *Traits[T]) relocateByMove() bool {
	return t.Move == nil || t.NothrowMove || t.NoCopy || t.Copy == nil
}

func (t *Traits[T]) construct() (T, error) {
	if t.New == nil {
		var zero T
		return zero, nil
	}
	return t.New()
}

func (t *Traits[T]) copy(src *T) (T, error) {
	if t.NoCopy {
		var zero T
		return zero, ErrNotCopyable
	}
	if t.Copy == nil {
		return *src, nil
	}
	return t.Copy(src)
}

func (t *Traits[T]) move(src *T) (T, error) {
	if t.Move == nil {
		v := *src
		var zero T
		*src = zero
		return v, nil
	}
	return t.Move(src)
}

func (t *Traits[T]) assign(dst, src *T) error {
	if t.Assign != nil {
		return t.Assign(dst, src)
	}
	v, err := t.copy(src)
	if err != nil {
		return err
	}
	t.destroy(dst)
	*dst = v
	return nil
}

// destroy ends the lifetime of *v and leaves the slot zeroed.
func (t *Traits[T]) destroy(v *T) {
	if t.Destroy != nil {
		t.Destroy(v)
	}
	var zero T
	*v = zero
}
