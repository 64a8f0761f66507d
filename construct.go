package vector

// The helpers below build elements into non-live slots. Each one either
// builds every element of dst or destroys what it built, leaves dst zeroed
// and reports the index that failed.

// constructN value-initialises every slot of dst.
func (t *Traits[T]) constructN(dst []T) (int, error) {
	for i := range dst {
		v, err := t.construct()
		if err != nil {
			t.destroyN(dst[:i])
			return i, err
		}
		dst[i] = v
	}
	return len(dst), nil
}

// copyN copy-constructs src into dst. len(dst) must be >= len(src).
func (t *Traits[T]) copyN(dst, src []T) (int, error) {
	for i := range src {
		v, err := t.copy(&src[i])
		if err != nil {
			t.destroyN(dst[:i])
			return i, err
		}
		dst[i] = v
	}
	return len(src), nil
}

// moveN move-constructs src into dst. len(dst) must be >= len(src).
// Elements of src already moved stay moved-from if a later move fails.
func (t *Traits[T]) moveN(dst, src []T) (int, error) {
	for i := range src {
		v, err := t.move(&src[i])
		if err != nil {
			t.destroyN(dst[:i])
			return i, err
		}
		dst[i] = v
	}
	return len(src), nil
}

// relocateN transfers src into dst by moving or copying, see relocateByMove.
// The caller destroys src once the whole transfer succeeded.
func (t *Traits[T]) relocateN(dst, src []T) (int, error) {
	if t.relocateByMove() {
		return t.moveN(dst, src)
	}
	return t.copyN(dst, src)
}

// destroyN destroys every element of s in index order.
func (t *Traits[T]) destroyN(s []T) {
	for i := range s {
		t.destroy(&s[i])
	}
}
